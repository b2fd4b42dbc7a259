// Package permissions holds the object-level access policies. Each policy is
// a pure predicate over (actor, action, target object): no I/O, no mutation,
// no errors. The coarse "authenticated at all" gate is the JWT middleware and
// runs before any of these.
package permissions

import (
	"github.com/google/uuid"

	"github.com/tasknest/tasknest-backend/internal/models"
)

type Action int

const (
	ActionRead Action = iota
	ActionWrite
)

// Policy answers whether an actor may perform an action on a target object.
// Objects of an unexpected type are denied writes.
type Policy interface {
	Allows(actorID uuid.UUID, action Action, obj any) bool
}

// SelfOrReadOnly governs the User resource: anyone may read, only the user
// themselves may write.
type SelfOrReadOnly struct{}

func (SelfOrReadOnly) Allows(actorID uuid.UUID, action Action, obj any) bool {
	if action == ActionRead {
		return true
	}
	user, ok := obj.(*models.User)
	return ok && user.ID == actorID
}

// OwnerOrReadOnly governs the Profile resource: anyone may read, only the
// owning user may write.
type OwnerOrReadOnly struct{}

func (OwnerOrReadOnly) Allows(actorID uuid.UUID, action Action, obj any) bool {
	if action == ActionRead {
		return true
	}
	profile, ok := obj.(*models.Profile)
	return ok && profile.UserID == actorID
}

// AssigneeOrReadOnly governs the Task resource: anyone may read, only users
// in the assigned set may write. Being the creator grants nothing.
type AssigneeOrReadOnly struct{}

func (AssigneeOrReadOnly) Allows(actorID uuid.UUID, action Action, obj any) bool {
	if action == ActionRead {
		return true
	}
	task, ok := obj.(*models.Task)
	return ok && task.IsAssignedTo(actorID)
}
