package permissions

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tasknest/tasknest-backend/internal/models"
)

func TestSelfOrReadOnly(t *testing.T) {
	policy := SelfOrReadOnly{}
	alice := &models.User{ID: uuid.New()}
	bob := &models.User{ID: uuid.New()}

	assert.True(t, policy.Allows(bob.ID, ActionRead, alice))
	assert.True(t, policy.Allows(alice.ID, ActionWrite, alice))
	assert.False(t, policy.Allows(bob.ID, ActionWrite, alice))
}

func TestOwnerOrReadOnly(t *testing.T) {
	policy := OwnerOrReadOnly{}
	alice := uuid.New()
	bob := uuid.New()
	aliceProfile := &models.Profile{ID: uuid.New(), UserID: alice}

	assert.True(t, policy.Allows(bob, ActionRead, aliceProfile))
	assert.True(t, policy.Allows(alice, ActionWrite, aliceProfile))
	assert.False(t, policy.Allows(bob, ActionWrite, aliceProfile))
}

func TestAssigneeOrReadOnly(t *testing.T) {
	policy := AssigneeOrReadOnly{}
	assignee := models.User{ID: uuid.New()}
	creator := uuid.New()
	outsider := uuid.New()

	task := &models.Task{
		ID:            uuid.New(),
		Title:         "Test Task",
		CreatedByID:   &creator,
		AssignedUsers: []models.User{assignee},
	}

	assert.True(t, policy.Allows(outsider, ActionRead, task))
	assert.True(t, policy.Allows(assignee.ID, ActionWrite, task))
	assert.False(t, policy.Allows(outsider, ActionWrite, task))

	// Being the creator grants no write access.
	assert.False(t, policy.Allows(creator, ActionWrite, task))
}

func TestWrongObjectTypeDeniesWrites(t *testing.T) {
	actor := uuid.New()

	assert.False(t, SelfOrReadOnly{}.Allows(actor, ActionWrite, &models.Task{}))
	assert.False(t, OwnerOrReadOnly{}.Allows(actor, ActionWrite, &models.User{}))
	assert.False(t, AssigneeOrReadOnly{}.Allows(actor, ActionWrite, &models.Profile{}))
}
