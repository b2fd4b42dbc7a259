package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var (
	Statuses   = []string{StatusPending, StatusInProgress, StatusDone}
	Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}
)

// Task can be assigned to any number of users. Only assigned users may
// mutate it; the creator holds no special rights.
type Task struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string       `gorm:"size:255;not null" json:"title"`
	Description   string       `gorm:"type:text" json:"description"`
	DueDate       *time.Time   `gorm:"type:date" json:"due_date"`
	Priority      string       `gorm:"size:20;default:'medium'" json:"priority"`
	Status        string       `gorm:"size:20;default:'pending'" json:"status"`
	CategoryID    *uuid.UUID   `gorm:"type:uuid" json:"category_id"`
	Category      *Category    `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
	AssignedUsers []User       `gorm:"many2many:task_assignments;constraint:OnDelete:CASCADE" json:"-"`
	CreatedByID   *uuid.UUID   `gorm:"type:uuid" json:"created_by"`
	CreatedBy     *User        `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
	Attachments   []Attachment `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// IsOverdue reports whether the task's due date has passed. A task with no
// due date, a due date of today, or status done is never overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == StatusDone {
		return false
	}
	today := now.UTC().Truncate(24 * time.Hour)
	return t.DueDate.UTC().Truncate(24 * time.Hour).Before(today)
}

// IsAssignedTo reports whether the given user is in the assigned set.
// AssignedUsers must be preloaded.
func (t *Task) IsAssignedTo(userID uuid.UUID) bool {
	for _, u := range t.AssignedUsers {
		if u.ID == userID {
			return true
		}
	}
	return false
}

func ValidStatus(s string) bool {
	for _, valid := range Statuses {
		if s == valid {
			return true
		}
	}
	return false
}

func ValidPriority(p string) bool {
	for _, valid := range Priorities {
		if p == valid {
			return true
		}
	}
	return false
}
