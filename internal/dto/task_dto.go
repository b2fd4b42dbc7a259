package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/tasknest/tasknest-backend/internal/models"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = time.RFC3339
)

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *string    `json:"due_date"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	CategoryID  *uuid.UUID `json:"category_id"`

	// Nil means "not provided": the task is created with an empty
	// assignment set. An explicit empty list means the same on create but
	// the distinction matters on update.
	AssignedUserIDs *[]uuid.UUID `json:"assigned_user_ids"`
}

// UpdateTaskRequest uses pointers throughout so that an omitted field leaves
// the stored value untouched. An empty DueDate string clears the due date; a
// non-nil empty AssignedUserIDs clears the assignment set while nil preserves
// it.
type UpdateTaskRequest struct {
	Title           *string      `json:"title"`
	Description     *string      `json:"description"`
	DueDate         *string      `json:"due_date"`
	Priority        *string      `json:"priority"`
	Status          *string      `json:"status"`
	CategoryID      *uuid.UUID   `json:"category_id"`
	AssignedUserIDs *[]uuid.UUID `json:"assigned_user_ids"`
}

type AttachmentResponse struct {
	ID         uuid.UUID `json:"id"`
	FileName   string    `json:"file_name"`
	FileURL    string    `json:"file_url"`
	UploadedAt string    `json:"uploaded_at"`
}

func NewAttachmentResponse(a *models.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:         a.ID,
		FileName:   a.FileName,
		FileURL:    a.FileURL,
		UploadedAt: a.UploadedAt.UTC().Format(timestampLayout),
	}
}

// TaskListItem is the flattened list shape: category by name, no assignment
// or attachment detail.
type TaskListItem struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     *string   `json:"due_date"`
	Priority    string    `json:"priority"`
	Category    *string   `json:"category"`
	Status      string    `json:"status"`
	IsOverdue   bool      `json:"is_overdue"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

func NewTaskListItem(t *models.Task, now time.Time) TaskListItem {
	item := TaskListItem{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     formatDate(t.DueDate),
		Priority:    t.Priority,
		Status:      t.Status,
		IsOverdue:   t.IsOverdue(now),
		CreatedAt:   t.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:   t.UpdatedAt.UTC().Format(timestampLayout),
	}
	if t.Category != nil {
		item.Category = &t.Category.Name
	}
	return item
}

// TaskDetail additionally carries the full assigned-user objects and the
// attachment list.
type TaskDetail struct {
	TaskListItem
	AssignedUsers []UserResponse       `json:"assigned_users"`
	Attachments   []AttachmentResponse `json:"upload_files"`
}

func NewTaskDetail(t *models.Task, now time.Time) TaskDetail {
	detail := TaskDetail{
		TaskListItem:  NewTaskListItem(t, now),
		AssignedUsers: make([]UserResponse, 0, len(t.AssignedUsers)),
		Attachments:   make([]AttachmentResponse, 0, len(t.Attachments)),
	}
	for i := range t.AssignedUsers {
		detail.AssignedUsers = append(detail.AssignedUsers, NewUserResponse(&t.AssignedUsers[i]))
	}
	for i := range t.Attachments {
		detail.Attachments = append(detail.Attachments, NewAttachmentResponse(&t.Attachments[i]))
	}
	return detail
}

func formatDate(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := d.UTC().Format(dateLayout)
	return &s
}
