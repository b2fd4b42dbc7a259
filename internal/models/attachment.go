package models

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a file uploaded for a Task. The FileURL points into the blob
// store; deleting the Task deletes its attachment records.
type Attachment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TaskID     uuid.UUID `gorm:"type:uuid;not null;index" json:"task_id"`
	FileName   string    `gorm:"size:255;not null" json:"file_name"`
	FileURL    string    `gorm:"type:text;not null" json:"file_url"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
