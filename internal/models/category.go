package models

import "github.com/google/uuid"

type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

// DefaultCategories must exist after system initialization. Seeding is
// idempotent; Name carries a unique index.
var DefaultCategories = []string{"Development", "Design", "Testing", "Documentation", "Other"}
