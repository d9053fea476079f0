package pg

import (
	"time"
)

// EntityModel stores one record of any entity type as a JSON document.
// Position keeps the collection order the in-memory store would have.
type EntityModel struct {
	Kind     string `gorm:"size:64;primaryKey"`
	ID       string `gorm:"size:255;primaryKey"`
	Position int64  `gorm:"not null"`
	Body     string `gorm:"type:jsonb;not null"`
	// meta data
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for EntityModel.
func (EntityModel) TableName() string {
	return "entities"
}
