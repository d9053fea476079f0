package entity

import "github.com/google/uuid"

// NewID returns a fresh id for records created at runtime.
// Seed records keep their hand-written ids.
func NewID() string {
	return uuid.NewString()
}
