package models

import "time"

// Role is a named access level. The service seeds "administrator" (batch
// tooling, user management) and "user"; users reference a role by id.
type Role struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string `gorm:"size:32;uniqueIndex;not null"`
	Description string `gorm:"size:255"`
}
