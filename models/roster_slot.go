package models

import "time"

// RosterSlot is the persisted form of one of the 21 reconciled slots.
// Exactly 21 rows exist per session once a roster has been built; empty
// slots keep their templated position with a null player name.
type RosterSlot struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	SessionID uint   `gorm:"index;not null;uniqueIndex:idx_session_slot"`
	SlotIndex int    `gorm:"not null;uniqueIndex:idx_session_slot"`
	Position  string `gorm:"size:8;not null"`
	// PlayerName is empty for an unfilled slot.
	PlayerName string `gorm:"size:255"`
	Price      *int
	// OriginalFailedName keeps the rejected OCR guess for manual correction.
	OriginalFailedName string `gorm:"size:255"`
}
