package models

import "time"

// TeamSession is one screenshot-upload session. A user has at most one open
// session at a time; clearing screenshots closes the current one.
type TeamSession struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint `gorm:"index;not null"`
	User      User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	// Open marks the session currently accepting screenshots. Cleared
	// sessions are kept for review instead of deleted.
	Open        bool         `gorm:"default:true;index"`
	Screenshots []Screenshot `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Slots       []RosterSlot `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
