package models

import "time"

// Screenshot is one uploaded team-list image with its recognition output.
type Screenshot struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	SessionID   uint   `gorm:"index;not null"`
	FileName    string `gorm:"size:255;not null"`
	StorePath   string `gorm:"column:store_path;size:512"`
	ContentType string `gorm:"size:128"`
	// Format is the detected layout ("format1", "format2", "unknown").
	Format  string `gorm:"size:16"`
	RawText string `gorm:"type:text"`
	// Mark the screenshot as failed for OCR (record kept so the user/admin
	// can review instead of silently disappearing).
	Failed       bool   `gorm:"default:false;index"`
	FailedReason string `gorm:"size:255"`
}
