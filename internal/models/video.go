package models

import (
	"time"

	"gorm.io/gorm"
)

// Video represents an uploaded video. VideoURL and ThumbnailURL point at the
// media store; OwnerID is set at creation and never reassigned.
type Video struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	Duration     float64        `gorm:"not null" json:"duration"`
	VideoURL     string         `gorm:"not null" json:"video_url"`
	ThumbnailURL string         `gorm:"not null" json:"thumbnail_url"`
	Views        int64          `gorm:"not null;default:0" json:"views"`
	Published    bool           `gorm:"not null;default:true" json:"published"`
	OwnerID      uint           `gorm:"not null;index" json:"owner_id"`
	Owner        User           `gorm:"foreignKey:OwnerID" json:"owner"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
