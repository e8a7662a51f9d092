package models

import (
	"time"

	"gorm.io/gorm"
)

// Playlist is an owner-curated, ordered collection of videos.
// Videos is populated by the repository from playlist_videos rows ordered by
// position; it is not a GORM association.
type Playlist struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text;not null" json:"description"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	Owner       User           `gorm:"foreignKey:OwnerID" json:"owner"`
	Videos      []Video        `gorm:"-" json:"videos"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// PlaylistVideo is the ordered join row between a playlist and a video.
// The (playlist, video) pair is unique: a duplicate add conflicts at the
// index instead of appending a second entry.
type PlaylistVideo struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlaylistID uint      `gorm:"not null;uniqueIndex:idx_playlist_video" json:"playlist_id"`
	VideoID    uint      `gorm:"not null;uniqueIndex:idx_playlist_video" json:"video_id"`
	Position   int       `gorm:"not null" json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}
