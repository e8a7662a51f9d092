package models

import "time"

// Like links a user to exactly one of a video, a comment, or a tweet.
// Absent targets are stored as 0, not NULL, so the composite unique index
// makes each (liked_by, target) pair at most one row even under concurrent
// toggles.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VideoID   uint      `gorm:"not null;default:0;uniqueIndex:idx_like_actor_target" json:"video_id,omitempty"`
	CommentID uint      `gorm:"not null;default:0;uniqueIndex:idx_like_actor_target" json:"comment_id,omitempty"`
	TweetID   uint      `gorm:"not null;default:0;uniqueIndex:idx_like_actor_target" json:"tweet_id,omitempty"`
	LikedByID uint      `gorm:"not null;uniqueIndex:idx_like_actor_target" json:"liked_by_id"`
	LikedBy   User      `gorm:"foreignKey:LikedByID" json:"liked_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TargetCount reports how many target references are populated.
func (l *Like) TargetCount() int {
	n := 0
	if l.VideoID != 0 {
		n++
	}
	if l.CommentID != 0 {
		n++
	}
	if l.TweetID != 0 {
		n++
	}
	return n
}
