package models

import "time"

// Subscription links a subscriber to a channel (both users).
// The (subscriber, channel) pair is unique; self-subscription is rejected
// before this row is ever written.
type Subscription struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubscriberID uint      `gorm:"not null;uniqueIndex:idx_sub_pair" json:"subscriber_id"`
	Subscriber   User      `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"`
	ChannelID    uint      `gorm:"not null;uniqueIndex:idx_sub_pair" json:"channel_id"`
	Channel      User      `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
