package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix  = "user:%d"
	VideoKeyPrefix = "video:%d"
)

const (
	UserTTL = 5 * time.Minute
	// Videos carry a live view counter; keep the TTL short so cached copies
	// do not lag far behind the atomic increments.
	VideoTTL = time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func VideoKey(videoID uint) string {
	return fmt.Sprintf(VideoKeyPrefix, videoID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateVideo(ctx context.Context, videoID uint) {
	Invalidate(ctx, VideoKey(videoID))
}
