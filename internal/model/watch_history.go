package model

import "time"

// WatchHistory 观看记录，(user, video) 唯一，重复观看只刷新 WatchedAt
type WatchHistory struct {
	UserID    int64     `gorm:"primaryKey;autoIncrement:false;index:idx_watch_histories_user_watched,priority:1;comment:用户ID" json:"userId"`
	VideoID   int64     `gorm:"primaryKey;autoIncrement:false;index:idx_watch_histories_video_id;comment:视频ID" json:"videoId"`
	WatchedAt time.Time `gorm:"not null;index:idx_watch_histories_user_watched,priority:2;comment:最近观看时间" json:"watchedAt"`
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}
