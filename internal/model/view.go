package model

import "time"

// 读模型：查询时由多表连接与派生字段组装，只用于返回，不参与迁移。
// 任何包含用户信息的读模型都只投影摘要字段，绝不包含密码哈希与刷新令牌。
// 非列字段必须标记 gorm:"-"，否则会被当作关联解析。

// OwnerSummary 作者摘要
type OwnerSummary struct {
	ID       int64  `json:"id"`
	UserName string `json:"userName"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

// ChannelSummary 带订阅信息的作者摘要
type ChannelSummary struct {
	ID               int64  `json:"id"`
	UserName         string `json:"userName"`
	FullName         string `json:"fullName"`
	Avatar           string `json:"avatar"`
	SubscribersCount int64  `json:"subscribersCount"`
	IsSubscribed     bool   `json:"isSubscribed"`
}

// VideoCard 列表中的视频
type VideoCard struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	VideoFile   Asset        `gorm:"embedded;embeddedPrefix:video_file_" json:"videoFile"`
	Thumbnail   Asset        `gorm:"embedded;embeddedPrefix:thumbnail_" json:"thumbnail"`
	Duration    float64      `json:"duration"`
	Views       int64        `json:"views"`
	IsPublished bool         `json:"isPublished"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Owner       OwnerSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
}

// VideoDetail 视频详情
type VideoDetail struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	VideoFile   Asset          `gorm:"embedded;embeddedPrefix:video_file_" json:"videoFile"`
	Thumbnail   Asset          `gorm:"embedded;embeddedPrefix:thumbnail_" json:"thumbnail"`
	Duration    float64        `json:"duration"`
	Views       int64          `json:"views"`
	IsPublished bool           `json:"isPublished"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	LikesCount  int64          `json:"likesCount"`
	IsLiked     bool           `json:"isLiked"`
	Owner       ChannelSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	Comments    []CommentView  `gorm:"-" json:"comments"`
}

// CommentView 评论
type CommentView struct {
	ID         int64        `json:"id"`
	VideoID    int64        `json:"videoId"`
	Content    string       `json:"content"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
	LikesCount int64        `json:"likesCount"`
	IsLiked    bool         `json:"isLiked"`
	Owner      OwnerSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
}

// TweetView 动态
type TweetView struct {
	ID         int64        `json:"id"`
	Content    string       `json:"content"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
	LikesCount int64        `json:"likesCount"`
	IsLiked    bool         `json:"isLiked"`
	Owner      OwnerSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
}

// ChannelProfile 频道主页
type ChannelProfile struct {
	ID                int64     `json:"id"`
	UserName          string    `json:"userName"`
	FullName          string    `json:"fullName"`
	Email             string    `json:"email"`
	Avatar            Asset     `gorm:"embedded;embeddedPrefix:avatar_" json:"avatar"`
	CoverImage        Asset     `gorm:"embedded;embeddedPrefix:cover_" json:"coverImage"`
	SubscribersCount  int64     `json:"subscribersCount"`
	SubscribedToCount int64     `json:"channelsSubscribedToCount"`
	IsSubscribed      bool      `json:"isSubscribed"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ChannelStats 创作者数据概览
type ChannelStats struct {
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
	TotalViews       int64 `json:"totalViews"`
	TotalVideos      int64 `json:"totalVideos"`
}

// DateParts 日期拆分
type DateParts struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// NewDateParts 按 UTC 拆分日期
func NewDateParts(t time.Time) DateParts {
	u := t.UTC()
	return DateParts{Year: u.Year(), Month: int(u.Month()), Day: u.Day()}
}

// DashboardVideo 创作者视频列表项
type DashboardVideo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoFile   Asset     `gorm:"embedded;embeddedPrefix:video_file_" json:"videoFile"`
	Thumbnail   Asset     `gorm:"embedded;embeddedPrefix:thumbnail_" json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	LikesCount  int64     `json:"likesCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Created     DateParts `gorm:"-" json:"created"`
}

// LikedVideo 点赞过的视频
type LikedVideo struct {
	VideoCard
	LikedAt time.Time `json:"likedAt"`
}

// WatchedVideo 观看历史中的视频
type WatchedVideo struct {
	VideoCard
	WatchedAt time.Time `json:"watchedAt"`
}

// SubscriberView 频道的订阅者
type SubscriberView struct {
	ID                     int64     `json:"id"`
	UserName               string    `json:"userName"`
	FullName               string    `json:"fullName"`
	Avatar                 string    `json:"avatar"`
	SubscribersCount       int64     `json:"subscribersCount"`
	SubscribedToSubscriber bool      `json:"subscribedToSubscriber"`
	SubscribedAt           time.Time `json:"subscribedAt"`
}

// SubscribedChannel 订阅的频道及其最新视频
type SubscribedChannel struct {
	ID           int64      `json:"id"`
	UserName     string     `json:"userName"`
	FullName     string     `json:"fullName"`
	Avatar       string     `json:"avatar"`
	SubscribedAt time.Time  `json:"subscribedAt"`
	LatestVideo  *VideoCard `gorm:"-" json:"latestVideo"`
}

// PlaylistView 播放列表
type PlaylistView struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	TotalVideos int64        `json:"totalVideos"`
	TotalViews  int64        `json:"totalViews"`
	Owner       OwnerSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	Videos      []VideoCard  `gorm:"-" json:"videos"`
}

// PlaylistVideoCard 播放列表中的视频，带所属列表
type PlaylistVideoCard struct {
	VideoCard
	PlaylistID int64 `json:"-"`
}
