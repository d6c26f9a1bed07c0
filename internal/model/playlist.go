package model

import "time"

// Playlist 播放列表
type Playlist struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:播放列表ID" json:"id"`
	OwnerID     int64     `gorm:"not null;index:idx_playlists_owner_id;comment:创建者ID" json:"ownerId"`
	Name        string    `gorm:"size:200;not null;comment:名称" json:"name"`
	Description string    `gorm:"type:text;not null;comment:描述" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;comment:创建时间" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updatedAt"`
}

func (Playlist) TableName() string {
	return "playlists"
}

// OwnerOf 实现 Owned
func (p *Playlist) OwnerOf() int64 { return p.OwnerID }

// PlaylistVideo 播放列表中的视频，复合主键保证集合语义，按加入时间排序
type PlaylistVideo struct {
	PlaylistID int64     `gorm:"primaryKey;autoIncrement:false;comment:播放列表ID" json:"playlistId"`
	VideoID    int64     `gorm:"primaryKey;autoIncrement:false;index:idx_playlist_videos_video_id;comment:视频ID" json:"videoId"`
	CreatedAt  time.Time `gorm:"autoCreateTime;comment:加入时间" json:"createdAt"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
