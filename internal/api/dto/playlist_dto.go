package dto

// CreatePlaylistRequest 创建播放列表
type CreatePlaylistRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"required,min=1,max=1000"`
}

// UpdatePlaylistRequest 更新播放列表，至少提供一个字段
type UpdatePlaylistRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,min=1,max=1000"`
}
