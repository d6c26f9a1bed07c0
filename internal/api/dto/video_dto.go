package dto

// VideoListQuery 视频流查询参数
type VideoListQuery struct {
	Query    string `form:"query" binding:"omitempty,max=200"`
	UserID   int64  `form:"userId" binding:"omitempty,min=1"`
	SortBy   string `form:"sortBy" binding:"omitempty,oneof=views createdAt duration"`
	SortType string `form:"sortType" binding:"omitempty,oneof=asc desc"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// PublishVideoRequest 发布视频（multipart/form-data，videoFile 与 thumbnail 为文件字段）
type PublishVideoRequest struct {
	Title       string `form:"title" binding:"required,min=3,max=200"`
	Description string `form:"description" binding:"required,min=10,max=5000"`
}

// UpdateVideoRequest 更新视频（multipart/form-data，thumbnail 可选）
type UpdateVideoRequest struct {
	Title       string `form:"title" binding:"omitempty,min=3,max=200"`
	Description string `form:"description" binding:"omitempty,min=10,max=5000"`
}

// PublishStatus 发布状态
type PublishStatus struct {
	IsPublished bool `json:"isPublished"`
}
