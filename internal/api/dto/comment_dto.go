package dto

// CommentRequest 创建或修改评论
type CommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=500"`
}
