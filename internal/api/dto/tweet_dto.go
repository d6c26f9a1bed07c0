package dto

// TweetRequest 创建或修改动态
type TweetRequest struct {
	Content string `json:"content" binding:"required,min=1,max=280"`
}
