package handler

import (
	"context"

	"vortex-go/internal/api/dto"
	"vortex-go/internal/api/response"
	"vortex-go/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

type toggleFunc func(ctx context.Context, actorID, subjectID int64) (bool, error)

func (h *LikeHandler) toggle(c *gin.Context, param string, fn toggleFunc) {
	subjectID, ok := parseIDParam(c, param)
	if !ok {
		return
	}

	liked, err := fn(c.Request.Context(), currentUserID(c), subjectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	message := "like removed"
	if liked {
		message = "like added"
	}
	response.OK(c, message, dto.LikeStatus{IsLiked: liked})
}

// ToggleVideoLike POST /api/v1/likes/toggle/v/:videoId
func (h *LikeHandler) ToggleVideoLike(c *gin.Context) {
	h.toggle(c, "videoId", h.likeService.ToggleVideoLike)
}

// ToggleCommentLike POST /api/v1/likes/toggle/c/:commentId
func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	h.toggle(c, "commentId", h.likeService.ToggleCommentLike)
}

// ToggleTweetLike POST /api/v1/likes/toggle/t/:tweetId
func (h *LikeHandler) ToggleTweetLike(c *gin.Context) {
	h.toggle(c, "tweetId", h.likeService.ToggleTweetLike)
}

// LikedVideos GET /api/v1/likes/videos
func (h *LikeHandler) LikedVideos(c *gin.Context) {
	data, err := h.likeService.LikedVideos(c.Request.Context(), currentUserID(c), parsePagination(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "liked videos fetched successfully", data)
}
