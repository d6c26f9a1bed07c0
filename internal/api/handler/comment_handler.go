package handler

import (
	"vortex-go/internal/api/dto"
	"vortex-go/internal/api/response"
	"vortex-go/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List GET /api/v1/comments/:videoId
func (h *CommentHandler) List(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		return
	}

	data, err := h.commentService.List(c.Request.Context(), videoID, currentUserID(c), parsePagination(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "comments fetched successfully", data)
}

// Create POST /api/v1/comments/:videoId
func (h *CommentHandler) Create(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), currentUserID(c), videoID, req.Content)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, "comment added successfully", comment)
}

// Update PATCH /api/v1/comments/c/:commentId
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), currentUserID(c), commentID, req.Content)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "comment updated successfully", comment)
}

// Delete DELETE /api/v1/comments/c/:commentId
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), currentUserID(c), commentID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "comment deleted successfully", gin.H{})
}
