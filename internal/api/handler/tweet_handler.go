package handler

import (
	"vortex-go/internal/api/dto"
	"vortex-go/internal/api/response"
	"vortex-go/internal/service"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// Create POST /api/v1/tweets
func (h *TweetHandler) Create(c *gin.Context) {
	var req dto.TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	tweet, err := h.tweetService.Create(c.Request.Context(), currentUserID(c), req.Content)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, "tweet created successfully", tweet)
}

// ListByUser GET /api/v1/tweets/user/:userId
func (h *TweetHandler) ListByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	data, err := h.tweetService.ListByUser(c.Request.Context(), userID, currentUserID(c), parsePagination(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "tweets fetched successfully", data)
}

// Update PATCH /api/v1/tweets/:tweetId
func (h *TweetHandler) Update(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "tweetId")
	if !ok {
		return
	}

	var req dto.TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	tweet, err := h.tweetService.Update(c.Request.Context(), currentUserID(c), tweetID, req.Content)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "tweet updated successfully", tweet)
}

// Delete DELETE /api/v1/tweets/:tweetId
func (h *TweetHandler) Delete(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "tweetId")
	if !ok {
		return
	}

	if err := h.tweetService.Delete(c.Request.Context(), currentUserID(c), tweetID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "tweet deleted successfully", gin.H{})
}
