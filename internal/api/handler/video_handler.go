package handler

import (
	"vortex-go/internal/api/dto"
	"vortex-go/internal/api/response"
	"vortex-go/internal/media"
	"vortex-go/internal/service"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoService *service.VideoService
	policy       *media.Policy
}

func NewVideoHandler(videoService *service.VideoService, policy *media.Policy) *VideoHandler {
	return &VideoHandler{videoService: videoService, policy: policy}
}

// Feed GET /api/v1/videos
func (h *VideoHandler) Feed(c *gin.Context) {
	var req dto.VideoListQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	data, err := h.videoService.Feed(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "videos fetched successfully", data)
}

// Publish POST /api/v1/videos
func (h *VideoHandler) Publish(c *gin.Context) {
	var req dto.PublishVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		bindFailed(c, err)
		return
	}

	videoFile, ok := saveUpload(c, h.policy, "videoFile", media.KindVideo, true)
	if !ok {
		return
	}
	defer videoFile.Remove()

	thumbnail, ok := saveUpload(c, h.policy, "thumbnail", media.KindImage, true)
	if !ok {
		return
	}
	defer thumbnail.Remove()

	video, err := h.videoService.Publish(c.Request.Context(), currentUserID(c), &req, videoFile, thumbnail)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, "video published successfully", video)
}

// Detail GET /api/v1/videos/:videoId
func (h *VideoHandler) Detail(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		return
	}

	detail, err := h.videoService.Detail(c.Request.Context(), videoID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "video fetched successfully", detail)
}

// Update PATCH /api/v1/videos/:videoId
func (h *VideoHandler) Update(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		return
	}

	var req dto.UpdateVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		bindFailed(c, err)
		return
	}

	thumbnail, ok := saveUpload(c, h.policy, "thumbnail", media.KindImage, false)
	if !ok {
		return
	}
	defer thumbnail.Remove()

	video, err := h.videoService.Update(c.Request.Context(), currentUserID(c), videoID, &req, thumbnail)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "video updated successfully", video)
}

// Delete DELETE /api/v1/videos/:videoId
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		return
	}

	if err := h.videoService.Delete(c.Request.Context(), currentUserID(c), videoID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "video deleted successfully", gin.H{})
}

// TogglePublish PATCH /api/v1/videos/toggle/publish/:videoId
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		return
	}

	published, err := h.videoService.TogglePublish(c.Request.Context(), currentUserID(c), videoID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "video publish status toggled", dto.PublishStatus{IsPublished: published})
}
