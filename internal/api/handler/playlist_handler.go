package handler

import (
	"vortex-go/internal/api/dto"
	"vortex-go/internal/api/response"
	"vortex-go/internal/service"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create POST /api/v1/playlists
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req dto.CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	playlist, err := h.playlistService.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, "playlist created successfully", playlist)
}

// Get GET /api/v1/playlists/:playlistId
func (h *PlaylistHandler) Get(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlistId")
	if !ok {
		return
	}

	playlist, err := h.playlistService.Get(c.Request.Context(), playlistID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "playlist fetched successfully", playlist)
}

// Update PATCH /api/v1/playlists/:playlistId
func (h *PlaylistHandler) Update(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlistId")
	if !ok {
		return
	}

	var req dto.UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	playlist, err := h.playlistService.Update(c.Request.Context(), currentUserID(c), playlistID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "playlist updated successfully", playlist)
}

// Delete DELETE /api/v1/playlists/:playlistId
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlistId")
	if !ok {
		return
	}

	if err := h.playlistService.Delete(c.Request.Context(), currentUserID(c), playlistID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "playlist deleted successfully", gin.H{})
}

// AddVideo PATCH /api/v1/playlists/add/:videoId/:playlistId
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		return
	}
	playlistID, ok := parseIDParam(c, "playlistId")
	if !ok {
		return
	}

	playlist, err := h.playlistService.AddVideo(c.Request.Context(), currentUserID(c), playlistID, videoID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "video added to playlist", playlist)
}

// RemoveVideo PATCH /api/v1/playlists/remove/:videoId/:playlistId
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		return
	}
	playlistID, ok := parseIDParam(c, "playlistId")
	if !ok {
		return
	}

	playlist, err := h.playlistService.RemoveVideo(c.Request.Context(), currentUserID(c), playlistID, videoID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "video removed from playlist", playlist)
}

// ListByUser GET /api/v1/playlists/user/:userId
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	data, err := h.playlistService.ListByUser(c.Request.Context(), userID, currentUserID(c), parsePagination(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "playlists fetched successfully", data)
}
