package handler

import (
	"vortex-go/internal/api/dto"
	"vortex-go/internal/api/response"
	"vortex-go/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Toggle POST /api/v1/subscriptions/c/:channelId
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	channelID, ok := parseIDParam(c, "channelId")
	if !ok {
		return
	}

	subscribed, err := h.subscriptionService.Toggle(c.Request.Context(), currentUserID(c), channelID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	message := "unsubscribed successfully"
	if subscribed {
		message = "subscribed successfully"
	}
	response.OK(c, message, dto.SubscriptionStatus{IsSubscribed: subscribed})
}

// Subscribers GET /api/v1/subscriptions/c/:channelId
func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	channelID, ok := parseIDParam(c, "channelId")
	if !ok {
		return
	}

	data, err := h.subscriptionService.Subscribers(c.Request.Context(), channelID, parsePagination(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "subscribers fetched successfully", data)
}

// Channels GET /api/v1/subscriptions/u/:subscriberId
func (h *SubscriptionHandler) Channels(c *gin.Context) {
	subscriberID, ok := parseIDParam(c, "subscriberId")
	if !ok {
		return
	}

	data, err := h.subscriptionService.Channels(c.Request.Context(), subscriberID, parsePagination(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "subscribed channels fetched successfully", data)
}
