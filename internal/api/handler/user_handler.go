package handler

import (
	"net/http"
	"time"

	"vortex-go/internal/api/dto"
	"vortex-go/internal/api/middleware"
	"vortex-go/internal/api/response"
	"vortex-go/internal/media"
	"vortex-go/internal/service"
	"vortex-go/pkg/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	authService   *service.AuthService
	userService   *service.UserService
	policy        *media.Policy
	secureCookies bool
}

func NewUserHandler(authService *service.AuthService, userService *service.UserService, policy *media.Policy, secureCookies bool) *UserHandler {
	return &UserHandler{
		authService:   authService,
		userService:   userService,
		policy:        policy,
		secureCookies: secureCookies,
	}
}

// Register POST /api/v1/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		bindFailed(c, err)
		return
	}

	avatar, ok := saveUpload(c, h.policy, "avatar", media.KindImage, true)
	if !ok {
		return
	}
	defer avatar.Remove()

	cover, ok := saveUpload(c, h.policy, "coverImage", media.KindImage, false)
	if !ok {
		return
	}
	defer cover.Remove()

	user, err := h.authService.Register(c.Request.Context(), &req, avatar, cover)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, "user registered successfully", user)
}

// Login POST /api/v1/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	user, pair, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.setTokenCookies(c, pair)
	response.OK(c, "user logged in successfully", dto.LoginData{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// RefreshToken POST /api/v1/users/refresh-token
func (h *UserHandler) RefreshToken(c *gin.Context) {
	token, _ := c.Cookie(middleware.RefreshTokenCookie)
	if token == "" {
		var req dto.RefreshTokenRequest
		_ = c.ShouldBindJSON(&req)
		token = req.RefreshToken
	}

	pair, err := h.authService.RefreshToken(c.Request.Context(), token)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.setTokenCookies(c, pair)
	response.OK(c, "access token refreshed", dto.LoginData{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout POST /api/v1/users/logout
func (h *UserHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		response.Unauthorized(c, "unauthorized request")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		handleServiceError(c, err)
		return
	}

	h.clearTokenCookies(c)
	response.OK(c, "user logged out", gin.H{})
}

// CurrentUser GET /api/v1/users/current-user
func (h *UserHandler) CurrentUser(c *gin.Context) {
	user, err := h.userService.GetCurrentUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "current user fetched successfully", user)
}

// ChangePassword POST /api/v1/users/change-password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), currentUserID(c), &req); err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "password changed successfully", gin.H{})
}

// UpdateAccount PATCH /api/v1/users/update-account
func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	user, err := h.userService.UpdateAccount(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "account details updated successfully", user)
}

// UpdateAvatar PATCH /api/v1/users/avatar
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	f, ok := saveUpload(c, h.policy, "avatar", media.KindImage, true)
	if !ok {
		return
	}
	defer f.Remove()

	user, err := h.userService.UpdateAvatar(c.Request.Context(), currentUserID(c), f)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "avatar image updated successfully", user)
}

// UpdateCoverImage PATCH /api/v1/users/cover-image
func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	f, ok := saveUpload(c, h.policy, "coverImage", media.KindImage, true)
	if !ok {
		return
	}
	defer f.Remove()

	user, err := h.userService.UpdateCoverImage(c.Request.Context(), currentUserID(c), f)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "cover image updated successfully", user)
}

// ChannelProfile GET /api/v1/users/c/:userName
func (h *UserHandler) ChannelProfile(c *gin.Context) {
	profile, err := h.userService.ChannelProfile(c.Request.Context(), c.Param("userName"), currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "user channel fetched successfully", profile)
}

// WatchHistory GET /api/v1/users/history
func (h *UserHandler) WatchHistory(c *gin.Context) {
	data, err := h.userService.WatchHistory(c.Request.Context(), currentUserID(c), parsePagination(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "watch history fetched successfully", data)
}

func (h *UserHandler) setTokenCookies(c *gin.Context, pair *utils.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, pair.AccessToken,
		maxAge(pair.AccessExpiresAt), "/", "", h.secureCookies, true)
	c.SetCookie(middleware.RefreshTokenCookie, pair.RefreshToken,
		maxAge(pair.RefreshExpiresAt), "/", "", h.secureCookies, true)
}

func (h *UserHandler) clearTokenCookies(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.secureCookies, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", h.secureCookies, true)
}

func maxAge(expiresAt time.Time) int {
	seconds := int(time.Until(expiresAt).Seconds())
	if seconds < 1 {
		return 1
	}
	return seconds
}
