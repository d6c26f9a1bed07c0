package router

import (
	"vortex-go/internal/api/handler"
	"vortex-go/internal/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers 全部路由处理器
type Handlers struct {
	Healthcheck  *handler.HealthcheckHandler
	User         *handler.UserHandler
	Video        *handler.VideoHandler
	Comment      *handler.CommentHandler
	Like         *handler.LikeHandler
	Subscription *handler.SubscriptionHandler
	Tweet        *handler.TweetHandler
	Playlist     *handler.PlaylistHandler
	Dashboard    *handler.DashboardHandler
}

// New 创建 Gin 引擎并挂载中间件与路由
func New(h *Handlers, auth middleware.Authenticator) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logger(), middleware.Metrics())
	Setup(r, h, auth)
	return r
}

// Setup 注册所有业务路由
func Setup(r *gin.Engine, h *Handlers, auth middleware.Authenticator) {
	authRequired := middleware.AuthRequired(auth)

	r.GET("/healthz", h.Healthcheck.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	// --- 健康检查 ---
	v1.GET("/healthcheck", h.Healthcheck.Healthcheck)

	// --- 用户模块 ---
	users := v1.Group("/users")
	{
		users.POST("/register", h.User.Register)
		users.POST("/login", h.User.Login)
		users.POST("/refresh-token", h.User.RefreshToken)

		usersAuth := users.Group("", authRequired)
		{
			usersAuth.POST("/logout", h.User.Logout)
			usersAuth.GET("/current-user", h.User.CurrentUser)
			usersAuth.POST("/change-password", h.User.ChangePassword)
			usersAuth.PATCH("/update-account", h.User.UpdateAccount)
			usersAuth.PATCH("/avatar", h.User.UpdateAvatar)
			usersAuth.PATCH("/cover-image", h.User.UpdateCoverImage)
			usersAuth.GET("/c/:userName", h.User.ChannelProfile)
			usersAuth.GET("/history", h.User.WatchHistory)
		}
	}

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		// 公开接口（不需要登录）
		videos.GET("", h.Video.Feed)

		videosAuth := videos.Group("", authRequired)
		{
			videosAuth.POST("", h.Video.Publish)
			videosAuth.GET("/:videoId", h.Video.Detail)
			videosAuth.PATCH("/:videoId", h.Video.Update)
			videosAuth.DELETE("/:videoId", h.Video.Delete)
			videosAuth.PATCH("/toggle/publish/:videoId", h.Video.TogglePublish)
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments", authRequired)
	{
		comments.GET("/:videoId", h.Comment.List)
		comments.POST("/:videoId", h.Comment.Create)
		comments.PATCH("/c/:commentId", h.Comment.Update)
		comments.DELETE("/c/:commentId", h.Comment.Delete)
	}

	// --- 点赞模块 ---
	likes := v1.Group("/likes", authRequired)
	{
		likes.POST("/toggle/v/:videoId", h.Like.ToggleVideoLike)
		likes.POST("/toggle/c/:commentId", h.Like.ToggleCommentLike)
		likes.POST("/toggle/t/:tweetId", h.Like.ToggleTweetLike)
		likes.GET("/videos", h.Like.LikedVideos)
	}

	// --- 订阅模块 ---
	subscriptions := v1.Group("/subscriptions", authRequired)
	{
		subscriptions.POST("/c/:channelId", h.Subscription.Toggle)
		subscriptions.GET("/c/:channelId", h.Subscription.Subscribers)
		subscriptions.GET("/u/:subscriberId", h.Subscription.Channels)
	}

	// --- 动态模块 ---
	tweets := v1.Group("/tweets", authRequired)
	{
		tweets.POST("", h.Tweet.Create)
		tweets.GET("/user/:userId", h.Tweet.ListByUser)
		tweets.PATCH("/:tweetId", h.Tweet.Update)
		tweets.DELETE("/:tweetId", h.Tweet.Delete)
	}

	// --- 播放列表模块 ---
	playlists := v1.Group("/playlists", authRequired)
	{
		playlists.POST("", h.Playlist.Create)
		playlists.GET("/:playlistId", h.Playlist.Get)
		playlists.PATCH("/:playlistId", h.Playlist.Update)
		playlists.DELETE("/:playlistId", h.Playlist.Delete)
		playlists.PATCH("/add/:videoId/:playlistId", h.Playlist.AddVideo)
		playlists.PATCH("/remove/:videoId/:playlistId", h.Playlist.RemoveVideo)
		playlists.GET("/user/:userId", h.Playlist.ListByUser)
	}

	// --- 创作者数据 ---
	dashboard := v1.Group("/dashboard", authRequired)
	{
		dashboard.GET("/stats", h.Dashboard.Stats)
		dashboard.GET("/videos", h.Dashboard.Videos)
	}
}
