package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vortex-go/internal/api/dto"
	"vortex-go/internal/api/handler"
	"vortex-go/internal/api/router"
	"vortex-go/internal/config"
	"vortex-go/internal/infra/database"
	infraES "vortex-go/internal/infra/elasticsearch"
	infraKafka "vortex-go/internal/infra/kafka"
	infraMinio "vortex-go/internal/infra/minio"
	infraRedis "vortex-go/internal/infra/redis"
	"vortex-go/internal/media"
	"vortex-go/internal/repository"
	"vortex-go/internal/service"
	"vortex-go/pkg/logger"
	"vortex-go/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	// 加载配置文件
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Open(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	// 初始化MinIO
	store, err := infraMinio.NewMediaStore(&cfg.MinIO)
	if err != nil {
		logger.Fatal("Failed to init minio", zap.Error(err))
	}

	// 初始化Redis（可选，用于注销令牌黑名单）
	var revoker service.TokenRevoker
	if cfg.Redis.Enabled {
		rdb, err := infraRedis.NewClient(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to init redis", zap.Error(err))
		}
		defer infraRedis.Close(rdb)
		revoker = infraRedis.NewTokenBlacklist(rdb)
	}

	// 初始化Kafka生产者（可选）
	var events service.VideoEventPublisher
	if cfg.Kafka.Enabled {
		producer := infraKafka.NewProducer(&cfg.Kafka)
		defer producer.Close()
		events = producer
	}

	// 初始化 Elasticsearch（可选，失败则搜索降级到 DB）
	var searcher service.VideoSearcher
	if cfg.Elasticsearch.Enabled {
		es, err := infraES.NewClient(&cfg.Elasticsearch)
		if err != nil {
			logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
		} else {
			searcher = es
		}
	}

	if err := dto.RegisterValidators(); err != nil {
		logger.Fatal("Failed to register validators", zap.Error(err))
	}

	// 初始化依赖（Repository -> Service -> Handler）
	repos := repository.New(db)
	uow := repository.NewUnitOfWork(db)
	tokens := utils.NewTokenManager(cfg.JWT)
	policy := media.NewPolicy(cfg.Upload)

	authService := service.NewAuthService(repos, tokens, store, revoker)
	userService := service.NewUserService(repos, store)
	videoService := service.NewVideoService(repos, uow, store, media.ProbeDuration, events, searcher)

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get sql.DB", zap.Error(err))
	}

	handlers := &router.Handlers{
		Healthcheck:  handler.NewHealthcheckHandler(sqlDB),
		User:         handler.NewUserHandler(authService, userService, policy, cfg.App.SecureCookies),
		Video:        handler.NewVideoHandler(videoService, policy),
		Comment:      handler.NewCommentHandler(service.NewCommentService(repos, uow)),
		Like:         handler.NewLikeHandler(service.NewLikeService(repos)),
		Subscription: handler.NewSubscriptionHandler(service.NewSubscriptionService(repos)),
		Tweet:        handler.NewTweetHandler(service.NewTweetService(repos, uow)),
		Playlist:     handler.NewPlaylistHandler(service.NewPlaylistService(repos, uow)),
		Dashboard:    handler.NewDashboardHandler(service.NewDashboardService(repos)),
	}

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)
	r := router.New(handlers, authService)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.App.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.App.WriteTimeout) * time.Second,
	}

	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
		zap.String("database", cfg.Database.Driver),
		zap.Bool("redis", revoker != nil),
		zap.Bool("kafka", events != nil),
		zap.Bool("elasticsearch", searcher != nil),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.App.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
