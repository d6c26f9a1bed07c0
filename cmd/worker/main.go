package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vortex-go/internal/config"
	"vortex-go/internal/infra/database"
	infraES "vortex-go/internal/infra/elasticsearch"
	infraKafka "vortex-go/internal/infra/kafka"
	"vortex-go/internal/repository"
	"vortex-go/internal/service"
	"vortex-go/pkg/logger"

	"go.uber.org/zap"
)

// 搜索索引同步 worker：消费视频事件写入 Elasticsearch；-reindex 时先全量重建
func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	reindex := flag.Bool("reindex", false, "rebuild the search index from the database before consuming events")
	batchSize := flag.Int("batch", 500, "reindex batch size")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if !cfg.Elasticsearch.Enabled {
		logger.Fatal("Elasticsearch is disabled, nothing to sync")
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close(db)

	es, err := infraES.NewClient(&cfg.Elasticsearch)
	if err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	if err := es.EnsureVideosIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure videos index", zap.Error(err))
	}

	indexer := service.NewSearchIndexer(repository.New(db), es)

	if *reindex {
		if _, err := indexer.Reindex(ctx, *batchSize); err != nil {
			logger.Fatal("Reindex failed", zap.Error(err))
		}
	}

	if !cfg.Kafka.Enabled {
		logger.Info("Kafka is disabled, worker exits after reindex")
		return
	}

	logger.Info("Search sync worker started",
		zap.String("topic", cfg.Kafka.VideoTopic),
		zap.String("group", cfg.Kafka.WorkerGroup),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)
	infraKafka.ConsumeVideoEvents(ctx, &cfg.Kafka, indexer.HandleVideoEvent)
	logger.Info("Search sync worker stopped")
}
