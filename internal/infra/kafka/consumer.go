package kafka

import (
	"context"
	"encoding/json"
	"time"

	"vortex-go/internal/config"
	"vortex-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// VideoEventHandler 处理视频事件的回调函数
type VideoEventHandler func(ctx context.Context, event *VideoEvent) error

// ConsumeVideoEvents 消费视频事件（阻塞，ctx 取消后返回）。
// 处理失败只记录日志并继续，索引偏差由 worker 的全量重建修复。
func ConsumeVideoEvents(ctx context.Context, cfg *config.KafkaConfig, handler VideoEventHandler) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.VideoTopic,
		GroupID:     cfg.WorkerGroup,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka video event consumer stopped")
	}()

	logger.Info("Kafka video event consumer started",
		zap.String("topic", cfg.VideoTopic),
		zap.String("group", cfg.WorkerGroup),
	)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		var event VideoEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("Failed to unmarshal video event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			commit(ctx, reader, msg)
			continue
		}

		if err := handler(ctx, &event); err != nil {
			logger.Error("Failed to handle video event",
				zap.String("type", string(event.Type)),
				zap.Int64("video_id", event.VideoID),
				zap.Error(err),
			)
		}
		commit(ctx, reader, msg)
	}
}

func commit(ctx context.Context, reader *kafka.Reader, msg kafka.Message) {
	if err := reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
		logger.Warn("Failed to commit kafka message", zap.Error(err), zap.Int64("offset", msg.Offset))
	}
}
