package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vortex-go/internal/config"
	"vortex-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// VideoEventType 视频生命周期事件类型
type VideoEventType string

const (
	VideoPublished   VideoEventType = "video.published"
	VideoUpdated     VideoEventType = "video.updated"
	VideoUnpublished VideoEventType = "video.unpublished"
	VideoDeleted     VideoEventType = "video.deleted"
)

// VideoEvent 视频事件消息体
type VideoEvent struct {
	Type       VideoEventType `json:"type"`
	VideoID    int64          `json:"video_id"`
	OwnerID    int64          `json:"owner_id"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Producer 视频事件生产者
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer 创建 Kafka 生产者
func NewProducer(cfg *config.KafkaConfig) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.VideoTopic),
	)

	return &Producer{writer: writer, topic: cfg.VideoTopic}
}

// PublishVideoEvent 发送视频事件，同一视频的事件按 key 落在同一分区以保持顺序
func (p *Producer) PublishVideoEvent(ctx context.Context, event *VideoEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal video event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(fmt.Sprintf("video-%d", event.VideoID)),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send video event: %w", err)
	}

	logger.Debug("Video event sent",
		zap.String("type", string(event.Type)),
		zap.Int64("video_id", event.VideoID),
	)
	return nil
}

// Close 关闭生产者
func (p *Producer) Close() error {
	logger.Info("Kafka producer closed")
	return p.writer.Close()
}
