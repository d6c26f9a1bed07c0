package minio

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"vortex-go/internal/config"
	"vortex-go/internal/media"
	"vortex-go/internal/model"
	"vortex-go/pkg/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// breakerState 媒体存储熔断器状态：0 关闭，1 半开，2 打开
var breakerState = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "vortex_media_breaker_state",
	Help: "State of the media store circuit breaker (0 closed, 1 half-open, 2 open).",
})

// MediaStore 基于 MinIO 的媒体存储。公开 ID 即对象名，URL 由公开访问前缀拼接。
type MediaStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
	breaker *gobreaker.CircuitBreaker[any]
}

var _ media.Store = (*MediaStore)(nil)

// NewMediaStore 初始化 MinIO 客户端，确保 Bucket 存在且公开可读
func NewMediaStore(cfg *config.MinIOConfig) (*MediaStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info("MinIO bucket created", zap.String("bucket", cfg.Bucket))
	}

	// 资源 URL 直接返回给前端，Bucket 需要公开读
	policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, cfg.Bucket)
	if err := client.SetBucketPolicy(ctx, cfg.Bucket, policy); err != nil {
		return nil, fmt.Errorf("failed to set public policy for %s: %w", cfg.Bucket, err)
	}

	logger.Info("MinIO connected",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket),
	)

	return &MediaStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: publicBaseURL(cfg),
		breaker: newBreaker(cfg),
	}, nil
}

func newBreaker(cfg *config.MinIOConfig) *gobreaker.CircuitBreaker[any] {
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	timeout := time.Duration(cfg.BreakerOpenTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "media-store",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			breakerState.Set(float64(to))
			logger.Warn("Media store breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

func publicBaseURL(cfg *config.MinIOConfig) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
}

// objectName 对象名：<folder>/<uuid><ext>
func objectName(folder, fileName string) string {
	return fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), strings.ToLower(filepath.Ext(fileName)))
}

// URL 对象的公开访问地址
func (s *MediaStore) URL(publicID string) string {
	return s.baseURL + "/" + publicID
}

// Upload 上传本地文件
func (s *MediaStore) Upload(ctx context.Context, folder string, f *media.File) (model.Asset, error) {
	name := objectName(folder, f.Name)

	_, err := s.breaker.Execute(func() (any, error) {
		return s.client.FPutObject(ctx, s.bucket, name, f.Path, minio.PutObjectOptions{
			ContentType: f.ContentType,
		})
	})
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to upload to minio: %w", err)
	}

	logger.Debug("Asset uploaded", zap.String("object", name), zap.Int64("size", f.Size))
	return model.Asset{PublicID: name, URL: s.URL(name)}, nil
}

// Delete 删除对象
func (s *MediaStore) Delete(ctx context.Context, publicID string) error {
	_, err := s.breaker.Execute(func() (any, error) {
		return nil, s.client.RemoveObject(ctx, s.bucket, publicID, minio.RemoveObjectOptions{})
	})
	if err != nil {
		return fmt.Errorf("failed to delete from minio: %w", err)
	}
	return nil
}
