package service

import (
	"context"
	"errors"

	"vortex-go/internal/infra/kafka"
	"vortex-go/internal/model"
	"vortex-go/internal/repository"
	"vortex-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VideoIndex 视频搜索索引
type VideoIndex interface {
	SyncVideo(ctx context.Context, v *model.Video, ownerUserName string) error
	DeleteVideo(ctx context.Context, videoID int64) error
	BulkSyncVideos(ctx context.Context, videos []model.Video, ownerNames map[int64]string) (success, failed int, err error)
}

// SearchIndexer 根据视频事件维护搜索索引
type SearchIndexer struct {
	repos *repository.Repositories
	index VideoIndex
}

func NewSearchIndexer(repos *repository.Repositories, index VideoIndex) *SearchIndexer {
	return &SearchIndexer{repos: repos, index: index}
}

// HandleVideoEvent 按数据库当前状态同步：已发布则写入索引，否则从索引移除
func (s *SearchIndexer) HandleVideoEvent(ctx context.Context, event *kafka.VideoEvent) error {
	switch event.Type {
	case kafka.VideoUnpublished, kafka.VideoDeleted:
		return s.index.DeleteVideo(ctx, event.VideoID)
	}

	video, err := s.repos.Videos.GetByID(ctx, event.VideoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.index.DeleteVideo(ctx, event.VideoID)
	}
	if err != nil {
		return err
	}
	if !video.IsPublished {
		return s.index.DeleteVideo(ctx, video.ID)
	}

	names, err := s.repos.Users.UserNames(ctx, []int64{video.OwnerID})
	if err != nil {
		return err
	}
	return s.index.SyncVideo(ctx, video, names[video.OwnerID])
}

// Reindex 分批把全部已发布视频写入索引
func (s *SearchIndexer) Reindex(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 500
	}

	var afterID int64
	total := 0
	for {
		videos, err := s.repos.Videos.ListForIndex(ctx, afterID, batchSize)
		if err != nil {
			return total, err
		}
		if len(videos) == 0 {
			break
		}

		ownerIDs := make([]int64, 0, len(videos))
		for i := range videos {
			ownerIDs = append(ownerIDs, videos[i].OwnerID)
		}
		names, err := s.repos.Users.UserNames(ctx, ownerIDs)
		if err != nil {
			return total, err
		}

		success, failed, err := s.index.BulkSyncVideos(ctx, videos, names)
		if err != nil {
			return total, err
		}
		if failed > 0 {
			logger.Warn("Some videos failed to index", zap.Int("failed", failed))
		}
		total += success
		afterID = videos[len(videos)-1].ID
	}

	logger.Info("Search index rebuilt", zap.Int("indexed", total))
	return total, nil
}
