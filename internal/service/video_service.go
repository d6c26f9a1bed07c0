package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vortex-go/internal/api/dto"
	"vortex-go/internal/infra/kafka"
	"vortex-go/internal/media"
	"vortex-go/internal/model"
	"vortex-go/internal/query"
	"vortex-go/internal/repository"
	"vortex-go/pkg/logger"

	"go.uber.org/zap"
)

// VideoEventPublisher 视频生命周期事件的发布方
type VideoEventPublisher interface {
	PublishVideoEvent(ctx context.Context, event *kafka.VideoEvent) error
}

// VideoSearcher 全文检索，返回候选视频 ID
type VideoSearcher interface {
	SearchVideoIDs(ctx context.Context, text string, ownerID *int64) ([]int64, error)
}

type VideoService struct {
	repos    *repository.Repositories
	uow      *repository.UnitOfWork
	store    media.Store
	probe    media.Prober
	events   VideoEventPublisher
	searcher VideoSearcher
}

// NewVideoService events 与 searcher 可为 nil：不发事件，搜索走数据库模糊匹配
func NewVideoService(repos *repository.Repositories, uow *repository.UnitOfWork, store media.Store, probe media.Prober,
	events VideoEventPublisher, searcher VideoSearcher) *VideoService {
	return &VideoService{
		repos:    repos,
		uow:      uow,
		store:    store,
		probe:    probe,
		events:   events,
		searcher: searcher,
	}
}

// Feed 已发布视频流
func (s *VideoService) Feed(ctx context.Context, req *dto.VideoListQuery) (*query.Paginated[model.VideoCard], error) {
	sort, err := query.ParseVideoSort("videos", req.SortBy, req.SortType)
	if err != nil {
		return nil, ErrInvalidSort
	}
	page := query.NewPage(req.Page, req.Limit)

	filter := repository.FeedFilter{
		Search: strings.TrimSpace(req.Query),
		Sort:   sort,
		Page:   page,
	}
	if req.UserID > 0 {
		ownerID := req.UserID
		filter.OwnerID = &ownerID
	}

	if filter.Search != "" && s.searcher != nil {
		ids, err := s.searcher.SearchVideoIDs(ctx, filter.Search, filter.OwnerID)
		if err != nil {
			logger.Warn("Video search failed, falling back to database", zap.Error(err))
		} else {
			if ids == nil {
				ids = []int64{}
			}
			filter.CandidateIDs = ids
		}
	}

	items, total, err := s.repos.Videos.Feed(ctx, filter)
	if err != nil {
		return nil, err
	}
	return query.NewPaginated(items, page, total), nil
}

// Detail 视频详情。每次成功获取播放量 +1，并记入观看历史。
func (s *VideoService) Detail(ctx context.Context, videoID, viewerID int64) (*model.VideoDetail, error) {
	if _, err := visibleVideo(ctx, s.repos, videoID, viewerID); err != nil {
		return nil, err
	}

	err := s.uow.Execute(ctx, func(repos *repository.Repositories) error {
		if err := repos.Videos.IncrementViews(ctx, videoID); err != nil {
			return err
		}
		return repos.WatchHistory.Record(ctx, viewerID, videoID, time.Now())
	})
	if err != nil {
		return nil, notFound(err, ErrVideoNotFound)
	}

	detail, err := s.repos.Videos.Detail(ctx, videoID, viewerID)
	if err != nil {
		return nil, notFound(err, ErrVideoNotFound)
	}
	return detail, nil
}

// Publish 上传视频与封面并创建已发布的视频
func (s *VideoService) Publish(ctx context.Context, ownerID int64, req *dto.PublishVideoRequest, videoFile, thumbnail *media.File) (*model.Video, error) {
	if videoFile == nil || thumbnail == nil {
		return nil, ErrVideoFileRequired
	}

	var duration float64
	if s.probe != nil {
		d, err := s.probe(ctx, videoFile.Path)
		if err != nil {
			logger.Warn("Failed to probe video duration", zap.String("file", videoFile.Name), zap.Error(err))
		} else {
			duration = d
		}
	}

	videoAsset, err := s.store.Upload(ctx, media.FolderVideos, videoFile)
	if err != nil {
		return nil, fmt.Errorf("upload video file: %w", err)
	}
	thumbAsset, err := s.store.Upload(ctx, media.FolderThumbnails, thumbnail)
	if err != nil {
		media.DeleteQuietly(ctx, s.store, videoAsset)
		return nil, fmt.Errorf("upload thumbnail: %w", err)
	}

	video := &model.Video{
		OwnerID:     ownerID,
		VideoFile:   videoAsset,
		Thumbnail:   thumbAsset,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Duration:    duration,
		IsPublished: true,
	}
	if err := s.repos.Videos.Create(ctx, video); err != nil {
		media.DeleteQuietly(ctx, s.store, videoAsset)
		media.DeleteQuietly(ctx, s.store, thumbAsset)
		return nil, err
	}

	logger.Info("Video published", zap.Int64("video_id", video.ID), zap.Int64("owner_id", ownerID))
	s.emit(ctx, kafka.VideoPublished, video)
	return video, nil
}

// Update 修改标题、描述，可选替换封面（先传新的再删旧的）
func (s *VideoService) Update(ctx context.Context, actorID, videoID int64, req *dto.UpdateVideoRequest, thumbnail *media.File) (*model.Video, error) {
	video, err := s.repos.Videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, notFound(err, ErrVideoNotFound)
	}
	if err := requireOwner(video, actorID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if title := strings.TrimSpace(req.Title); title != "" {
		updates["title"] = title
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		updates["description"] = desc
	}

	var newThumb model.Asset
	if thumbnail != nil {
		newThumb, err = s.store.Upload(ctx, media.FolderThumbnails, thumbnail)
		if err != nil {
			return nil, fmt.Errorf("upload thumbnail: %w", err)
		}
		updates["thumbnail_public_id"] = newThumb.PublicID
		updates["thumbnail_url"] = newThumb.URL
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updated, err := s.repos.Videos.Update(ctx, videoID, updates)
	if err != nil {
		media.DeleteQuietly(ctx, s.store, newThumb)
		return nil, notFound(err, ErrVideoNotFound)
	}
	if thumbnail != nil {
		media.DeleteQuietly(ctx, s.store, video.Thumbnail)
	}

	s.emit(ctx, kafka.VideoUpdated, updated)
	return updated, nil
}

// Delete 在一个事务里删除视频及其依赖，提交后再删除媒体资源
func (s *VideoService) Delete(ctx context.Context, actorID, videoID int64) error {
	video, err := s.repos.Videos.GetByID(ctx, videoID)
	if err != nil {
		return notFound(err, ErrVideoNotFound)
	}
	if err := requireOwner(video, actorID); err != nil {
		return err
	}

	err = s.uow.Execute(ctx, func(repos *repository.Repositories) error {
		return repos.Videos.DeleteCascade(ctx, videoID)
	})
	if err != nil {
		return notFound(err, ErrVideoNotFound)
	}

	media.DeleteQuietly(ctx, s.store, video.VideoFile)
	media.DeleteQuietly(ctx, s.store, video.Thumbnail)

	logger.Info("Video deleted", zap.Int64("video_id", videoID), zap.Int64("owner_id", actorID))
	s.emit(ctx, kafka.VideoDeleted, video)
	return nil
}

// TogglePublish 切换发布状态，返回切换后的状态
func (s *VideoService) TogglePublish(ctx context.Context, actorID, videoID int64) (bool, error) {
	video, err := s.repos.Videos.GetByID(ctx, videoID)
	if err != nil {
		return false, notFound(err, ErrVideoNotFound)
	}
	if err := requireOwner(video, actorID); err != nil {
		return false, err
	}

	updated, err := s.repos.Videos.Update(ctx, videoID, map[string]interface{}{
		"is_published": !video.IsPublished,
	})
	if err != nil {
		return false, notFound(err, ErrVideoNotFound)
	}

	if updated.IsPublished {
		s.emit(ctx, kafka.VideoPublished, updated)
	} else {
		s.emit(ctx, kafka.VideoUnpublished, updated)
	}
	return updated.IsPublished, nil
}

// emit 发布事件失败只记录日志
func (s *VideoService) emit(ctx context.Context, typ kafka.VideoEventType, video *model.Video) {
	if s.events == nil {
		return
	}
	event := &kafka.VideoEvent{
		Type:       typ,
		VideoID:    video.ID,
		OwnerID:    video.OwnerID,
		OccurredAt: time.Now(),
	}
	if err := s.events.PublishVideoEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish video event",
			zap.String("type", string(typ)),
			zap.Int64("video_id", video.ID),
			zap.Error(err),
		)
	}
}
