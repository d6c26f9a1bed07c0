package repository

import (
	"context"
	"time"

	"vortex-go/internal/model"
	"vortex-go/internal/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WatchHistoryRepository struct {
	db *gorm.DB
}

func NewWatchHistoryRepository(db *gorm.DB) *WatchHistoryRepository {
	return &WatchHistoryRepository{db: db}
}

// Record 记录观看，已存在时只刷新观看时间
func (r *WatchHistoryRepository) Record(ctx context.Context, userID, videoID int64, at time.Time) error {
	entry := &model.WatchHistory{UserID: userID, VideoID: videoID, WatchedAt: at}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"watched_at"}),
	}).Create(entry).Error
}

// Count 用户观看记录条数
func (r *WatchHistoryRepository) Count(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WatchHistory{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// List 观看历史，最近观看在前；只包含仍可见的视频
func (r *WatchHistoryRepository) List(ctx context.Context, userID int64, page query.Page) ([]model.WatchedVideo, int64, error) {
	q := withVideoCard(
		query.From("watch_histories").InnerJoin("videos", "videos.id = watch_histories.video_id"),
	).
		Select("watch_histories.watched_at AS watched_at").
		Where("watch_histories.user_id = ?", userID).
		OrderBy(query.Sort{Column: "watch_histories.watched_at", Desc: true}).
		Tiebreak("watch_histories.video_id", true).
		Paginate(page)
	visibleTo(q, "videos", userID)

	var items []model.WatchedVideo
	total, err := q.FindPage(r.db.WithContext(ctx), &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
