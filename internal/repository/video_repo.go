package repository

import (
	"context"

	"vortex-go/internal/model"
	"vortex-go/internal/query"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// detailCommentLimit 视频详情内嵌的最新评论数，更多评论走评论列表接口
const detailCommentLimit = 100

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// GetByID 根据 ID 获取视频
func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// Create 创建视频记录
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(video).Error, "create video")
}

// Update 更新视频字段
func (r *VideoRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.Video, error) {
	result := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// IncrementViews 播放量 +1，不刷新 updated_at；视频不存在时返回 gorm.ErrRecordNotFound
func (r *VideoRepository) IncrementViews(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCascade 删除视频及其全部依赖：视频与其评论上的点赞、评论、播放列表条目、观看记录。
// 需在事务中调用。
func (r *VideoRepository) DeleteCascade(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("comment_id IN (?)", db.Model(&model.Comment{}).Select("id").Where("video_id = ?", id)).
		Delete(&model.Like{}).Error; err != nil {
		return errors.Wrap(err, "delete comment likes")
	}
	if err := db.Where("video_id = ?", id).Delete(&model.Like{}).Error; err != nil {
		return errors.Wrap(err, "delete video likes")
	}
	if err := db.Where("video_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
		return errors.Wrap(err, "delete comments")
	}
	if err := db.Where("video_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
		return errors.Wrap(err, "delete playlist entries")
	}
	if err := db.Where("video_id = ?", id).Delete(&model.WatchHistory{}).Error; err != nil {
		return errors.Wrap(err, "delete watch history")
	}

	result := db.Where("id = ?", id).Delete(&model.Video{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete video")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FeedFilter 视频流筛选条件
type FeedFilter struct {
	Search  string
	OwnerID *int64
	// CandidateIDs 非 nil 时只在这些 ID 中查找（来自搜索引擎）
	CandidateIDs []int64
	Sort         query.Sort
	Page         query.Page
}

// Feed 已发布视频流，带作者摘要
func (r *VideoRepository) Feed(ctx context.Context, f FeedFilter) ([]model.VideoCard, int64, error) {
	if f.CandidateIDs != nil && len(f.CandidateIDs) == 0 {
		return nil, 0, nil
	}

	q := withVideoCard(query.From("videos")).
		Where("videos.is_published = ?", true).
		WhereIf(f.OwnerID != nil, "videos.owner_id = ?", derefID(f.OwnerID)).
		WhereIf(f.CandidateIDs != nil, "videos.id IN ?", f.CandidateIDs).
		OrderBy(f.Sort).
		Paginate(f.Page)

	if f.CandidateIDs == nil && f.Search != "" {
		pattern := query.Contains(f.Search)
		q.Where(query.LikeClause("videos.title")+" OR "+query.LikeClause("videos.description"), pattern, pattern)
	}

	var items []model.VideoCard
	total, err := q.FindPage(r.db.WithContext(ctx), &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Detail 视频详情：点赞数、是否点赞、作者订阅数、是否订阅
func (r *VideoRepository) Detail(ctx context.Context, id, viewerID int64) (*model.VideoDetail, error) {
	q := query.From("videos").
		Select(videoColumns("videos")...).
		CountOf("likes_count", "likes l", "l.video_id = videos.id").
		ExistsIn("is_liked", "likes l", "l.video_id = videos.id AND l.liked_by = ?", viewerID).
		Join("users AS o", "o.id = videos.owner_id", ownerColumns("o")...).
		CountOf("owner_subscribers_count", "subscriptions s", "s.channel_id = videos.owner_id").
		ExistsIn("owner_is_subscribed", "subscriptions s", "s.channel_id = videos.owner_id AND s.subscriber_id = ?", viewerID).
		Where("videos.id = ?", id)

	var detail model.VideoDetail
	found, err := q.First(r.db.WithContext(ctx), &detail)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, gorm.ErrRecordNotFound
	}

	comments, _, err := NewCommentRepository(r.db).ListByVideo(ctx, id, viewerID, query.NewPage(1, detailCommentLimit), false)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []model.CommentView{}
	}
	detail.Comments = comments
	return &detail, nil
}

// ListByOwner 创作者自己的视频（含未发布），带点赞数
func (r *VideoRepository) ListByOwner(ctx context.Context, ownerID int64, page query.Page) ([]model.DashboardVideo, int64, error) {
	q := query.From("videos").
		Select(videoColumns("videos")...).
		CountOf("likes_count", "likes l", "l.video_id = videos.id").
		Where("videos.owner_id = ?", ownerID).
		OrderBy(query.Sort{Column: "videos.created_at", Desc: true}).
		Tiebreak("videos.id", true).
		Paginate(page)

	var items []model.DashboardVideo
	total, err := q.FindPage(r.db.WithContext(ctx), &items)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		items[i].Created = model.NewDateParts(items[i].CreatedAt)
	}
	return items, total, nil
}

// LikedBy 用户点赞过的视频，按视频最近更新排序
func (r *VideoRepository) LikedBy(ctx context.Context, userID int64, page query.Page) ([]model.LikedVideo, int64, error) {
	q := withVideoCard(
		query.From("likes").InnerJoin("videos", "videos.id = likes.video_id"),
	).
		Select("likes.created_at AS liked_at").
		Where("likes.liked_by = ?", userID).
		OrderBy(query.Sort{Column: "videos.updated_at", Desc: true}).
		Tiebreak("likes.id", true).
		Paginate(page)
	visibleTo(q, "videos", userID)

	var items []model.LikedVideo
	total, err := q.FindPage(r.db.WithContext(ctx), &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// LatestByOwners 每个作者最新发布的一个视频
func (r *VideoRepository) LatestByOwners(ctx context.Context, ownerIDs []int64) (map[int64]*model.VideoCard, error) {
	latest := make(map[int64]*model.VideoCard, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return latest, nil
	}

	q := withVideoCard(query.From("videos")).
		Where("videos.owner_id IN ?", ownerIDs).
		Where("videos.is_published = ?", true).
		Where(`videos.id = (SELECT v2.id FROM videos v2
			WHERE v2.owner_id = videos.owner_id AND v2.is_published = ?
			ORDER BY v2.created_at DESC, v2.id DESC LIMIT 1)`, true)

	var items []model.VideoCard
	if err := q.Find(r.db.WithContext(ctx), &items); err != nil {
		return nil, err
	}
	for i := range items {
		latest[items[i].Owner.ID] = &items[i]
	}
	return latest, nil
}

// ListForIndex 按 ID 升序批量读取视频，用于重建搜索索引
func (r *VideoRepository) ListForIndex(ctx context.Context, afterID int64, limit int) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).
		Where("id > ? AND is_published = ?", afterID, true).
		Order("id ASC").Limit(limit).
		Find(&videos).Error
	return videos, err
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
