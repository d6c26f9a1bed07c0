package repository

import (
	"context"

	"vortex-go/internal/model"
	"vortex-go/internal/query"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type TweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(tweet).Error, "create tweet")
}

func (r *TweetRepository) GetByID(ctx context.Context, id int64) (*model.Tweet, error) {
	var tweet model.Tweet
	err := r.db.WithContext(ctx).First(&tweet, id).Error
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

// UpdateContent 更新动态内容
func (r *TweetRepository) UpdateContent(ctx context.Context, id int64, content string) (*model.Tweet, error) {
	result := r.db.WithContext(ctx).Model(&model.Tweet{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// DeleteCascade 删除动态及其点赞，需在事务中调用
func (r *TweetRepository) DeleteCascade(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("tweet_id = ?", id).Delete(&model.Like{}).Error; err != nil {
		return errors.Wrap(err, "delete tweet likes")
	}
	result := db.Where("id = ?", id).Delete(&model.Tweet{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete tweet")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByOwner 用户动态，最新在前
func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID, viewerID int64, page query.Page) ([]model.TweetView, int64, error) {
	q := query.From("tweets").
		Select(
			"tweets.id AS id",
			"tweets.content AS content",
			"tweets.created_at AS created_at",
			"tweets.updated_at AS updated_at",
		).
		CountOf("likes_count", "likes l", "l.tweet_id = tweets.id").
		ExistsIn("is_liked", "likes l", "l.tweet_id = tweets.id AND l.liked_by = ?", viewerID).
		Join("users AS o", "o.id = tweets.owner_id", ownerColumns("o")...).
		Where("tweets.owner_id = ?", ownerID).
		OrderBy(query.Sort{Column: "tweets.created_at", Desc: true}).
		Tiebreak("tweets.id", true).
		Paginate(page)

	var items []model.TweetView
	total, err := q.FindPage(r.db.WithContext(ctx), &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
