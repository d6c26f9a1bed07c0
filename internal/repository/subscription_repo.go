package repository

import (
	"context"

	"vortex-go/internal/model"
	"vortex-go/internal/query"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Toggle 切换订阅状态，返回切换后的状态
func (r *SubscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	db := r.db.WithContext(ctx)

	result := db.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.Subscription{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "delete subscription")
	}
	if result.RowsAffected > 0 {
		return false, nil
	}

	sub := &model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(sub).Error; err != nil {
		return false, errors.Wrap(err, "create subscription")
	}
	return true, nil
}

// CountSubscribers 频道的订阅者数
func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, channelID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

// ListSubscribers 频道的订阅者，带订阅者自身的订阅数以及频道是否回订
func (r *SubscriptionRepository) ListSubscribers(ctx context.Context, channelID int64, page query.Page) ([]model.SubscriberView, int64, error) {
	q := query.From("subscriptions").
		InnerJoin("users AS u", "u.id = subscriptions.subscriber_id").
		Select(
			"u.id AS id",
			"u.user_name AS user_name",
			"u.full_name AS full_name",
			"u.avatar_url AS avatar",
			"subscriptions.created_at AS subscribed_at",
		).
		CountOf("subscribers_count", "subscriptions s2", "s2.channel_id = u.id").
		ExistsIn("subscribed_to_subscriber", "subscriptions s2",
			"s2.channel_id = u.id AND s2.subscriber_id = subscriptions.channel_id").
		Where("subscriptions.channel_id = ?", channelID).
		OrderBy(query.Sort{Column: "subscriptions.created_at", Desc: true}).
		Tiebreak("subscriptions.id", true).
		Paginate(page)

	var items []model.SubscriberView
	total, err := q.FindPage(r.db.WithContext(ctx), &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListChannels 订阅者订阅的频道，最新视频由调用方补充
func (r *SubscriptionRepository) ListChannels(ctx context.Context, subscriberID int64, page query.Page) ([]model.SubscribedChannel, int64, error) {
	q := query.From("subscriptions").
		InnerJoin("users AS u", "u.id = subscriptions.channel_id").
		Select(
			"u.id AS id",
			"u.user_name AS user_name",
			"u.full_name AS full_name",
			"u.avatar_url AS avatar",
			"subscriptions.created_at AS subscribed_at",
		).
		Where("subscriptions.subscriber_id = ?", subscriberID).
		OrderBy(query.Sort{Column: "subscriptions.created_at", Desc: true}).
		Tiebreak("subscriptions.id", true).
		Paginate(page)

	var items []model.SubscribedChannel
	total, err := q.FindPage(r.db.WithContext(ctx), &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
