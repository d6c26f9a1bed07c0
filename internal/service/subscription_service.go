package service

import (
	"context"

	"vortex-go/internal/model"
	"vortex-go/internal/query"
	"vortex-go/internal/repository"
)

type SubscriptionService struct {
	repos *repository.Repositories
}

func NewSubscriptionService(repos *repository.Repositories) *SubscriptionService {
	return &SubscriptionService{repos: repos}
}

// Toggle 切换订阅，返回切换后是否订阅。不能订阅自己。
func (s *SubscriptionService) Toggle(ctx context.Context, actorID, channelID int64) (bool, error) {
	if actorID == channelID {
		return false, ErrSubscribeSelf
	}
	if err := requireUser(ctx, s.repos, channelID, ErrChannelNotFound); err != nil {
		return false, err
	}
	return s.repos.Subscriptions.Toggle(ctx, actorID, channelID)
}

// Subscribers 频道的订阅者
func (s *SubscriptionService) Subscribers(ctx context.Context, channelID int64, page query.Page) (*query.Paginated[model.SubscriberView], error) {
	if err := requireUser(ctx, s.repos, channelID, ErrChannelNotFound); err != nil {
		return nil, err
	}

	items, total, err := s.repos.Subscriptions.ListSubscribers(ctx, channelID, page)
	if err != nil {
		return nil, err
	}
	return query.NewPaginated(items, page, total), nil
}

// Channels 用户订阅的频道，带各频道最新发布的视频
func (s *SubscriptionService) Channels(ctx context.Context, subscriberID int64, page query.Page) (*query.Paginated[model.SubscribedChannel], error) {
	if err := requireUser(ctx, s.repos, subscriberID, ErrUserNotFound); err != nil {
		return nil, err
	}

	items, total, err := s.repos.Subscriptions.ListChannels(ctx, subscriberID, page)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	latest, err := s.repos.Videos.LatestByOwners(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].LatestVideo = latest[items[i].ID]
	}
	return query.NewPaginated(items, page, total), nil
}
