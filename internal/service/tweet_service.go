package service

import (
	"context"
	"strings"

	"vortex-go/internal/model"
	"vortex-go/internal/query"
	"vortex-go/internal/repository"
)

type TweetService struct {
	repos *repository.Repositories
	uow   *repository.UnitOfWork
}

func NewTweetService(repos *repository.Repositories, uow *repository.UnitOfWork) *TweetService {
	return &TweetService{repos: repos, uow: uow}
}

// Create 发布动态
func (s *TweetService) Create(ctx context.Context, actorID int64, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, InvalidArgument("tweet content is required")
	}

	tweet := &model.Tweet{OwnerID: actorID, Content: content}
	if err := s.repos.Tweets.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

// ListByUser 用户的动态，最新在前
func (s *TweetService) ListByUser(ctx context.Context, userID, viewerID int64, page query.Page) (*query.Paginated[model.TweetView], error) {
	if err := requireUser(ctx, s.repos, userID, ErrUserNotFound); err != nil {
		return nil, err
	}

	items, total, err := s.repos.Tweets.ListByOwner(ctx, userID, viewerID, page)
	if err != nil {
		return nil, err
	}
	return query.NewPaginated(items, page, total), nil
}

// Update 修改自己的动态
func (s *TweetService) Update(ctx context.Context, actorID, tweetID int64, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, InvalidArgument("tweet content is required")
	}

	tweet, err := s.repos.Tweets.GetByID(ctx, tweetID)
	if err != nil {
		return nil, notFound(err, ErrTweetNotFound)
	}
	if err := requireOwner(tweet, actorID); err != nil {
		return nil, err
	}

	updated, err := s.repos.Tweets.UpdateContent(ctx, tweetID, content)
	if err != nil {
		return nil, notFound(err, ErrTweetNotFound)
	}
	return updated, nil
}

// Delete 删除自己的动态及其点赞
func (s *TweetService) Delete(ctx context.Context, actorID, tweetID int64) error {
	tweet, err := s.repos.Tweets.GetByID(ctx, tweetID)
	if err != nil {
		return notFound(err, ErrTweetNotFound)
	}
	if err := requireOwner(tweet, actorID); err != nil {
		return err
	}

	err = s.uow.Execute(ctx, func(repos *repository.Repositories) error {
		return repos.Tweets.DeleteCascade(ctx, tweetID)
	})
	return notFound(err, ErrTweetNotFound)
}
