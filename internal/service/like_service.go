package service

import (
	"context"

	"vortex-go/internal/model"
	"vortex-go/internal/query"
	"vortex-go/internal/repository"
)

type LikeService struct {
	repos *repository.Repositories
}

func NewLikeService(repos *repository.Repositories) *LikeService {
	return &LikeService{repos: repos}
}

// ToggleVideoLike 切换对视频的点赞，返回切换后是否点赞
func (s *LikeService) ToggleVideoLike(ctx context.Context, actorID, videoID int64) (bool, error) {
	if _, err := visibleVideo(ctx, s.repos, videoID, actorID); err != nil {
		return false, err
	}
	return s.repos.Likes.Toggle(ctx, model.LikeVideo, videoID, actorID)
}

// ToggleCommentLike 切换对评论的点赞；评论所在视频对操作者不可见时视为不存在
func (s *LikeService) ToggleCommentLike(ctx context.Context, actorID, commentID int64) (bool, error) {
	comment, err := s.repos.Comments.GetByID(ctx, commentID)
	if err != nil {
		return false, notFound(err, ErrCommentNotFound)
	}
	if _, err := visibleVideo(ctx, s.repos, comment.VideoID, actorID); err != nil {
		return false, err
	}
	return s.repos.Likes.Toggle(ctx, model.LikeComment, commentID, actorID)
}

// ToggleTweetLike 切换对动态的点赞
func (s *LikeService) ToggleTweetLike(ctx context.Context, actorID, tweetID int64) (bool, error) {
	if _, err := s.repos.Tweets.GetByID(ctx, tweetID); err != nil {
		return false, notFound(err, ErrTweetNotFound)
	}
	return s.repos.Likes.Toggle(ctx, model.LikeTweet, tweetID, actorID)
}

// LikedVideos 点赞过的视频
func (s *LikeService) LikedVideos(ctx context.Context, actorID int64, page query.Page) (*query.Paginated[model.LikedVideo], error) {
	items, total, err := s.repos.Videos.LikedBy(ctx, actorID, page)
	if err != nil {
		return nil, err
	}
	return query.NewPaginated(items, page, total), nil
}
