package service

import (
	"context"
	"strings"

	"vortex-go/internal/model"
	"vortex-go/internal/query"
	"vortex-go/internal/repository"
)

type CommentService struct {
	repos *repository.Repositories
	uow   *repository.UnitOfWork
}

func NewCommentService(repos *repository.Repositories, uow *repository.UnitOfWork) *CommentService {
	return &CommentService{repos: repos, uow: uow}
}

// List 视频评论，最新在前
func (s *CommentService) List(ctx context.Context, videoID, viewerID int64, page query.Page) (*query.Paginated[model.CommentView], error) {
	if _, err := visibleVideo(ctx, s.repos, videoID, viewerID); err != nil {
		return nil, err
	}

	items, total, err := s.repos.Comments.ListByVideo(ctx, videoID, viewerID, page, true)
	if err != nil {
		return nil, err
	}
	return query.NewPaginated(items, page, total), nil
}

// Create 发表评论
func (s *CommentService) Create(ctx context.Context, actorID, videoID int64, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, InvalidArgument("comment content is required")
	}
	if _, err := visibleVideo(ctx, s.repos, videoID, actorID); err != nil {
		return nil, err
	}

	comment := &model.Comment{VideoID: videoID, OwnerID: actorID, Content: content}
	if err := s.repos.Comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Update 修改自己的评论
func (s *CommentService) Update(ctx context.Context, actorID, commentID int64, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, InvalidArgument("comment content is required")
	}

	comment, err := s.repos.Comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, notFound(err, ErrCommentNotFound)
	}
	if err := requireOwner(comment, actorID); err != nil {
		return nil, err
	}

	updated, err := s.repos.Comments.UpdateContent(ctx, commentID, content)
	if err != nil {
		return nil, notFound(err, ErrCommentNotFound)
	}
	return updated, nil
}

// Delete 删除自己的评论及其点赞
func (s *CommentService) Delete(ctx context.Context, actorID, commentID int64) error {
	comment, err := s.repos.Comments.GetByID(ctx, commentID)
	if err != nil {
		return notFound(err, ErrCommentNotFound)
	}
	if err := requireOwner(comment, actorID); err != nil {
		return err
	}

	err = s.uow.Execute(ctx, func(repos *repository.Repositories) error {
		return repos.Comments.DeleteCascade(ctx, commentID)
	})
	return notFound(err, ErrCommentNotFound)
}
