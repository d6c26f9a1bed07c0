package repository

import (
	"context"

	"vortex-go/internal/model"
	"vortex-go/internal/query"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(comment).Error, "create comment")
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateContent 更新评论内容
func (r *CommentRepository) UpdateContent(ctx context.Context, id int64, content string) (*model.Comment, error) {
	result := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// DeleteCascade 删除评论及其点赞，需在事务中调用
func (r *CommentRepository) DeleteCascade(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("comment_id = ?", id).Delete(&model.Like{}).Error; err != nil {
		return errors.Wrap(err, "delete comment likes")
	}
	result := db.Where("id = ?", id).Delete(&model.Comment{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete comment")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByVideo 视频评论，最新在前；withTotal 为 false 时不统计总数
func (r *CommentRepository) ListByVideo(ctx context.Context, videoID, viewerID int64, page query.Page, withTotal bool) ([]model.CommentView, int64, error) {
	q := query.From("comments").
		Select(
			"comments.id AS id",
			"comments.video_id AS video_id",
			"comments.content AS content",
			"comments.created_at AS created_at",
			"comments.updated_at AS updated_at",
		).
		CountOf("likes_count", "likes l", "l.comment_id = comments.id").
		ExistsIn("is_liked", "likes l", "l.comment_id = comments.id AND l.liked_by = ?", viewerID).
		Join("users AS o", "o.id = comments.owner_id", ownerColumns("o")...).
		Where("comments.video_id = ?", videoID).
		OrderBy(query.Sort{Column: "comments.created_at", Desc: true}).
		Tiebreak("comments.id", true).
		Paginate(page)

	db := r.db.WithContext(ctx)
	var items []model.CommentView
	if !withTotal {
		err := q.Find(db, &items)
		return items, 0, err
	}
	total, err := q.FindPage(db, &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
