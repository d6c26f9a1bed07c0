package repository

import (
	"context"

	"vortex-go/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Toggle 切换点赞状态，返回切换后的状态。
// 先按自然键删除，删到即为取消；否则插入，唯一索引冲突时忽略，
// 并发的重复切换不会产生重复记录。
func (r *LikeRepository) Toggle(ctx context.Context, subject model.LikeSubject, subjectID, userID int64) (bool, error) {
	db := r.db.WithContext(ctx)
	col := subject.Column()
	if col == "" {
		return false, errors.Errorf("unknown like subject %q", subject)
	}

	result := db.Where(col+" = ? AND liked_by = ?", subjectID, userID).Delete(&model.Like{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "delete like")
	}
	if result.RowsAffected > 0 {
		return false, nil
	}

	like := model.NewLike(subject, subjectID, userID)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
		return false, errors.Wrap(err, "create like")
	}
	return true, nil
}

// Exists 是否已点赞
func (r *LikeRepository) Exists(ctx context.Context, subject model.LikeSubject, subjectID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where(subject.Column()+" = ? AND liked_by = ?", subjectID, userID).Count(&count).Error
	return count > 0, err
}

// Count 对象的点赞数
func (r *LikeRepository) Count(ctx context.Context, subject model.LikeSubject, subjectID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where(subject.Column()+" = ?", subjectID).Count(&count).Error
	return count, err
}
