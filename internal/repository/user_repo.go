package repository

import (
	"context"

	"vortex-go/internal/model"
	"vortex-go/internal/query"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID 根据 ID 查询用户
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUserName 根据用户名查询用户
func (r *UserRepository) GetByUserName(ctx context.Context, userName string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("user_name = ?", userName).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByLogin 用户名或邮箱登录；给出用户名时只按用户名匹配
func (r *UserRepository) GetByLogin(ctx context.Context, userName, email string) (*model.User, error) {
	if userName == "" && email == "" {
		return nil, gorm.ErrRecordNotFound
	}
	db := r.db.WithContext(ctx)
	if userName != "" {
		db = db.Where("user_name = ?", userName)
	} else {
		db = db.Where("email = ?", email)
	}

	var user model.User
	if err := db.First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create 创建用户
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

// Update 更新用户字段
func (r *UserRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.User, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// SetRefreshToken 保存（或清空）当前刷新令牌
func (r *UserRepository) SetRefreshToken(ctx context.Context, id int64, token *string) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("refresh_token", token)
	if result.Error != nil {
		return errors.Wrap(result.Error, "set refresh token")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ExistsByUserName 检查用户名是否已存在
func (r *UserRepository) ExistsByUserName(ctx context.Context, userName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("user_name = ?", userName).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail 检查邮箱是否已被其他用户使用，excludeID 为 0 时不排除
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND id <> ?", email, excludeID).Count(&count).Error
	return count > 0, err
}

// Exists 用户是否存在
func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ChannelProfile 按用户名组装频道主页
func (r *UserRepository) ChannelProfile(ctx context.Context, userName string, viewerID int64) (*model.ChannelProfile, error) {
	q := query.From("users").
		Select(
			"users.id AS id",
			"users.user_name AS user_name",
			"users.full_name AS full_name",
			"users.email AS email",
			"users.avatar_public_id AS avatar_public_id",
			"users.avatar_url AS avatar_url",
			"users.cover_public_id AS cover_public_id",
			"users.cover_url AS cover_url",
			"users.created_at AS created_at",
		).
		CountOf("subscribers_count", "subscriptions s", "s.channel_id = users.id").
		CountOf("subscribed_to_count", "subscriptions s", "s.subscriber_id = users.id").
		ExistsIn("is_subscribed", "subscriptions s", "s.channel_id = users.id AND s.subscriber_id = ?", viewerID).
		Where("users.user_name = ?", userName)

	var profile model.ChannelProfile
	found, err := q.First(r.db.WithContext(ctx), &profile)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, gorm.ErrRecordNotFound
	}
	return &profile, nil
}

// ChannelStats 创作者数据概览：订阅数、视频总点赞、总播放、视频数
func (r *UserRepository) ChannelStats(ctx context.Context, userID int64) (*model.ChannelStats, error) {
	q := query.From("users").
		CountOf("total_subscribers", "subscriptions s", "s.channel_id = users.id").
		CountOf("total_likes", "likes l INNER JOIN videos v ON v.id = l.video_id", "v.owner_id = users.id").
		SumOf("total_views", "v.views", "videos v", "v.owner_id = users.id").
		CountOf("total_videos", "videos v", "v.owner_id = users.id").
		Where("users.id = ?", userID)

	var stats model.ChannelStats
	found, err := q.First(r.db.WithContext(ctx), &stats)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, gorm.ErrRecordNotFound
	}
	return &stats, nil
}

// UserNames 按 ID 批量查询用户名
func (r *UserRepository) UserNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID       int64
		UserName string
	}
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("id", "user_name").Where("id IN ?", ids).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.ID] = row.UserName
	}
	return names, nil
}
