package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vortex-go/internal/api/dto"
	"vortex-go/internal/media"
	"vortex-go/internal/model"
	"vortex-go/internal/query"
	"vortex-go/internal/repository"
	"vortex-go/pkg/utils"
)

type UserService struct {
	repos *repository.Repositories
	store media.Store
}

func NewUserService(repos *repository.Repositories, store media.Store) *UserService {
	return &UserService{repos: repos, store: store}
}

// GetCurrentUser 当前登录用户
func (s *UserService) GetCurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return user, nil
}

// ChangePassword 校验旧密码后更新
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return notFound(err, ErrUserNotFound)
	}

	if !utils.VerifyPassword(req.OldPassword, user.Password) {
		return ErrWrongPassword
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	_, err = s.repos.Users.Update(ctx, userID, map[string]interface{}{"password": hashed})
	return notFound(err, ErrUserNotFound)
}

// UpdateAccount 更新全名与邮箱
func (s *UserService) UpdateAccount(ctx context.Context, userID int64, req *dto.UpdateAccountRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.repos.Users.ExistsByEmail(ctx, email, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	user, err := s.repos.Users.Update(ctx, userID, map[string]interface{}{
		"full_name": strings.TrimSpace(req.FullName),
		"email":     email,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return user, nil
}

// UpdateAvatar 替换头像
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, f *media.File) (*model.User, error) {
	if f == nil {
		return nil, ErrAvatarRequired
	}
	return s.replaceAsset(ctx, userID, f, media.FolderAvatars, "avatar_",
		func(u *model.User) model.Asset { return u.Avatar })
}

// UpdateCoverImage 替换封面图
func (s *UserService) UpdateCoverImage(ctx context.Context, userID int64, f *media.File) (*model.User, error) {
	if f == nil {
		return nil, InvalidArgument("cover image file is required")
	}
	return s.replaceAsset(ctx, userID, f, media.FolderCovers, "cover_",
		func(u *model.User) model.Asset { return u.CoverImage })
}

// replaceAsset 先上传新资源并保存引用，成功后再删除旧资源
func (s *UserService) replaceAsset(ctx context.Context, userID int64, f *media.File, folder, prefix string, current func(*model.User) model.Asset) (*model.User, error) {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	old := current(user)

	asset, err := s.store.Upload(ctx, folder, f)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", folder, err)
	}

	updated, err := s.repos.Users.Update(ctx, userID, map[string]interface{}{
		prefix + "public_id": asset.PublicID,
		prefix + "url":       asset.URL,
	})
	if err != nil {
		media.DeleteQuietly(ctx, s.store, asset)
		return nil, notFound(err, ErrUserNotFound)
	}

	media.DeleteQuietly(ctx, s.store, old)
	return updated, nil
}

// ChannelProfile 频道主页
func (s *UserService) ChannelProfile(ctx context.Context, userName string, viewerID int64) (*model.ChannelProfile, error) {
	userName = strings.ToLower(strings.TrimSpace(userName))
	if userName == "" {
		return nil, InvalidArgument("username is missing")
	}

	profile, err := s.repos.Users.ChannelProfile(ctx, userName, viewerID)
	if err != nil {
		return nil, notFound(err, ErrChannelNotFound)
	}
	return profile, nil
}

// WatchHistory 观看历史，最近观看在前
func (s *UserService) WatchHistory(ctx context.Context, userID int64, page query.Page) (*query.Paginated[model.WatchedVideo], error) {
	items, total, err := s.repos.WatchHistory.List(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return query.NewPaginated(items, page, total), nil
}
