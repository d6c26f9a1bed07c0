package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vortex-go/internal/api/dto"
	"vortex-go/internal/media"
	"vortex-go/internal/model"
	"vortex-go/internal/repository"
	"vortex-go/pkg/logger"
	"vortex-go/pkg/utils"

	"go.uber.org/zap"
)

// TokenRevoker 已注销访问令牌的存储
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type AuthService struct {
	repos   *repository.Repositories
	tokens  *utils.TokenManager
	store   media.Store
	revoker TokenRevoker
}

// NewAuthService revoker 可为 nil，此时注销只清除刷新令牌
func NewAuthService(repos *repository.Repositories, tokens *utils.TokenManager, store media.Store, revoker TokenRevoker) *AuthService {
	return &AuthService{repos: repos, tokens: tokens, store: store, revoker: revoker}
}

// Register 用户注册：先检查重复，再上传头像与封面，最后入库；入库失败时尽力删除已上传的资源
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest, avatar, cover *media.File) (*model.User, error) {
	userName := strings.ToLower(strings.TrimSpace(req.UserName))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.repos.Users.ExistsByUserName(ctx, userName)
	if err != nil {
		return nil, err
	}
	if !exists {
		exists, err = s.repos.Users.ExistsByEmail(ctx, email, 0)
		if err != nil {
			return nil, err
		}
	}
	if exists {
		return nil, ErrUserExists
	}

	if avatar == nil {
		return nil, ErrAvatarRequired
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	avatarAsset, err := s.store.Upload(ctx, media.FolderAvatars, avatar)
	if err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}

	var coverAsset model.Asset
	if cover != nil {
		coverAsset, err = s.store.Upload(ctx, media.FolderCovers, cover)
		if err != nil {
			media.DeleteQuietly(ctx, s.store, avatarAsset)
			return nil, fmt.Errorf("upload cover image: %w", err)
		}
	}

	user := &model.User{
		UserName:   userName,
		Email:      email,
		FullName:   strings.TrimSpace(req.FullName),
		Password:   hashedPassword,
		Avatar:     avatarAsset,
		CoverImage: coverAsset,
	}

	if err := s.repos.Users.Create(ctx, user); err != nil {
		media.DeleteQuietly(ctx, s.store, avatarAsset)
		media.DeleteQuietly(ctx, s.store, coverAsset)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	logger.Info("User registered", zap.Int64("user_id", user.ID), zap.String("user_name", user.UserName))
	return user, nil
}

// Login 用户名或邮箱登录，签发令牌并保存刷新令牌
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*model.User, *utils.TokenPair, error) {
	user, err := s.repos.Users.GetByLogin(ctx,
		strings.ToLower(strings.TrimSpace(req.UserName)),
		strings.ToLower(strings.TrimSpace(req.Email)),
	)
	if err != nil {
		return nil, nil, notFound(err, ErrInvalidCredential)
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, nil, ErrInvalidCredential
	}

	pair, err := s.issue(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// RefreshToken 刷新令牌必须与库中保存的一致，成功后轮换两枚令牌
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrUnauthorized
	}

	claims, err := s.tokens.ParseToken(refreshToken, utils.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	user, err := s.repos.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, notFound(err, ErrInvalidRefresh)
	}
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, ErrInvalidRefresh
	}

	return s.issue(ctx, user.ID)
}

func (s *AuthService) issue(ctx context.Context, userID int64) (*utils.TokenPair, error) {
	pair, err := s.tokens.IssuePair(userID)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Users.SetRefreshToken(ctx, userID, &pair.RefreshToken); err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return pair, nil
}

// Logout 清除刷新令牌，并把当前访问令牌加入黑名单直至其过期
func (s *AuthService) Logout(ctx context.Context, claims *utils.Claims) error {
	if err := s.repos.Users.SetRefreshToken(ctx, claims.UserID, nil); err != nil {
		return notFound(err, ErrUserNotFound)
	}

	if s.revoker == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		logger.Warn("Failed to revoke access token", zap.Int64("user_id", claims.UserID), zap.Error(err))
	}
	return nil
}

// Authenticate 校验访问令牌。黑名单不可用时只记录日志并放行。
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*utils.Claims, error) {
	if accessToken == "" {
		return nil, ErrUnauthorized
	}

	claims, err := s.tokens.ParseToken(accessToken, utils.AccessToken)
	if err != nil {
		if errors.Is(err, utils.ErrExpiredToken) {
			return nil, newError(KindUnauthorized, "access token has expired")
		}
		return nil, newError(KindUnauthorized, "invalid access token")
	}

	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			logger.Warn("Token blacklist unavailable", zap.Error(err))
		} else if revoked {
			return nil, newError(KindUnauthorized, "access token has been revoked")
		}
	}
	return claims, nil
}
