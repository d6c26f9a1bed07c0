package service

import (
	"context"
	"strings"

	"vortex-go/internal/api/dto"
	"vortex-go/internal/model"
	"vortex-go/internal/query"
	"vortex-go/internal/repository"
)

// PlaylistService 播放列表只允许作者增删视频
type PlaylistService struct {
	repos *repository.Repositories
	uow   *repository.UnitOfWork
}

func NewPlaylistService(repos *repository.Repositories, uow *repository.UnitOfWork) *PlaylistService {
	return &PlaylistService{repos: repos, uow: uow}
}

// Create 创建播放列表
func (s *PlaylistService) Create(ctx context.Context, actorID int64, req *dto.CreatePlaylistRequest) (*model.PlaylistView, error) {
	playlist := &model.Playlist{
		OwnerID:     actorID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repos.Playlists.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return s.Get(ctx, playlist.ID, actorID)
}

// Get 播放列表详情
func (s *PlaylistService) Get(ctx context.Context, playlistID, viewerID int64) (*model.PlaylistView, error) {
	view, err := s.repos.Playlists.View(ctx, playlistID, viewerID)
	if err != nil {
		return nil, notFound(err, ErrPlaylistNotFound)
	}
	return view, nil
}

// ListByUser 用户的播放列表
func (s *PlaylistService) ListByUser(ctx context.Context, userID, viewerID int64, page query.Page) (*query.Paginated[model.PlaylistView], error) {
	if err := requireUser(ctx, s.repos, userID, ErrUserNotFound); err != nil {
		return nil, err
	}

	items, total, err := s.repos.Playlists.ListByOwner(ctx, userID, viewerID, page)
	if err != nil {
		return nil, err
	}
	return query.NewPaginated(items, page, total), nil
}

// Update 修改名称或描述
func (s *PlaylistService) Update(ctx context.Context, actorID, playlistID int64, req *dto.UpdatePlaylistRequest) (*model.PlaylistView, error) {
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	if err := s.repos.Playlists.Update(ctx, playlistID, updates); err != nil {
		return nil, notFound(err, ErrPlaylistNotFound)
	}
	return s.Get(ctx, playlistID, actorID)
}

// Delete 删除播放列表
func (s *PlaylistService) Delete(ctx context.Context, actorID, playlistID int64) error {
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return err
	}

	err := s.uow.Execute(ctx, func(repos *repository.Repositories) error {
		return repos.Playlists.DeleteCascade(ctx, playlistID)
	})
	return notFound(err, ErrPlaylistNotFound)
}

// AddVideo 加入视频，已在列表中时不重复加入
func (s *PlaylistService) AddVideo(ctx context.Context, actorID, playlistID, videoID int64) (*model.PlaylistView, error) {
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return nil, err
	}
	if _, err := visibleVideo(ctx, s.repos, videoID, actorID); err != nil {
		return nil, err
	}

	added, err := s.repos.Playlists.AddVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, err
	}
	if added {
		if err := s.repos.Playlists.Touch(ctx, playlistID); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, playlistID, actorID)
}

// RemoveVideo 移出视频，不在列表中时视为成功
func (s *PlaylistService) RemoveVideo(ctx context.Context, actorID, playlistID, videoID int64) (*model.PlaylistView, error) {
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return nil, err
	}
	if _, err := s.repos.Videos.GetByID(ctx, videoID); err != nil {
		return nil, notFound(err, ErrVideoNotFound)
	}

	removed, err := s.repos.Playlists.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, err
	}
	if removed {
		if err := s.repos.Playlists.Touch(ctx, playlistID); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, playlistID, actorID)
}

func (s *PlaylistService) owned(ctx context.Context, actorID, playlistID int64) (*model.Playlist, error) {
	playlist, err := s.repos.Playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, notFound(err, ErrPlaylistNotFound)
	}
	if err := requireOwner(playlist, actorID); err != nil {
		return nil, err
	}
	return playlist, nil
}
