package service

import (
	"context"

	"vortex-go/internal/model"
	"vortex-go/internal/query"
	"vortex-go/internal/repository"
)

type DashboardService struct {
	repos *repository.Repositories
}

func NewDashboardService(repos *repository.Repositories) *DashboardService {
	return &DashboardService{repos: repos}
}

// Stats 当前用户的频道数据
func (s *DashboardService) Stats(ctx context.Context, actorID int64) (*model.ChannelStats, error) {
	stats, err := s.repos.Users.ChannelStats(ctx, actorID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return stats, nil
}

// Videos 当前用户的全部视频（含未发布）
func (s *DashboardService) Videos(ctx context.Context, actorID int64, page query.Page) (*query.Paginated[model.DashboardVideo], error) {
	items, total, err := s.repos.Videos.ListByOwner(ctx, actorID, page)
	if err != nil {
		return nil, err
	}
	return query.NewPaginated(items, page, total), nil
}
