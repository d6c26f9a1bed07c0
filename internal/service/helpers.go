package service

import (
	"context"

	"vortex-go/internal/model"
	"vortex-go/internal/repository"
)

// visibleVideo 未发布视频只对作者可见，其他人视为不存在
func visibleVideo(ctx context.Context, repos *repository.Repositories, videoID, viewerID int64) (*model.Video, error) {
	video, err := repos.Videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, notFound(err, ErrVideoNotFound)
	}
	if !video.IsPublished && !isOwner(video, viewerID) {
		return nil, ErrVideoNotFound
	}
	return video, nil
}

// requireUser 用户必须存在
func requireUser(ctx context.Context, repos *repository.Repositories, userID int64, missing *Error) error {
	exists, err := repos.Users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return missing
	}
	return nil
}
