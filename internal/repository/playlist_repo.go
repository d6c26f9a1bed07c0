package repository

import (
	"context"
	"time"

	"vortex-go/internal/model"
	"vortex-go/internal/query"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const playlistVideosFrom = "playlist_videos pv INNER JOIN videos v ON v.id = pv.video_id"

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(playlist).Error, "create playlist")
}

func (r *PlaylistRepository) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.WithContext(ctx).First(&playlist, id).Error
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// Update 更新播放列表字段
func (r *PlaylistRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Playlist{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Touch 刷新更新时间
func (r *PlaylistRepository) Touch(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Playlist{}).Where("id = ?", id).
		Update("updated_at", time.Now()).Error
}

// DeleteCascade 删除播放列表及其条目，需在事务中调用
func (r *PlaylistRepository) DeleteCascade(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("playlist_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
		return errors.Wrap(err, "delete playlist entries")
	}
	result := db.Where("id = ?", id).Delete(&model.Playlist{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete playlist")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AddVideo 集合插入，已存在时不变；返回是否新增
func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "add playlist video")
	}
	return result.RowsAffected > 0, nil
}

// RemoveVideo 集合删除；返回是否删除了记录
func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideo{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "remove playlist video")
	}
	return result.RowsAffected > 0, nil
}

// CountVideos 播放列表中的视频条目数（不区分可见性）
func (r *PlaylistRepository) CountVideos(ctx context.Context, playlistID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PlaylistVideo{}).
		Where("playlist_id = ?", playlistID).Count(&count).Error
	return count, err
}

// viewQuery 播放列表读模型：作者摘要与对 viewer 可见视频的数量、播放量合计
func viewQuery(viewerID int64) *query.Query {
	visible := "pv.playlist_id = playlists.id AND (v.is_published = ? OR v.owner_id = ?)"
	return query.From("playlists").
		Select(
			"playlists.id AS id",
			"playlists.name AS name",
			"playlists.description AS description",
			"playlists.created_at AS created_at",
			"playlists.updated_at AS updated_at",
		).
		CountOf("total_videos", playlistVideosFrom, visible, true, viewerID).
		SumOf("total_views", "v.views", playlistVideosFrom, visible, true, viewerID).
		Join("users AS o", "o.id = playlists.owner_id", ownerColumns("o")...)
}

// View 单个播放列表，含视频列表
func (r *PlaylistRepository) View(ctx context.Context, id, viewerID int64) (*model.PlaylistView, error) {
	q := viewQuery(viewerID).Where("playlists.id = ?", id)

	var view model.PlaylistView
	found, err := q.First(r.db.WithContext(ctx), &view)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, gorm.ErrRecordNotFound
	}

	views := []model.PlaylistView{view}
	if err := r.attachVideos(ctx, views, viewerID); err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListByOwner 用户的播放列表，最近更新在前
func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID, viewerID int64, page query.Page) ([]model.PlaylistView, int64, error) {
	q := viewQuery(viewerID).
		Where("playlists.owner_id = ?", ownerID).
		OrderBy(query.Sort{Column: "playlists.updated_at", Desc: true}).
		Tiebreak("playlists.id", true).
		Paginate(page)

	var items []model.PlaylistView
	total, err := q.FindPage(r.db.WithContext(ctx), &items)
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachVideos(ctx, items, viewerID); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// attachVideos 一次查询补齐多个播放列表的视频，按加入顺序
func (r *PlaylistRepository) attachVideos(ctx context.Context, playlists []model.PlaylistView, viewerID int64) error {
	if len(playlists) == 0 {
		return nil
	}
	ids := make([]int64, len(playlists))
	for i := range playlists {
		ids[i] = playlists[i].ID
		playlists[i].Videos = []model.VideoCard{}
	}

	q := withVideoCard(
		query.From("playlist_videos").InnerJoin("videos", "videos.id = playlist_videos.video_id"),
	).
		Select("playlist_videos.playlist_id AS playlist_id").
		Where("playlist_videos.playlist_id IN ?", ids).
		OrderBy(query.Sort{Column: "playlist_videos.created_at"}).
		Tiebreak("videos.id", false)
	visibleTo(q, "videos", viewerID)

	var cards []model.PlaylistVideoCard
	if err := q.Find(r.db.WithContext(ctx), &cards); err != nil {
		return err
	}

	index := make(map[int64]int, len(playlists))
	for i := range playlists {
		index[playlists[i].ID] = i
	}
	for _, c := range cards {
		if i, ok := index[c.PlaylistID]; ok {
			playlists[i].Videos = append(playlists[i].Videos, c.VideoCard)
		}
	}
	return nil
}
