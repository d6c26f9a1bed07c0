package repository

import (
	"context"
	"strings"

	"vortex-go/internal/query"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrDuplicate 唯一约束冲突
var ErrDuplicate = errors.New("duplicate key")

// translate 把不同驱动的唯一约束错误统一为 ErrDuplicate
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "SQLSTATE 23505")
}

// Repositories 绑定到同一个连接（或事务）的全部仓储
type Repositories struct {
	Users         *UserRepository
	Videos        *VideoRepository
	Comments      *CommentRepository
	Tweets        *TweetRepository
	Likes         *LikeRepository
	Subscriptions *SubscriptionRepository
	Playlists     *PlaylistRepository
	WatchHistory  *WatchHistoryRepository
}

// New 基于 db 创建全部仓储
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db),
		Videos:        NewVideoRepository(db),
		Comments:      NewCommentRepository(db),
		Tweets:        NewTweetRepository(db),
		Likes:         NewLikeRepository(db),
		Subscriptions: NewSubscriptionRepository(db),
		Playlists:     NewPlaylistRepository(db),
		WatchHistory:  NewWatchHistoryRepository(db),
	}
}

// UnitOfWork 在一个事务里执行跨仓储的写操作
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Execute fn 返回错误时整体回滚
func (u *UnitOfWork) Execute(ctx context.Context, fn func(repos *Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// ownerColumns 作者摘要投影，只包含公开字段
func ownerColumns(alias string) []string {
	return []string{
		alias + ".id AS owner_id",
		alias + ".user_name AS owner_user_name",
		alias + ".full_name AS owner_full_name",
		alias + ".avatar_url AS owner_avatar",
	}
}

// videoColumns 视频公共列
func videoColumns(t string) []string {
	return []string{
		t + ".id AS id",
		t + ".title AS title",
		t + ".description AS description",
		t + ".video_file_public_id AS video_file_public_id",
		t + ".video_file_url AS video_file_url",
		t + ".thumbnail_public_id AS thumbnail_public_id",
		t + ".thumbnail_url AS thumbnail_url",
		t + ".duration AS duration",
		t + ".views AS views",
		t + ".is_published AS is_published",
		t + ".created_at AS created_at",
		t + ".updated_at AS updated_at",
	}
}

// withVideoCard 在以 videos 为根或已连接 videos 的查询上投影 VideoCard
func withVideoCard(q *query.Query) *query.Query {
	return q.Select(videoColumns("videos")...).
		Join("users AS o", "o.id = videos.owner_id", ownerColumns("o")...)
}

// visibleTo 已发布或属于 viewer 的视频
func visibleTo(q *query.Query, videoTable string, viewerID int64) *query.Query {
	return q.Where(videoTable+".is_published = ? OR "+videoTable+".owner_id = ?", true, viewerID)
}
