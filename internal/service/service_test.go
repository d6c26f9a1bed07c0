package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"vortex-go/internal/api/dto"
	"vortex-go/internal/config"
	"vortex-go/internal/infra/database"
	"vortex-go/internal/infra/kafka"
	"vortex-go/internal/media"
	"vortex-go/internal/model"
	"vortex-go/internal/repository"
	"vortex-go/pkg/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeStore 记录上传与删除的内存媒体存储
type fakeStore struct {
	mu       sync.Mutex
	seq      int
	uploaded []string
	deleted  []string
	// failFolder 上传到该目录时返回错误
	failFolder string
}

func (s *fakeStore) Upload(_ context.Context, folder string, f *media.File) (model.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if folder == s.failFolder {
		return model.Asset{}, errors.New("media store unavailable")
	}
	s.seq++
	id := fmt.Sprintf("%s/%d-%s", folder, s.seq, f.Name)
	s.uploaded = append(s.uploaded, id)
	return model.Asset{PublicID: id, URL: "https://cdn.test/" + id}, nil
}

func (s *fakeStore) Delete(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, publicID)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []kafka.VideoEvent
}

func (p *fakePublisher) PublishVideoEvent(_ context.Context, event *kafka.VideoEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, *event)
	return nil
}

func (p *fakePublisher) types() []kafka.VideoEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]kafka.VideoEventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type fakeRevoker struct {
	revoked map[string]bool
}

func (r *fakeRevoker) Revoke(_ context.Context, jti string, _ time.Duration) error {
	r.revoked[jti] = true
	return nil
}

func (r *fakeRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	return r.revoked[jti], nil
}

type testEnv struct {
	ctx     context.Context
	db      *gorm.DB
	repos   *repository.Repositories
	store   *fakeStore
	events  *fakePublisher
	revoker *fakeRevoker

	auth          *AuthService
	users         *UserService
	videos        *VideoService
	comments      *CommentService
	likes         *LikeService
	subscriptions *SubscriptionService
	tweets        *TweetService
	playlists     *PlaylistService
	dashboard     *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.OpenMemory(strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	repos := repository.New(db)
	uow := repository.NewUnitOfWork(db)
	store := &fakeStore{}
	events := &fakePublisher{}
	revoker := &fakeRevoker{revoked: map[string]bool{}}
	tokens := utils.NewTokenManager(config.JWTConfig{
		Issuer:             "test",
		AccessSecret:       "access",
		AccessExpireHours:  1,
		RefreshSecret:      "refresh",
		RefreshExpireHours: 24,
	})
	probe := func(context.Context, string) (float64, error) { return 12.5, nil }

	return &testEnv{
		ctx:           context.Background(),
		db:            db,
		repos:         repos,
		store:         store,
		events:        events,
		revoker:       revoker,
		auth:          NewAuthService(repos, tokens, store, revoker),
		users:         NewUserService(repos, store),
		videos:        NewVideoService(repos, uow, store, probe, events, nil),
		comments:      NewCommentService(repos, uow),
		likes:         NewLikeService(repos),
		subscriptions: NewSubscriptionService(repos),
		tweets:        NewTweetService(repos, uow),
		playlists:     NewPlaylistService(repos, uow),
		dashboard:     NewDashboardService(repos),
	}
}

func imageFile(name string) *media.File {
	return &media.File{Path: "/nonexistent/" + name, Name: name, Kind: media.KindImage, ContentType: "image/png"}
}

func (e *testEnv) register(t *testing.T, userName string) *model.User {
	t.Helper()
	user, err := e.auth.Register(e.ctx, &dto.RegisterRequest{
		UserName: userName,
		Email:    userName + "@example.com",
		FullName: "Full " + userName,
		Password: "secret123",
	}, imageFile("avatar.png"), nil)
	require.NoError(t, err)
	return user
}

func (e *testEnv) publish(t *testing.T, ownerID int64, title string) *model.Video {
	t.Helper()
	video, err := e.videos.Publish(e.ctx, ownerID, &dto.PublishVideoRequest{
		Title:       title,
		Description: "a description long enough",
	}, &media.File{Path: "/nonexistent/clip.mp4", Name: "clip.mp4", Kind: media.KindVideo}, imageFile("thumb.png"))
	require.NoError(t, err)
	return video
}

func (e *testEnv) count(t *testing.T, value interface{}, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(value).Where(where, args...).Count(&n).Error)
	return n
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equalf(t, kind, KindOf(err), "err = %v", err)
}

func TestErrorKinds(t *testing.T) {
	require.Equal(t, KindNotFound, KindOf(ErrVideoNotFound))
	require.Equal(t, KindInternal, KindOf(errors.New("boom")))
	require.Equal(t, KindInvalidArgument, KindOf(InvalidArgument("bad %s", "input")))

	wrapped := fmt.Errorf("context: %w", ErrNotOwner)
	require.ErrorIs(t, wrapped, ErrNotOwner)
	require.Equal(t, KindUnauthorized, KindOf(wrapped))
}
