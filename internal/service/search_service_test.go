package service

import (
	"context"
	"testing"

	"vortex-go/internal/infra/kafka"
	"vortex-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	docs map[int64]string
}

func (f *fakeIndex) SyncVideo(_ context.Context, v *model.Video, ownerUserName string) error {
	f.docs[v.ID] = ownerUserName
	return nil
}

func (f *fakeIndex) DeleteVideo(_ context.Context, videoID int64) error {
	delete(f.docs, videoID)
	return nil
}

func (f *fakeIndex) BulkSyncVideos(_ context.Context, videos []model.Video, ownerNames map[int64]string) (int, int, error) {
	for i := range videos {
		f.docs[videos[i].ID] = ownerNames[videos[i].OwnerID]
	}
	return len(videos), 0, nil
}

func TestSearchIndexer(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	first := env.publish(t, alice.ID, "Indexed one")
	second := env.publish(t, alice.ID, "Indexed two")
	hidden := env.publish(t, alice.ID, "Never indexed")
	_, err := env.videos.TogglePublish(env.ctx, alice.ID, hidden.ID)
	require.NoError(t, err)

	index := &fakeIndex{docs: map[int64]string{}}
	indexer := NewSearchIndexer(env.repos, index)

	n, err := indexer.Reindex(env.ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, map[int64]string{first.ID: "alice", second.ID: "alice"}, index.docs)

	require.NoError(t, indexer.HandleVideoEvent(env.ctx, &kafka.VideoEvent{Type: kafka.VideoUnpublished, VideoID: first.ID}))
	assert.NotContains(t, index.docs, first.ID)

	// 事件以数据库当前状态为准：已取消发布的视频不会被写回索引
	require.NoError(t, indexer.HandleVideoEvent(env.ctx, &kafka.VideoEvent{Type: kafka.VideoUpdated, VideoID: hidden.ID}))
	assert.NotContains(t, index.docs, hidden.ID)

	require.NoError(t, indexer.HandleVideoEvent(env.ctx, &kafka.VideoEvent{Type: kafka.VideoPublished, VideoID: first.ID}))
	assert.Equal(t, "alice", index.docs[first.ID])

	require.NoError(t, env.videos.Delete(env.ctx, alice.ID, second.ID))
	require.NoError(t, indexer.HandleVideoEvent(env.ctx, &kafka.VideoEvent{Type: kafka.VideoUpdated, VideoID: second.ID}))
	assert.NotContains(t, index.docs, second.ID)
}
