package service

import (
	"testing"

	"vortex-go/internal/api/dto"
	"vortex-go/internal/model"
	"vortex-go/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleVideoLike(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	video := env.publish(t, alice.ID, "Likeable")

	for i, want := range []bool{true, false, true} {
		liked, err := env.likes.ToggleVideoLike(env.ctx, bob.ID, video.ID)
		require.NoError(t, err)
		assert.Equalf(t, want, liked, "toggle #%d", i+1)
	}
	assert.EqualValues(t, 1, env.count(t, &model.Like{}, "video_id = ? AND liked_by = ?", video.ID, bob.ID))
	n, err := env.repos.Likes.Count(env.ctx, model.LikeVideo, video.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	exists, err := env.repos.Likes.Exists(env.ctx, model.LikeVideo, video.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	detail, err := env.videos.Detail(env.ctx, video.ID, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, detail.LikesCount)
	assert.True(t, detail.IsLiked)

	liked, err := env.likes.LikedVideos(env.ctx, bob.ID, query.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, liked.Items, 1)
	assert.Equal(t, video.ID, liked.Items[0].ID)

	_, err = env.likes.ToggleVideoLike(env.ctx, bob.ID, 9999)
	assert.ErrorIs(t, err, ErrVideoNotFound)
	_, err = env.likes.ToggleCommentLike(env.ctx, bob.ID, 9999)
	assert.ErrorIs(t, err, ErrCommentNotFound)
	_, err = env.likes.ToggleTweetLike(env.ctx, bob.ID, 9999)
	assert.ErrorIs(t, err, ErrTweetNotFound)
}

func TestSubscriptions(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	latest := env.publish(t, alice.ID, "Newest upload")

	_, err := env.subscriptions.Toggle(env.ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSubscribeSelf)
	_, err = env.subscriptions.Toggle(env.ctx, bob.ID, 9999)
	assert.ErrorIs(t, err, ErrChannelNotFound)

	subscribed, err := env.subscriptions.Toggle(env.ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)

	subs, err := env.subscriptions.Subscribers(env.ctx, alice.ID, query.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, subs.Items, 1)
	assert.Equal(t, bob.ID, subs.Items[0].ID)
	assert.False(t, subs.Items[0].SubscribedToSubscriber)

	channels, err := env.subscriptions.Channels(env.ctx, bob.ID, query.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, channels.Items, 1)
	require.NotNil(t, channels.Items[0].LatestVideo)
	assert.Equal(t, latest.ID, channels.Items[0].LatestVideo.ID)

	profile, err := env.users.ChannelProfile(env.ctx, "alice", bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, profile.SubscribersCount)
	assert.True(t, profile.IsSubscribed)

	subscribed, err = env.subscriptions.Toggle(env.ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, subscribed)
	assert.Zero(t, env.count(t, &model.Subscription{}, "channel_id = ?", alice.ID))
}

func TestCommentLikeOnHiddenVideo(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	video := env.publish(t, alice.ID, "Soon private")

	comment, err := env.comments.Create(env.ctx, alice.ID, video.ID, "pinned note")
	require.NoError(t, err)
	_, err = env.videos.TogglePublish(env.ctx, alice.ID, video.ID)
	require.NoError(t, err)

	_, err = env.comments.List(env.ctx, video.ID, bob.ID, query.NewPage(1, 10))
	assert.ErrorIs(t, err, ErrVideoNotFound)
	_, err = env.likes.ToggleCommentLike(env.ctx, bob.ID, comment.ID)
	assert.ErrorIs(t, err, ErrVideoNotFound)
	n, err := env.repos.Likes.Count(env.ctx, model.LikeComment, comment.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	// 作者本人仍可点赞
	liked, err := env.likes.ToggleCommentLike(env.ctx, alice.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestSubscriberCounts(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	fans := []string{"bob", "carol", "dave", "erin"}

	for i := 0; i <= len(fans); i++ {
		if i > 0 {
			fan := env.register(t, fans[i-1])
			subscribed, err := env.subscriptions.Toggle(env.ctx, fan.ID, alice.ID)
			require.NoError(t, err)
			require.True(t, subscribed)
		}

		profile, err := env.users.ChannelProfile(env.ctx, "alice", alice.ID)
		require.NoError(t, err)
		assert.EqualValuesf(t, i, profile.SubscribersCount, "after %d subscriptions", i)

		n, err := env.repos.Subscriptions.CountSubscribers(env.ctx, alice.ID)
		require.NoError(t, err)
		assert.EqualValues(t, i, n)
	}

	carol, err := env.repos.Users.GetByUserName(env.ctx, "carol")
	require.NoError(t, err)
	_, err = env.subscriptions.Toggle(env.ctx, alice.ID, carol.ID)
	require.NoError(t, err)

	subs, err := env.subscriptions.Subscribers(env.ctx, alice.ID, query.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, subs.Items, len(fans))
	for _, sub := range subs.Items {
		assert.Equalf(t, sub.ID == carol.ID, sub.SubscribedToSubscriber, "subscriber %s", sub.UserName)
		if sub.ID == carol.ID {
			assert.EqualValues(t, 1, sub.SubscribersCount)
		}
	}
}

func TestPlaylists(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	video := env.publish(t, alice.ID, "Playlist material")

	playlist, err := env.playlists.Create(env.ctx, alice.ID, &dto.CreatePlaylistRequest{Name: " Favs ", Description: "best of"})
	require.NoError(t, err)
	assert.Equal(t, "Favs", playlist.Name)
	assert.Zero(t, playlist.TotalVideos)

	for i := 0; i < 2; i++ {
		view, err := env.playlists.AddVideo(env.ctx, alice.ID, playlist.ID, video.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, view.TotalVideos)
		require.Len(t, view.Videos, 1)
	}

	entries, err := env.repos.Playlists.CountVideos(env.ctx, playlist.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, entries)

	_, err = env.playlists.AddVideo(env.ctx, bob.ID, playlist.ID, video.ID)
	assert.ErrorIs(t, err, ErrNotOwner)
	_, err = env.playlists.AddVideo(env.ctx, alice.ID, playlist.ID, 9999)
	assert.ErrorIs(t, err, ErrVideoNotFound)

	name := "Renamed"
	updated, err := env.playlists.Update(env.ctx, alice.ID, playlist.ID, &dto.UpdatePlaylistRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	_, err = env.playlists.Update(env.ctx, alice.ID, playlist.ID, &dto.UpdatePlaylistRequest{})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)

	list, err := env.playlists.ListByUser(env.ctx, alice.ID, bob.ID, query.NewPage(1, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)

	view, err := env.playlists.RemoveVideo(env.ctx, alice.ID, playlist.ID, video.ID)
	require.NoError(t, err)
	assert.Zero(t, view.TotalVideos)
	_, err = env.playlists.RemoveVideo(env.ctx, alice.ID, playlist.ID, video.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, env.playlists.Delete(env.ctx, bob.ID, playlist.ID), ErrNotOwner)
	require.NoError(t, env.playlists.Delete(env.ctx, alice.ID, playlist.ID))
	_, err = env.playlists.Get(env.ctx, playlist.ID, alice.ID)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)
}

func TestPlaylistTotalsFollowVisibility(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	public := env.publish(t, alice.ID, "Public cut")
	private := env.publish(t, alice.ID, "Private cut")

	for i := 0; i < 3; i++ {
		_, err := env.videos.Detail(env.ctx, public.ID, bob.ID)
		require.NoError(t, err)
	}
	_, err := env.videos.Detail(env.ctx, private.ID, alice.ID)
	require.NoError(t, err)
	_, err = env.videos.TogglePublish(env.ctx, alice.ID, private.ID)
	require.NoError(t, err)

	playlist, err := env.playlists.Create(env.ctx, alice.ID, &dto.CreatePlaylistRequest{Name: "Mixed", Description: "public and private"})
	require.NoError(t, err)
	for _, id := range []int64{public.ID, private.ID} {
		_, err := env.playlists.AddVideo(env.ctx, alice.ID, playlist.ID, id)
		require.NoError(t, err)
	}

	owner, err := env.playlists.Get(env.ctx, playlist.ID, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, owner.TotalVideos)
	assert.EqualValues(t, 4, owner.TotalViews)
	assert.Len(t, owner.Videos, 2)

	other, err := env.playlists.Get(env.ctx, playlist.ID, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, other.TotalVideos)
	assert.EqualValues(t, 3, other.TotalViews)
	require.Len(t, other.Videos, 1)
	assert.Equal(t, public.ID, other.Videos[0].ID)
}

func TestComments(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	video := env.publish(t, alice.ID, "Discuss")

	_, err := env.comments.Create(env.ctx, bob.ID, video.ID, "   ")
	requireKind(t, err, KindInvalidArgument)

	comment, err := env.comments.Create(env.ctx, bob.ID, video.ID, "first!")
	require.NoError(t, err)
	_, err = env.likes.ToggleCommentLike(env.ctx, alice.ID, comment.ID)
	require.NoError(t, err)

	list, err := env.comments.List(env.ctx, video.ID, alice.ID, query.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.EqualValues(t, 1, list.Items[0].LikesCount)
	assert.True(t, list.Items[0].IsLiked)
	assert.Equal(t, "bob", list.Items[0].Owner.UserName)

	_, err = env.comments.Update(env.ctx, alice.ID, comment.ID, "edited")
	assert.ErrorIs(t, err, ErrNotOwner)
	updated, err := env.comments.Update(env.ctx, bob.ID, comment.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	assert.ErrorIs(t, env.comments.Delete(env.ctx, alice.ID, comment.ID), ErrNotOwner)
	require.NoError(t, env.comments.Delete(env.ctx, bob.ID, comment.ID))
	assert.Zero(t, env.count(t, &model.Like{}, "comment_id = ?", comment.ID))
	assert.ErrorIs(t, env.comments.Delete(env.ctx, bob.ID, comment.ID), ErrCommentNotFound)
}

func TestTweets(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	tweet, err := env.tweets.Create(env.ctx, alice.ID, "hello world")
	require.NoError(t, err)
	liked, err := env.likes.ToggleTweetLike(env.ctx, bob.ID, tweet.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	list, err := env.tweets.ListByUser(env.ctx, alice.ID, bob.ID, query.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.EqualValues(t, 1, list.Items[0].LikesCount)
	assert.True(t, list.Items[0].IsLiked)

	_, err = env.tweets.ListByUser(env.ctx, 9999, bob.ID, query.NewPage(1, 10))
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = env.tweets.Update(env.ctx, bob.ID, tweet.ID, "mine now")
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, env.tweets.Delete(env.ctx, alice.ID, tweet.ID))
	assert.Zero(t, env.count(t, &model.Like{}, "tweet_id = ?", tweet.ID))
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	first := env.publish(t, alice.ID, "One")
	second := env.publish(t, alice.ID, "Two")

	_, err := env.videos.TogglePublish(env.ctx, alice.ID, second.ID)
	require.NoError(t, err)
	_, err = env.videos.Detail(env.ctx, first.ID, bob.ID)
	require.NoError(t, err)
	_, err = env.likes.ToggleVideoLike(env.ctx, bob.ID, first.ID)
	require.NoError(t, err)
	_, err = env.subscriptions.Toggle(env.ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	stats, err := env.dashboard.Stats(env.ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ChannelStats{TotalSubscribers: 1, TotalLikes: 1, TotalViews: 1, TotalVideos: 2}, *stats)

	videos, err := env.dashboard.Videos(env.ctx, alice.ID, query.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, videos.Items, 2)
	// 未发布的视频也出现在创作者列表里
	assert.ElementsMatch(t, []int64{first.ID, second.ID}, []int64{videos.Items[0].ID, videos.Items[1].ID})
	assert.NotZero(t, videos.Items[0].Created.Year)

	empty, err := env.dashboard.Stats(env.ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, *empty)
}
