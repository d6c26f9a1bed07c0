package service

import (
	"encoding/json"
	"testing"

	"vortex-go/internal/api/dto"
	"vortex-go/internal/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "Alice")

	assert.Equal(t, "alice", user.UserName)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "secret123", user.Password)
	assert.False(t, user.Avatar.IsZero())
	assert.True(t, user.CoverImage.IsZero())

	body, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(body), user.Password)
	assert.NotContains(t, string(body), "refreshToken")

	t.Run("duplicate username ignores case", func(t *testing.T) {
		uploads := len(env.store.uploaded)
		_, err := env.auth.Register(env.ctx, &dto.RegisterRequest{
			UserName: "ALICE", Email: "other@example.com", FullName: "Other", Password: "secret123",
		}, imageFile("a.png"), nil)
		assert.ErrorIs(t, err, ErrUserExists)
		assert.Len(t, env.store.uploaded, uploads, "nothing should be uploaded for a rejected registration")
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := env.auth.Register(env.ctx, &dto.RegisterRequest{
			UserName: "bob", Email: "Alice@Example.com", FullName: "Bob", Password: "secret123",
		}, imageFile("a.png"), nil)
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("avatar required", func(t *testing.T) {
		_, err := env.auth.Register(env.ctx, &dto.RegisterRequest{
			UserName: "carol", Email: "carol@example.com", FullName: "Carol", Password: "secret123",
		}, nil, nil)
		assert.ErrorIs(t, err, ErrAvatarRequired)
	})

	t.Run("avatar removed when cover upload fails", func(t *testing.T) {
		env.store.failFolder = media.FolderCovers
		defer func() { env.store.failFolder = "" }()

		_, err := env.auth.Register(env.ctx, &dto.RegisterRequest{
			UserName: "dave", Email: "dave@example.com", FullName: "Dave", Password: "secret123",
		}, imageFile("avatar.png"), imageFile("cover.png"))
		require.Error(t, err)

		last := env.store.uploaded[len(env.store.uploaded)-1]
		assert.Contains(t, env.store.deleted, last)
		exists, err := env.repos.Users.ExistsByUserName(env.ctx, "dave")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestLoginRefreshLogout(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice")

	_, _, err := env.auth.Login(env.ctx, &dto.LoginRequest{UserName: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, _, err = env.auth.Login(env.ctx, &dto.LoginRequest{UserName: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	t.Run("username wins over email", func(t *testing.T) {
		bob := env.register(t, "bob")
		user, _, err := env.auth.Login(env.ctx, &dto.LoginRequest{UserName: "bob", Email: "alice@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, bob.ID, user.ID)
	})

	user, pair, err := env.auth.Login(env.ctx, &dto.LoginRequest{Email: "ALICE@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.UserName)

	claims, err := env.auth.Authenticate(env.ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, err = env.auth.Authenticate(env.ctx, pair.RefreshToken)
	requireKind(t, err, KindUnauthorized)

	rotated, err := env.auth.RefreshToken(env.ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// 旧刷新令牌已被轮换
	_, err = env.auth.RefreshToken(env.ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	claims, err = env.auth.Authenticate(env.ctx, rotated.AccessToken)
	require.NoError(t, err)
	require.NoError(t, env.auth.Logout(env.ctx, claims))

	_, err = env.auth.Authenticate(env.ctx, rotated.AccessToken)
	requireKind(t, err, KindUnauthorized)
	_, err = env.auth.RefreshToken(env.ctx, rotated.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestUserAccount(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	env.register(t, "bob")

	err := env.users.ChangePassword(env.ctx, alice.ID, &dto.ChangePasswordRequest{OldPassword: "nope", NewPassword: "another1"})
	assert.ErrorIs(t, err, ErrWrongPassword)
	require.NoError(t, env.users.ChangePassword(env.ctx, alice.ID, &dto.ChangePasswordRequest{OldPassword: "secret123", NewPassword: "another1"}))
	_, _, err = env.auth.Login(env.ctx, &dto.LoginRequest{UserName: "alice", Password: "another1"})
	require.NoError(t, err)

	_, err = env.users.UpdateAccount(env.ctx, alice.ID, &dto.UpdateAccountRequest{FullName: "Alice", Email: "bob@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	updated, err := env.users.UpdateAccount(env.ctx, alice.ID, &dto.UpdateAccountRequest{FullName: " Alice A ", Email: "Alice@New.com"})
	require.NoError(t, err)
	assert.Equal(t, "Alice A", updated.FullName)
	assert.Equal(t, "alice@new.com", updated.Email)

	old := alice.Avatar.PublicID
	updated, err = env.users.UpdateAvatar(env.ctx, alice.ID, imageFile("new.png"))
	require.NoError(t, err)
	assert.NotEqual(t, old, updated.Avatar.PublicID)
	assert.Contains(t, env.store.deleted, old)

	_, err = env.users.UpdateAvatar(env.ctx, alice.ID, nil)
	assert.ErrorIs(t, err, ErrAvatarRequired)

	profile, err := env.users.ChannelProfile(env.ctx, "ALICE", 0)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, profile.ID)
	assert.Zero(t, profile.SubscribersCount)

	_, err = env.users.ChannelProfile(env.ctx, "ghost", 0)
	assert.ErrorIs(t, err, ErrChannelNotFound)
	_, err = env.users.ChannelProfile(env.ctx, "  ", 0)
	requireKind(t, err, KindInvalidArgument)
}
