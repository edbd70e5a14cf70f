package adapter

import (
	"context"
	"testing"
	"time"

	social "go-tawk/internal/pkg/social/application/domain"
	repository "go-tawk/internal/pkg/social/persistence/repository/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemSocialRepository_FriendRequestLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemSocialRepository()
	repo.PutUser(social.User{ID: "alice", FirstName: "Alice", Verified: true})

	req := social.FriendRequest{SenderID: "alice", RecipientID: "bob"}
	require.NoError(t, repo.CreateFriendRequest(ctx, &req))
	assert.NotEmpty(t, req.ID)

	dup := social.FriendRequest{SenderID: "alice", RecipientID: "bob"}
	assert.ErrorIs(t, repo.CreateFriendRequest(ctx, &dup), repository.ErrDuplicate)

	pending, err := repo.ListPendingRequests(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.NotNil(t, pending[0].Sender)
	assert.Equal(t, "Alice", pending[0].Sender.FirstName)

	accepted, err := repo.AcceptFriendRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", accepted.SenderID)

	_, err = repo.AcceptFriendRequest(ctx, req.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	for _, pair := range [][2]string{{"alice", "bob"}, {"bob", "alice"}} {
		friends, err := repo.ListFriends(ctx, pair[0])
		require.NoError(t, err)
		require.Len(t, friends, 1)
		assert.Equal(t, pair[1], friends[0].ID)
	}
}

func TestMemSocialRepository_ListCandidates(t *testing.T) {
	ctx := context.Background()
	repo := NewMemSocialRepository()
	repo.PutUser(social.User{ID: "a", FirstName: "A", Verified: true})
	repo.PutUser(social.User{ID: "b", FirstName: "B", Verified: true})
	repo.PutUser(social.User{ID: "c", FirstName: "C", Verified: true})
	repo.PutUser(social.User{ID: "d", FirstName: "D", Verified: false})

	req := social.FriendRequest{SenderID: "a", RecipientID: "b"}
	require.NoError(t, repo.CreateFriendRequest(ctx, &req))
	_, err := repo.AcceptFriendRequest(ctx, req.ID)
	require.NoError(t, err)

	users, err := repo.ListCandidates(ctx, "a")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "c", users[0].ID)
}

func TestMemSocialRepository_SetPresenceIgnoresStaleWrites(t *testing.T) {
	ctx := context.Background()
	repo := NewMemSocialRepository()
	t0 := time.Now()

	require.NoError(t, repo.SetPresence(ctx, "u1", social.StatusOnline, t0.Add(time.Second)))
	require.NoError(t, repo.SetPresence(ctx, "u1", social.StatusOffline, t0))

	u, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, social.StatusOnline, u.Status)
}

func TestMemSocialRepository_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo := NewMemSocialRepository()
	repo.PutUser(social.User{ID: "u1", FirstName: "Old", About: "keep"})

	name := "New"
	u, err := repo.UpdateProfile(ctx, "u1", social.ProfileUpdate{FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, "New", u.FirstName)
	assert.Equal(t, "keep", u.About)

	_, err = repo.UpdateProfile(ctx, "ghost", social.ProfileUpdate{FirstName: &name})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
