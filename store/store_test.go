package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/reamslin/messagely/auth"
	"github.com/reamslin/messagely/internal/testutil"
	"github.com/reamslin/messagely/store"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, st *store.Store, username string) auth.Account {
	now := time.Now().UTC()
	acct, err := st.Insert(context.Background(), auth.Account{
		Username:     username,
		PasswordHash: "$2a$04$fakefakefakefakefakefakefakefakefakefakefakefakefakeP",
		FirstName:    "First-" + username,
		LastName:     "Last-" + username,
		Phone:        "555",
		JoinAt:       now,
		LastLoginAt:  now,
	})
	require.NoError(t, err)
	return acct
}

func TestInsertAndFind(t *testing.T) {
	ctx := context.Background()
	st, cleanup := testutil.AcquireStore(ctx, t)
	defer cleanup()

	seeded := seedAccount(t, st, "alice")
	acct, err := st.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, seeded.Username, acct.Username)
	require.Equal(t, seeded.PasswordHash, acct.PasswordHash)
	require.WithinDuration(t, seeded.JoinAt, acct.JoinAt, time.Second)

	_, err = st.FindByUsername(ctx, "nobody")
	var notFound auth.NotFound
	require.ErrorAs(t, err, &notFound)
}

func TestInsertConflict(t *testing.T) {
	ctx := context.Background()
	st, cleanup := testutil.AcquireStore(ctx, t)
	defer cleanup()

	seedAccount(t, st, "alice")
	_, err := st.Insert(ctx, auth.Account{
		Username: "alice", PasswordHash: "x", FirstName: "A", LastName: "B", Phone: "555",
		JoinAt: time.Now().UTC(), LastLoginAt: time.Now().UTC(),
	})
	var conflict auth.Conflict
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "alice", conflict.Username)
}

func TestTouchLastLogin(t *testing.T) {
	ctx := context.Background()
	st, cleanup := testutil.AcquireStore(ctx, t)
	defer cleanup()

	seeded := seedAccount(t, st, "alice")
	time.Sleep(10 * time.Millisecond)
	updated, err := st.TouchLastLogin(ctx, "alice")
	require.NoError(t, err)
	require.True(t, updated.LastLoginAt.After(seeded.LastLoginAt))

	_, err = st.TouchLastLogin(ctx, "nobody")
	var notFound auth.NotFound
	require.ErrorAs(t, err, &notFound)
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	st, cleanup := testutil.AcquireStore(ctx, t)
	defer cleanup()

	seedAccount(t, st, "bob")
	seedAccount(t, st, "alice")
	users, err := st.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "alice", users[0].Username)
	require.Equal(t, "bob", users[1].Username)
	require.Equal(t, "First-alice", users[0].FirstName)
}

func TestMessageFeeds(t *testing.T) {
	ctx := context.Background()
	st, cleanup := testutil.AcquireStore(ctx, t)
	defer cleanup()

	seedAccount(t, st, "alice")
	seedAccount(t, st, "bob")

	sent, err := st.CreateMessage(ctx, "alice", "bob", "hello bob")
	require.NoError(t, err)
	require.NotZero(t, sent.ID)
	require.Equal(t, "bob", sent.To.Username)

	inbound, err := st.MessagesTo(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, inbound, 1)
	require.Equal(t, "hello bob", inbound[0].Body)
	require.NotNil(t, inbound[0].From)
	require.Equal(t, "alice", inbound[0].From.Username)
	require.Nil(t, inbound[0].To)
	require.Nil(t, inbound[0].ReadAt)

	outbound, err := st.MessagesFrom(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, outbound, 1)
	require.NotNil(t, outbound[0].To)
	require.Equal(t, "bob", outbound[0].To.Username)
	require.Nil(t, outbound[0].From)

	_, err = st.CreateMessage(ctx, "nobody", "bob", "hi")
	var notFound auth.NotFound
	require.ErrorAs(t, err, &notFound)
}

func TestFeedCacheSeesNewMessages(t *testing.T) {
	ctx := context.Background()
	st, cleanup := testutil.AcquireStore(ctx, t)
	defer cleanup()

	seedAccount(t, st, "alice")
	seedAccount(t, st, "bob")

	_, err := st.CreateMessage(ctx, "alice", "bob", "first")
	require.NoError(t, err)

	// warm the cached feeds
	inbound, err := st.MessagesTo(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, inbound, 1)
	outbound, err := st.MessagesFrom(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, outbound, 1)

	_, err = st.CreateMessage(ctx, "alice", "bob", "second")
	require.NoError(t, err)

	inbound, err = st.MessagesTo(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, inbound, 2)
	require.Equal(t, "second", inbound[1].Body)
	outbound, err = st.MessagesFrom(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, outbound, 2)
}
