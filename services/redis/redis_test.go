package redis_test

import (
	"context"
	"os"
	"testing"

	models "Chessio/models/redis"
	"Chessio/services/game"
	"Chessio/services/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests exercise the real Redis-backed store and need a running
// instance; they skip when REDIS_URL is unset.
func newTestClient(t *testing.T) *redis.RedisClient {
	t.Helper()
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		t.Skip("REDIS_URL not set, skipping Redis-backed store tests")
	}
	rc, err := redis.InitRedis(addr, 0)
	require.NoError(t, err)
	t.Cleanup(func() {
		rc.CleanupKeys([]string{"room:redis-test-room", "conn:redis-test-sock"})
		redis.CloseRedis(rc)
	})
	return rc
}

func TestRedisRoomRoundtrip(t *testing.T) {
	rc := newTestClient(t)
	ctx := context.Background()

	_, err := rc.GetRoom(ctx, "redis-test-room")
	assert.ErrorIs(t, err, game.ErrRoomNotFound)

	room := &models.RoomSession{
		Name:       "redis-test-room",
		Capacity:   2,
		Size:       1,
		BoardState: "start",
		Turn:       models.ColorWhite,
		Players: []models.SessionPlayer{
			{ID: "p1", Username: "alice", AssignedColor: models.ColorWhite},
		},
	}
	require.NoError(t, rc.PutRoom(ctx, room))

	got, err := rc.GetRoom(ctx, "redis-test-room")
	require.NoError(t, err)
	assert.Equal(t, room.Name, got.Name)
	assert.Equal(t, room.Size, got.Size)
	assert.Len(t, got.Players, 1)

	require.NoError(t, rc.DeleteRoom(ctx, "redis-test-room"))
	_, err = rc.GetRoom(ctx, "redis-test-room")
	assert.ErrorIs(t, err, game.ErrRoomNotFound)
}

func TestRedisAddPlayerGuard(t *testing.T) {
	rc := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, rc.PutRoom(ctx, &models.RoomSession{
		Name:     "redis-test-room",
		Capacity: 2,
		Size:     1,
		Players: []models.SessionPlayer{
			{ID: "p1", Username: "alice"},
		},
	}))

	room, err := rc.AddPlayer(ctx, "redis-test-room", models.SessionPlayer{ID: "p2", Username: "bob"})
	require.NoError(t, err)
	assert.Equal(t, 2, room.Size)
	assert.Equal(t, "bob", room.OpponentName)

	_, err = rc.AddPlayer(ctx, "redis-test-room", models.SessionPlayer{ID: "p3", Username: "carol"})
	assert.ErrorIs(t, err, game.ErrRoomFull)

	room, err = rc.RemovePlayer(ctx, "redis-test-room", "p2")
	require.NoError(t, err)
	assert.Equal(t, 1, room.Size)
}

func TestRedisConnectionBindings(t *testing.T) {
	rc := newTestClient(t)
	ctx := context.Background()

	binding, err := rc.GetConnectionBinding(ctx, "redis-test-sock")
	require.NoError(t, err)
	assert.Nil(t, binding)

	require.NoError(t, rc.BindConnection(ctx, "redis-test-sock", models.ConnectionBinding{
		RoomName: "redis-test-room", PlayerID: "p1", Username: "alice",
	}))
	binding, err = rc.GetConnectionBinding(ctx, "redis-test-sock")
	require.NoError(t, err)
	require.NotNil(t, binding)
	assert.Equal(t, "p1", binding.PlayerID)

	require.NoError(t, rc.UnbindConnection(ctx, "redis-test-sock"))
	binding, err = rc.GetConnectionBinding(ctx, "redis-test-sock")
	require.NoError(t, err)
	assert.Nil(t, binding)
}
