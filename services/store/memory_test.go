package store_test

import (
	"context"
	"sync"
	"testing"

	models "Chessio/models/redis"
	"Chessio/services/game"
	"Chessio/services/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRoom(t *testing.T, st *store.MemoryStore, size int) *models.RoomSession {
	t.Helper()
	room := &models.RoomSession{
		Name:     "r1",
		Capacity: 2,
		Turn:     models.ColorWhite,
	}
	for i := 0; i < size; i++ {
		room.Players = append(room.Players, models.SessionPlayer{
			ID:       string(rune('a' + i)),
			Username: string(rune('a' + i)),
		})
	}
	room.Size = len(room.Players)
	require.NoError(t, st.PutRoom(context.Background(), room))
	return room
}

func TestMemoryStoreRooms(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	_, err := st.GetRoom(ctx, "r1")
	assert.ErrorIs(t, err, game.ErrRoomNotFound)

	seedRoom(t, st, 1)
	room, err := st.GetRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 1, room.Size)

	// Mutating the returned snapshot must not leak into the store.
	room.Players[0].Username = "tampered"
	fresh, err := st.GetRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "a", fresh.Players[0].Username)

	require.NoError(t, st.DeleteRoom(ctx, "r1"))
	_, err = st.GetRoom(ctx, "r1")
	assert.ErrorIs(t, err, game.ErrRoomNotFound)
	// Deleting again is not an error.
	assert.NoError(t, st.DeleteRoom(ctx, "r1"))
}

func TestMemoryStoreAddPlayer(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	seedRoom(t, st, 1)

	room, err := st.AddPlayer(ctx, "r1", models.SessionPlayer{ID: "p2", Username: "bob"})
	require.NoError(t, err)
	assert.Equal(t, 2, room.Size)
	assert.Equal(t, "bob", room.OpponentName)

	_, err = st.AddPlayer(ctx, "r1", models.SessionPlayer{ID: "p3", Username: "carol"})
	assert.ErrorIs(t, err, game.ErrRoomFull)

	_, err = st.AddPlayer(ctx, "ghost", models.SessionPlayer{ID: "p4"})
	assert.ErrorIs(t, err, game.ErrRoomNotFound)
}

// The capacity guard must hold under concurrent appends: out of many
// racing joins only one can take the last seat.
func TestMemoryStoreAddPlayerRace(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	seedRoom(t, st, 1)

	const racers = 8
	var wg sync.WaitGroup
	errs := make(chan error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := st.AddPlayer(ctx, "r1", models.SessionPlayer{
				ID:       string(rune('p' + n)),
				Username: string(rune('p' + n)),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok, full int
	for err := range errs {
		if err == nil {
			ok++
		} else if assert.ErrorIs(t, err, game.ErrRoomFull) {
			full++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, racers-1, full)

	room, err := st.GetRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 2, room.Size)
	assert.Len(t, room.Players, 2)
}

func TestMemoryStoreRemovePlayer(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	seedRoom(t, st, 2)

	room, err := st.RemovePlayer(ctx, "r1", "a")
	require.NoError(t, err)
	assert.Equal(t, 1, room.Size)
	assert.Nil(t, room.FindPlayerByID("a"))

	_, err = st.RemovePlayer(ctx, "r1", "a")
	assert.ErrorIs(t, err, game.ErrUserNotFound)

	room, err = st.RemovePlayer(ctx, "r1", "b")
	require.NoError(t, err)
	assert.Equal(t, 0, room.Size)
}

func TestMemoryStoreBindings(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	binding, err := st.GetConnectionBinding(ctx, "sock-1")
	require.NoError(t, err)
	assert.Nil(t, binding)

	require.NoError(t, st.BindConnection(ctx, "sock-1", models.ConnectionBinding{
		RoomName: "r1", PlayerID: "p1", Username: "alice",
	}))
	binding, err = st.GetConnectionBinding(ctx, "sock-1")
	require.NoError(t, err)
	require.NotNil(t, binding)
	assert.Equal(t, "r1", binding.RoomName)

	require.NoError(t, st.UnbindConnection(ctx, "sock-1"))
	binding, err = st.GetConnectionBinding(ctx, "sock-1")
	require.NoError(t, err)
	assert.Nil(t, binding)
	// Unbinding an unknown address is not an error.
	assert.NoError(t, st.UnbindConnection(ctx, "sock-1"))
}

func TestMemoryStoreUpdateBoard(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	seedRoom(t, st, 2)

	room, err := st.UpdateBoard(ctx, "r1", "FEN2", models.ColorBlack)
	require.NoError(t, err)
	assert.Equal(t, "FEN2", room.BoardState)
	assert.Equal(t, models.ColorBlack, room.Turn)

	_, err = st.UpdateBoard(ctx, "ghost", "FEN2", models.ColorBlack)
	assert.ErrorIs(t, err, game.ErrRoomNotFound)
}
