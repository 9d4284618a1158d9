package sync

import (
	"context"
	"os"
	"testing"

	pgconfig "Chessio/config/postgres"
	pg_models "Chessio/models/postgres"
	redis_models "Chessio/models/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Needs a running PostgreSQL; skips when POSTGRES_HOST is unset.
func newTestManager(t *testing.T) *SyncManager {
	t.Helper()
	if os.Getenv("POSTGRES_HOST") == "" {
		t.Skip("POSTGRES_HOST not set, skipping sync manager tests")
	}
	db, err := pgconfig.ConnectGORM()
	require.NoError(t, err)
	require.NoError(t, pgconfig.MigrateDatabase(db))
	return NewSyncManager(db)
}

func TestArchiveAndDiscardRoom(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()

	session := &redis_models.RoomSession{
		Name:        "sync-test-room",
		CreatorName: "alice",
		Capacity:    2,
		Size:        2,
		BoardState:  "FEN2",
		Turn:        redis_models.ColorBlack,
		LastOffer:   `{"type":"offer"}`,
		Players: []redis_models.SessionPlayer{
			{ID: "p1", Username: "alice", RoomName: "sync-test-room", AssignedColor: redis_models.ColorWhite},
			{ID: "p2", Username: "bob", RoomName: "sync-test-room", AssignedColor: redis_models.ColorBlack},
		},
	}
	require.NoError(t, sm.ArchiveRoom(ctx, session))

	var record pg_models.Room
	require.NoError(t, sm.db.Preload("Players").Where("name = ?", "sync-test-room").First(&record).Error)
	assert.Equal(t, "FEN2", record.BoardState)
	assert.Equal(t, "black", record.Turn)
	assert.Len(t, record.Players, 2)

	// Re-archiving a changed snapshot replaces, not duplicates.
	session.Size = 1
	session.Players = session.Players[:1]
	require.NoError(t, sm.ArchiveRoom(ctx, session))
	require.NoError(t, sm.db.Preload("Players").Where("name = ?", "sync-test-room").First(&record).Error)
	assert.Equal(t, 1, record.Size)
	assert.Len(t, record.Players, 1)

	require.NoError(t, sm.DiscardRoom(ctx, "sync-test-room"))
	err := sm.db.Where("name = ?", "sync-test-room").First(&pg_models.Room{}).Error
	assert.Error(t, err)
}
