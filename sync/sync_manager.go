package sync

import (
	"context"
	"encoding/json"
	"fmt"

	pg_models "Chessio/models/postgres"
	redis_models "Chessio/models/redis"
	"Chessio/services/game"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SyncManager mirrors live session state into PostgreSQL so rooms and
// seats survive a process restart. The live store stays authoritative;
// this is a one-way flush invoked by the coordinator after lifecycle
// and board mutations.
type SyncManager struct {
	db *gorm.DB
}

var _ game.Archiver = (*SyncManager)(nil)

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(db *gorm.DB) *SyncManager {
	return &SyncManager{db: db}
}

// ArchiveRoom upserts the room record and replaces its player records
// in a single transaction, so a crash mid-flush cannot leave a room
// pointing at seats from two different snapshots.
func (sm *SyncManager) ArchiveRoom(ctx context.Context, room *redis_models.RoomSession) error {
	record := pg_models.Room{
		Name:         room.Name,
		CreatorName:  room.CreatorName,
		OpponentName: room.OpponentName,
		Size:         room.Size,
		BoardState:   room.BoardState,
		Turn:         string(room.Turn),
		IsOver:       room.IsOver,
		CreatedAt:    room.CreatedAt,
		UpdatedAt:    room.UpdatedAt,
	}
	// Signaling payloads are opaque; wrap them as JSON string values so
	// the jsonb columns accept whatever the peers exchanged.
	if room.LastOffer != "" {
		data, err := json.Marshal(room.LastOffer)
		if err != nil {
			return fmt.Errorf("error marshaling last offer: %v", err)
		}
		record.LastOffer = datatypes.JSON(data)
	}
	if room.LastCandidate != "" {
		data, err := json.Marshal(room.LastCandidate)
		if err != nil {
			return fmt.Errorf("error marshaling last candidate: %v", err)
		}
		record.LastCandidate = datatypes.JSON(data)
	}

	return sm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			UpdateAll: true,
		}).Create(&record).Error; err != nil {
			return fmt.Errorf("error upserting room record: %v", err)
		}

		if err := tx.Where("room_name = ?", room.Name).Delete(&pg_models.Player{}).Error; err != nil {
			return fmt.Errorf("error clearing player records: %v", err)
		}
		for _, p := range room.Players {
			player := pg_models.Player{
				ID:                p.ID,
				Username:          p.Username,
				RoomName:          p.RoomName,
				ConnectionAddress: p.ConnectionAddress,
				AssignedColor:     string(p.AssignedColor),
				CreatedAt:         p.JoinedAt,
			}
			if err := tx.Create(&player).Error; err != nil {
				return fmt.Errorf("error inserting player record: %v", err)
			}
		}
		return nil
	})
}

// DiscardRoom removes the durable record once the last player leaves.
func (sm *SyncManager) DiscardRoom(ctx context.Context, name string) error {
	return sm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_name = ?", name).Delete(&pg_models.Player{}).Error; err != nil {
			return fmt.Errorf("error deleting player records: %v", err)
		}
		if err := tx.Where("name = ?", name).Delete(&pg_models.Room{}).Error; err != nil {
			return fmt.Errorf("error deleting room record: %v", err)
		}
		return nil
	})
}
