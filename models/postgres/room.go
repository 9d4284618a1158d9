package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'Room' is the durable record of a two-player session. It mirrors the
 * live session state held by the store and is refreshed by the sync
 * manager on board updates and game end, so a room survives a process
 * restart.
 */
type Room struct {
	Name         string    `gorm:"primaryKey;size:100;not null"`
	CreatorName  string    `gorm:"size:50"`
	OpponentName string    `gorm:"size:50"`
	Size         int       `gorm:"default:0"`
	BoardState   string    `gorm:"type:text"`
	Turn         string    `gorm:"size:10;default:white"`
	IsOver       bool      `gorm:"default:false;index:idx_rooms_over"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Last relayed signaling payloads, kept verbatim so a rejoining
	// peer can resume negotiation.
	LastOffer     datatypes.JSON `gorm:"type:jsonb"`
	LastCandidate datatypes.JSON `gorm:"type:jsonb"`

	// Relationship with the players seated in the room
	Players []*Player `gorm:"foreignKey:RoomName;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
