package postgres

import "time"

/*
 * 'Player' is the durable record of a seat in a room. Usernames are
 * unique within a room, not globally, so the primary key is the
 * generated player id.
 */
type Player struct {
	ID                string    `gorm:"primaryKey;size:50;not null"`
	Username          string    `gorm:"size:50;not null;index:idx_players_room_user"`
	RoomName          string    `gorm:"size:100;index:idx_players_room_user"`
	ConnectionAddress string    `gorm:"size:100"`
	AssignedColor     string    `gorm:"size:10"`
	CreatedAt         time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
