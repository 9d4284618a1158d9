package game

import (
	"context"

	models "Chessio/models/redis"
)

// Broadcaster is the outbound side of the coordinator: one primitive
// per addressing mode. The socket.io layer implements it against live
// connections; tests implement it with a recording fake.
type Broadcaster interface {
	// SendTo emits an event to a single connection address.
	SendTo(address, event string, payload interface{})

	// SendToRoom emits an event to every connection in a room group.
	SendToRoom(room, event string, payload interface{})

	// SendToRoomExcept emits an event to every connection in a room
	// group except the given address.
	SendToRoomExcept(room, address, event string, payload interface{})
}

// Archiver flushes live session state to durable storage so rooms
// survive a process restart. The coordinator treats archive failures
// as non-fatal: the live session is authoritative while the process
// runs, so a failed flush is logged and play continues.
type Archiver interface {
	ArchiveRoom(ctx context.Context, room *models.RoomSession) error
	DiscardRoom(ctx context.Context, name string) error
}
