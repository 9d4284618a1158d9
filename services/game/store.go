package game

import (
	"context"

	models "Chessio/models/redis"
)

// SessionStore is the persistence surface the coordinator needs. Two
// implementations exist: a Redis-backed one for production and an
// in-memory one for tests and single-node runs without Redis.
//
// Every individual operation must be atomic. AddPlayer in particular
// must evaluate the capacity guard inside the store, so that two racing
// joins for the last seat cannot both succeed.
type SessionStore interface {
	// GetRoom returns the session for the given normalized name, or
	// ErrRoomNotFound.
	GetRoom(ctx context.Context, name string) (*models.RoomSession, error)

	// PutRoom upserts a full session snapshot.
	PutRoom(ctx context.Context, room *models.RoomSession) error

	// DeleteRoom removes a session. Deleting a missing room is not an
	// error.
	DeleteRoom(ctx context.Context, name string) error

	// AddPlayer appends a player if and only if size < capacity,
	// incrementing size. When the appended player fills the second
	// seat, the store records them as the room's opponent. Returns the
	// updated session, ErrRoomNotFound or ErrRoomFull.
	AddPlayer(ctx context.Context, name string, player models.SessionPlayer) (*models.RoomSession, error)

	// UpdateBoard overwrites the board token and turn owner. Returns
	// the updated session or ErrRoomNotFound.
	UpdateBoard(ctx context.Context, name, board string, turn models.Color) (*models.RoomSession, error)

	// RemovePlayer drops the player with the given id, decrementing
	// size. Returns the updated session (possibly with size 0; the
	// caller decides whether to delete the room), ErrRoomNotFound or
	// ErrUserNotFound.
	RemovePlayer(ctx context.Context, name, playerID string) (*models.RoomSession, error)

	// BindConnection records address -> (room, player) so an abrupt
	// disconnect can be resolved to an implicit leave.
	BindConnection(ctx context.Context, address string, binding models.ConnectionBinding) error

	// GetConnectionBinding returns the binding for an address, or
	// (nil, nil) if the address is unknown.
	GetConnectionBinding(ctx context.Context, address string) (*models.ConnectionBinding, error)

	// UnbindConnection removes a binding. Unknown addresses are not an
	// error.
	UnbindConnection(ctx context.Context, address string) error
}
