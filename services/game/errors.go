package game

import "errors"

// Sentinel errors for every way a lifecycle or relay operation can be
// refused. Handlers match on these with errors.Is and turn them into a
// single "error" event sent to the originating socket only.
var (
	ErrInvalidInput = errors.New("missing or empty required field")
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomExists   = errors.New("room already exists")
	ErrRoomFull     = errors.New("room has no space")
	ErrUserNotFound = errors.New("user not found in room")
	ErrTurnConflict = errors.New("not your turn")
)
