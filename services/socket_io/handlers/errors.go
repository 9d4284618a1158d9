package handlers

import (
	"errors"
	"fmt"

	"Chessio/services/game"
)

// errorMessage turns a coordinator error into the human-readable
// string carried by the "error" event. fallback covers store and other
// unexpected failures so internals never leak to the client.
func errorMessage(err error, roomName, username, fallback string) string {
	switch {
	case errors.Is(err, game.ErrRoomExists):
		return "Room already exists"
	case errors.Is(err, game.ErrRoomFull):
		return "Room has no space"
	case errors.Is(err, game.ErrRoomNotFound):
		return fmt.Sprintf("No room exists with the name: %s", roomName)
	case errors.Is(err, game.ErrUserNotFound):
		return fmt.Sprintf("User %s not found in room %s", username, roomName)
	case errors.Is(err, game.ErrTurnConflict):
		return "It is not your turn"
	case errors.Is(err, game.ErrInvalidInput):
		return "Missing required fields"
	default:
		return fallback
	}
}
