package handlers

import (
	"context"
	"log"

	"Chessio/services/game"

	"github.com/zishang520/socket.io/v2/socket"
)

// Function to handle a voluntary exit. Failures are logged, not
// reported back: the leaving side has nothing useful to do with them,
// and the remaining peer learns of the departure through the
// disconnect hook or a failed turn update.
func HandleLeaveRoom(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload := eventPayload(args...)
		roomName := stringField(payload, "roomName")
		playerID := stringField(payload, "playerId")

		log.Printf("[LEAVE] HandleLeaveRoom - Room: %s, Player: %s, Socket ID: %s",
			roomName, playerID, client.Id())

		if err := coord.LeaveRoom(context.Background(), roomName, playerID); err != nil {
			log.Printf("[LEAVE-ERROR] Error leaving room %s: %v", roomName, err)
			return
		}
		client.Leave(socket.Room(game.NormalizeName(roomName)))
	}
}
