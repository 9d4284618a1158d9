package handlers

import (
	"context"
	"log"

	redis_models "Chessio/models/redis"
	"Chessio/services/game"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Function to handle a board update from the side whose turn it is.
// The board token is opaque and stored verbatim; the coordinator flips
// the turn and broadcasts the new snapshot to the whole room, sender
// included, so both peers converge on the server-held state.
func HandleSendUpdatedBoard(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload := eventPayload(args...)
		roomName := stringField(payload, "roomName")
		boardToken := stringField(payload, "boardToken")
		senderColor := redis_models.Color(stringField(payload, "senderColor"))

		room, err := coord.UpdateBoard(context.Background(), roomName, boardToken, senderColor)
		if err != nil {
			log.Printf("[BOARD-ERROR] Error updating board for room %s: %v", roomName, err)
			client.Emit("error", gin.H{"error": errorMessage(err, roomName, "",
				"An error occurred while updating the board")})
			return
		}

		log.Printf("[BOARD] Room %s board updated, turn is now %s", room.Name, room.Turn)
	}
}
