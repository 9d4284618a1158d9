package handlers

import (
	"context"
	"log"

	"Chessio/services/game"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Function to relay an out-of-band game notification. Draw proposals
// go to the room minus the proposer; every other kind reaches the
// whole room. Resignation and game-over also latch the room as over.
func HandleGameAlert(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload := eventPayload(args...)
		roomName := stringField(payload, "roomName")
		title := stringField(payload, "title")
		content := stringField(payload, "content")
		address := string(client.Id())

		log.Printf("[ALERT] HandleGameAlert - Room: %s, Title: %s", roomName, title)

		if err := coord.Alert(context.Background(), address, roomName, title, content); err != nil {
			log.Printf("[ALERT-ERROR] Error relaying alert for room %s: %v", roomName, err)
			client.Emit("error", gin.H{"error": errorMessage(err, roomName, "",
				"An error occurred while sending the alert")})
		}
	}
}
