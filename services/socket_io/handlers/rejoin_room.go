package handlers

import (
	"context"
	"log"

	"Chessio/services/game"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Function to handle an explicit rejoin after a dropped connection.
// Board and turn state are untouched; only the seat's connection
// address moves to the new socket.
func HandleRejoinRoom(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload := eventPayload(args...)
		userName := stringField(payload, "userName")
		roomName := stringField(payload, "roomName")
		address := string(client.Id())

		log.Printf("[REJOIN] HandleRejoinRoom - User: %s, Room: %s, Socket ID: %s",
			userName, roomName, address)

		room, player, err := coord.RejoinRoom(context.Background(), address, userName, roomName)
		if err != nil {
			log.Printf("[REJOIN-ERROR] Error rejoining room %s: %v", roomName, err)
			client.Emit("error", gin.H{"error": errorMessage(err, roomName, userName,
				"An error occurred during rejoin")})
			return
		}

		client.Join(socket.Room(room.Name))
		client.Emit("rejoined-room", gin.H{"room": room, "player": player})
	}
}
