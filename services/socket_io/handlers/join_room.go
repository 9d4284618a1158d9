package handlers

import (
	"context"
	"log"

	"Chessio/services/game"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Function to handle joining an existing room. A username already
// seated in the room is a reconnection: the seat's connection address
// is refreshed instead of a second seat being created. The coordinator
// notifies the other occupant; the caller gets their own snapshot here.
func HandleJoinRoom(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload := eventPayload(args...)
		userName := stringField(payload, "userName")
		roomName := stringField(payload, "roomName")
		address := string(client.Id())

		log.Printf("[JOIN] HandleJoinRoom - User: %s, Room: %s, Socket ID: %s",
			userName, roomName, address)

		room, player, rejoined, err := coord.JoinRoom(context.Background(), address, userName, roomName)
		if err != nil {
			log.Printf("[JOIN-ERROR] Error joining room %s: %v", roomName, err)
			client.Emit("error", gin.H{"error": errorMessage(err, roomName, userName,
				"An error occurred while joining the room")})
			return
		}

		client.Join(socket.Room(room.Name))
		if rejoined {
			client.Emit("rejoined-room", gin.H{"room": room, "player": player})
			return
		}
		client.Emit("joined-room", gin.H{"room": room, "player": player})
	}
}
