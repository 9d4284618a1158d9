package handlers

import (
	"context"
	"log"

	"Chessio/services/game"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Function to handle the creation of a new room. The caller is seated
// as white, subscribed to the room group and answered with the fresh
// snapshot; nothing is broadcast, there is nobody else to tell yet.
func HandleCreateRoom(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload := eventPayload(args...)
		userName := stringField(payload, "userName")
		roomName := stringField(payload, "roomName")
		address := string(client.Id())

		log.Printf("[CREATE] HandleCreateRoom - User: %s, Room: %s, Socket ID: %s",
			userName, roomName, address)

		room, player, err := coord.CreateRoom(context.Background(), address, userName, roomName)
		if err != nil {
			log.Printf("[CREATE-ERROR] Error creating room %s: %v", roomName, err)
			client.Emit("error", gin.H{"error": errorMessage(err, roomName, userName,
				"An error occurred while creating the room")})
			return
		}

		client.Join(socket.Room(room.Name))
		client.Emit("room-created", gin.H{"room": room, "player": player})
	}
}
