package handlers

import (
	"context"
	"log"

	"Chessio/services/game"
	socketio_types "Chessio/services/socket_io/types"
)

// Function to handle socket.io client disconnections. A closure event
// carries only the connection address, so the coordinator resolves it
// through the connection index and performs an implicit leave. This
// keeps orphaned seats from piling up in rooms whose occupant vanished
// without a leave-room message.
func HandleDisconnecting(coord *game.Coordinator, sio *socketio_types.SocketServer, address string) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] HandleDisconnecting - Socket ID: %s", address)

		if err := coord.HandleDisconnect(context.Background(), address); err != nil {
			log.Printf("[DISCONNECT-ERROR] Error cleaning up connection %s: %v", address, err)
		}

		// Finally remove connection from map
		sio.RemoveConnection(address)
		log.Printf("[DISCONNECT-DONE] Socket disconnected: %s", address)
	}
}
