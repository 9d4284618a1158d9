package socket_io

import (
	"log"
	"time"

	"Chessio/services/game"
	"Chessio/services/socket_io/handlers"
	socketio_types "Chessio/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

// Start mounts the socket.io endpoint on the gin router and wires one
// handler per inbound event. Every event from a connection is
// dispatched to exactly one handler; handlers validate, mutate the
// store through the coordinator and emit their outbound messages.
func (sio *MySocketServer) Start(router *gin.Engine, coord *game.Coordinator) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	// KEY: initialize the map, otherwise it panics
	sio.Connections = make(map[string]*socket.Socket)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		address := string(client.Id())

		// Add connection to map
		(*socketio_types.SocketServer)(sio).AddConnection(address, client)
		log.Printf("[CONNECT] New connection to server: %s", address)

		// Room lifecycle
		client.On("create-room", handlers.HandleCreateRoom(coord, client))
		client.On("join-room", handlers.HandleJoinRoom(coord, client))
		client.On("rejoin-room", handlers.HandleRejoinRoom(coord, client))
		client.On("leave-room", handlers.HandleLeaveRoom(coord, client))

		// Turn & board synchronization
		client.On("send-updated-board", handlers.HandleSendUpdatedBoard(coord, client))

		// Out-of-band notifications (draw proposal, resignation, game over)
		client.On("game-alert", handlers.HandleGameAlert(coord, client))

		// Peer connection signaling relay
		client.On("ask-to-join", handlers.HandleAskToJoin(coord, client))
		client.On("send-answer", handlers.HandleSendAnswer(coord, client))
		client.On("send-offer", handlers.HandleSendOffer(coord, client))
		client.On("send-ice-update", handlers.HandleSendICEUpdate(coord, client))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(coord, (*socketio_types.SocketServer)(sio), address))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	log.Println("Socket server started")
}

// Close shuts the socket.io server down, dropping every connection.
func (sio *MySocketServer) Close() {
	if sio.Sio_server != nil {
		sio.Sio_server.Close(nil)
	}
}
