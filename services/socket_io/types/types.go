package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is a struct that contains the socket.io server and a map of socket connections.
// It is used to handle socket.io connections and implements the
// coordinator's Broadcaster over live sockets.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track connection address (socket id) -> socket
	Connections map[string]*socket.Socket
	mutex       sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		Connections: make(map[string]*socket.Socket),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(address string, client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Connections[address] = client
}

func (s *SocketServer) RemoveConnection(address string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.Connections, address)
}

func (s *SocketServer) GetConnection(address string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	client, exists := s.Connections[address]
	return client, exists
}

// SendTo emits an event to a single connection address.
func (s *SocketServer) SendTo(address, event string, payload interface{}) {
	if client, exists := s.GetConnection(address); exists {
		client.Emit(event, payload)
	}
}

// SendToRoom emits an event to every socket in a room group.
func (s *SocketServer) SendToRoom(room, event string, payload interface{}) {
	s.Sio_server.To(socket.Room(room)).Emit(event, payload)
}

// SendToRoomExcept emits to a room group minus one connection. Every
// socket is implicitly a member of a room named by its own id, so the
// sender can be excluded by id.
func (s *SocketServer) SendToRoomExcept(room, address, event string, payload interface{}) {
	s.Sio_server.To(socket.Room(room)).Except(socket.Room(address)).Emit(event, payload)
}
