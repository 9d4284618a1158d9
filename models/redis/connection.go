package redis

// ConnectionBinding maps a live connection address back to the room and
// player it belongs to. Written on every create/join/rejoin, removed on
// leave, consulted when a socket drops without an explicit leave-room.
// Key format: "conn:{address}"
type ConnectionBinding struct {
	RoomName string `json:"room_name"`
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
}
