package redis

import "time"

// Color is the turn token: the side allowed to submit the next board.
type Color string

const (
	ColorWhite Color = "white"
	ColorBlack Color = "black"
)

// Opposite returns the other side.
func (c Color) Opposite() Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

// Valid reports whether c is one of the two playable colors.
func (c Color) Valid() bool {
	return c == ColorWhite || c == ColorBlack
}

// SessionPlayer is a player's live state inside a room session.
// ConnectionAddress is the socket id of their current connection and is
// overwritten on every join/rejoin; everything else is immutable after
// creation.
type SessionPlayer struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	ConnectionAddress string    `json:"connection_address"`
	RoomName          string    `json:"room_name"`
	AssignedColor     Color     `json:"assigned_color"`
	JoinedAt          time.Time `json:"joined_at"`
}

// RoomSession is the hot state of a two-player room.
// Key format: "room:{name}"
type RoomSession struct {
	Name          string          `json:"name"`
	CreatorName   string          `json:"creator_name"`
	OpponentName  string          `json:"opponent_name"`
	Capacity      int             `json:"capacity"`
	Size          int             `json:"size"`
	BoardState    string          `json:"board_state"`
	Turn          Color           `json:"turn"`
	IsOver        bool            `json:"is_over"`
	Players       []SessionPlayer `json:"players"`
	LastOffer     string          `json:"last_offer,omitempty"`
	LastCandidate string          `json:"last_candidate,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// FindPlayerByName returns the player with the given (already
// normalized) username, or nil.
func (r *RoomSession) FindPlayerByName(username string) *SessionPlayer {
	for i := range r.Players {
		if r.Players[i].Username == username {
			return &r.Players[i]
		}
	}
	return nil
}

// FindPlayerByID returns the player with the given id, or nil.
func (r *RoomSession) FindPlayerByID(playerID string) *SessionPlayer {
	for i := range r.Players {
		if r.Players[i].ID == playerID {
			return &r.Players[i]
		}
	}
	return nil
}
