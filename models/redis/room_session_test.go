package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColor(t *testing.T) {
	assert.Equal(t, ColorBlack, ColorWhite.Opposite())
	assert.Equal(t, ColorWhite, ColorBlack.Opposite())
	assert.True(t, ColorWhite.Valid())
	assert.True(t, ColorBlack.Valid())
	assert.False(t, Color("green").Valid())
	assert.False(t, Color("").Valid())
}

func TestFindPlayers(t *testing.T) {
	room := RoomSession{
		Players: []SessionPlayer{
			{ID: "p1", Username: "alice"},
			{ID: "p2", Username: "bob"},
		},
	}

	assert.Equal(t, "p2", room.FindPlayerByName("bob").ID)
	assert.Nil(t, room.FindPlayerByName("carol"))
	assert.Equal(t, "alice", room.FindPlayerByID("p1").Username)
	assert.Nil(t, room.FindPlayerByID("p9"))

	// The pointer aliases the slice element so address updates stick.
	room.FindPlayerByName("alice").ConnectionAddress = "sock-9"
	assert.Equal(t, "sock-9", room.Players[0].ConnectionAddress)
}
