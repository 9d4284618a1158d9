package handlers

import (
	"fmt"
	"testing"

	"Chessio/services/game"

	"github.com/stretchr/testify/assert"
)

func TestEventPayload(t *testing.T) {
	assert.Nil(t, eventPayload())
	assert.Nil(t, eventPayload("not an object"))

	payload := eventPayload(map[string]interface{}{"userName": "alice", "count": 3.0})
	assert.Equal(t, "alice", stringField(payload, "userName"))
	assert.Equal(t, "", stringField(payload, "missing"))
	assert.Equal(t, "", stringField(payload, "count")) // non-string reads as empty
	assert.Equal(t, "", stringField(nil, "anything"))
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{game.ErrRoomExists, "Room already exists"},
		{game.ErrRoomFull, "Room has no space"},
		{game.ErrRoomNotFound, "No room exists with the name: r1"},
		{game.ErrUserNotFound, "User bob not found in room r1"},
		{game.ErrTurnConflict, "It is not your turn"},
		{game.ErrInvalidInput, "Missing required fields"},
		{assert.AnError, "generic fallback"},
		// Wrapped sentinels must still map to their message.
		{fmt.Errorf("%w: r1", game.ErrRoomFull), "Room has no space"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorMessage(tt.err, "r1", "bob", "generic fallback"))
	}
}
