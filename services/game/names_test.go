package game_test

import (
	"testing"

	"Chessio/services/game"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice", "alice"},
		{"  alice  ", "alice"},
		{"ROOM-1", "room-1"},
		{"\tBoB\n", "bob"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, game.NormalizeName(tt.in))
	}
}
