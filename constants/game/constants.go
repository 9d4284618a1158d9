package game_constants

// A room always seats exactly two players: the creator plays white and
// the joiner plays black.
const RoomCapacity = 2

// StartingBoard is the serialized starting position handed to every new
// room. The coordinator never parses it; board tokens are opaque.
const StartingBoard = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Alert titles with special dispatch or state effects.
const (
	AlertDrawProposal = "draw-proposal"
	AlertResignation  = "resignation"
	AlertGameOver     = "game-over"
)
