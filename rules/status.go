package rules

import "github.com/tilesnake/engine/board"

// State is the lifecycle state of a session.
type State string

const (
	// StateIdle is a session that has not been started yet.
	StateIdle State = "idle"
	// StateRunning is a session that accepts ticks and input.
	StateRunning State = "running"
	// StateEnded represents a game that ended with a collision
	StateEnded State = "ended"
	// StateWon represents a game where the snake filled the whole board
	StateWon State = "won"
)

// Over reports whether the state is terminal for the current round.
func (s State) Over() bool {
	return s == StateEnded || s == StateWon
}

// Status is the display information of a session.
type Status struct {
	GameID    string
	State     State
	Score     int
	BestScore int
	Turn      int
	Length    int
	Cause     Collision
}

// Frame is the observable state of a session after one tick. Frames are
// what gets recorded and replayed.
type Frame struct {
	Turn  int           `json:"turn"`
	Snake []board.Point `json:"snake"`
	Food  *board.Point  `json:"food,omitempty"`
	Score int           `json:"score"`
	State State         `json:"state"`
	Cause Collision     `json:"cause,omitempty"`
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := *f
	c.Snake = append([]board.Point(nil), f.Snake...)
	if f.Food != nil {
		food := *f.Food
		c.Food = &food
	}
	return &c
}
