package rules

import (
	"sync"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tilesnake/engine/board"
)

// Session is a single snake game. Start and Tick are serialized by the
// session lock so Snapshot, Status and Frame never observe a half applied
// tick. HandleDirectionInput may be called from any goroutine.
type Session struct {
	mu      sync.RWMutex
	best    *BestScore
	spawner Spawner
	gate    *DirectionGate

	id    string
	cfg   Config
	grid  *board.Grid
	snake *board.Snake
	food  *board.Point
	state State
	score int
	turn  int
	cause Collision
}

// Option configures a Session.
type Option func(*Session)

// WithFoodSpawner replaces the default time seeded food spawner.
func WithFoodSpawner(f Spawner) Option {
	return func(s *Session) { s.spawner = f }
}

// NewSession creates an idle session. best is shared by every session of the
// embedding program; a nil best gives the session its own.
func NewSession(best *BestScore, opts ...Option) *Session {
	if best == nil {
		best = &BestScore{}
	}
	s := &Session{
		best:    best,
		spawner: NewFoodSpawner(nil),
		gate:    NewDirectionGate(board.Right),
		grid:    board.NewGrid(0, 0),
		snake:   board.NewSnake(),
		state:   StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start resets the board and begins a new round. An invalid config is
// rejected before anything is modified.
func (s *Session) Start(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	grid := board.NewGrid(cfg.Rows, cfg.Columns)
	for _, w := range cfg.Walls {
		if err := grid.Set(w, board.Wall); err != nil {
			return errors.Wrapf(err, "placing wall %v", w)
		}
	}
	for _, p := range cfg.Snake {
		if err := grid.Set(p, board.SnakeBody); err != nil {
			return errors.Wrapf(err, "placing snake %v", p)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The first food goes on the new grid before the round is committed.
	food, err := s.spawner.Spawn(grid)
	full := err == ErrBoardFull
	if err != nil && !full {
		return errors.Wrap(err, "rules: placing first food")
	}
	if !full {
		if err := grid.Set(food, board.Food); err != nil {
			return errors.Wrapf(err, "rules: placing food at %v", food)
		}
	}

	s.id = uuid.NewV4().String()
	s.cfg = cfg
	s.grid = grid
	s.snake = board.NewSnake(cfg.Snake...)
	s.food = nil
	s.score = 0
	s.turn = 0
	s.cause = CollisionClear
	s.gate.Reset(cfg.Direction)
	s.state = StateRunning

	log.WithFields(log.Fields{
		"GameID":  s.id,
		"Rows":    cfg.Rows,
		"Columns": cfg.Columns,
		"Walls":   len(cfg.Walls),
		"Length":  len(cfg.Snake),
	}).Info("starting game")

	if full {
		s.finish(StateWon, CollisionClear)
		return nil
	}
	s.food = &food
	return nil
}

// HandleDirectionInput forwards a direction change to the gate. It is a no-op
// unless the session is running.
func (s *Session) HandleDirectionInput(dir board.Direction) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateRunning {
		return
	}
	s.gate.Request(dir, s.snake.Len())
}

// Tick advances the snake one cell. It is a no-op unless the session is
// running. An error means the board invariants were broken and the round
// can not continue.
func (s *Session) Tick() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return nil
	}

	dir := s.gate.Consume()
	candidate := s.snake.Head().Add(dir)
	s.turn++

	if result := Classify(s.grid, candidate, s.snake); result != CollisionClear {
		s.finish(StateEnded, result)
		return nil
	}

	ateFood := s.food != nil && *s.food == candidate
	tail := s.snake.Tail()

	// When growing the old tail stays, so its cell remains SnakeBody.
	if !ateFood {
		if err := s.grid.Set(tail, board.Empty); err != nil {
			return errors.Wrapf(err, "rules: clearing tail %v", tail)
		}
	}
	if err := s.grid.Set(candidate, board.SnakeBody); err != nil {
		return errors.Wrapf(err, "rules: moving head to %v", candidate)
	}
	s.snake.Advance(candidate, ateFood)

	log.WithFields(log.Fields{
		"GameID":    s.id,
		"Turn":      s.turn,
		"Direction": dir,
		"Head":      candidate,
	}).Debug("snake moved")

	if ateFood {
		s.score++
		s.food = nil
		log.WithFields(log.Fields{
			"GameID": s.id,
			"Turn":   s.turn,
			"Score":  s.score,
		}).Debug("snake ate")
		return s.spawnFood()
	}
	return nil
}

// spawnFood places the next food. A full board wins the game. The caller must
// hold the write lock.
func (s *Session) spawnFood() error {
	p, err := s.spawner.Spawn(s.grid)
	if err == ErrBoardFull {
		s.finish(StateWon, CollisionClear)
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.grid.Set(p, board.Food); err != nil {
		return errors.Wrapf(err, "rules: placing food at %v", p)
	}
	s.food = &p
	return nil
}

// Stop ends a running round without a collision, for when the host stops
// scheduling ticks. The score counts towards the best score.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return
	}
	s.finish(StateEnded, CollisionClear)
}

func (s *Session) finish(state State, cause Collision) {
	s.state = state
	s.cause = cause
	best := s.best.Update(s.score)

	log.WithFields(log.Fields{
		"GameID":    s.id,
		"Turn":      s.turn,
		"State":     state,
		"Cause":     cause,
		"Score":     s.score,
		"BestScore": best,
	}).Info("game over")
}

// Snapshot returns a copy of the board for rendering.
func (s *Session) Snapshot() *board.Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.grid.Clone()
}

// Status returns the current state and scores.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		GameID:    s.id,
		State:     s.state,
		Score:     s.score,
		BestScore: s.best.Get(),
		Turn:      s.turn,
		Length:    s.snake.Len(),
		Cause:     s.cause,
	}
}

// Frame returns the recordable state of the session.
func (s *Session) Frame() *Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f := &Frame{
		Turn:  s.turn,
		Snake: s.snake.Body(),
		Score: s.score,
		State: s.state,
		Cause: s.cause,
	}
	if s.food != nil {
		food := *s.food
		f.Food = &food
	}
	return f
}

// Config returns the configuration of the current round.
func (s *Session) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cfg
}

// Direction returns the direction the snake will take on the next tick.
func (s *Session) Direction() board.Direction {
	return s.gate.Direction()
}
