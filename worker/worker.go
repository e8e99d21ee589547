// Package worker provides the actual running of games. It ticks a session at
// its refresh rate, records every frame and tells the host when to redraw.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/tilesnake/engine/config"
	"github.com/tilesnake/engine/rules"
	"github.com/tilesnake/engine/store"
	"golang.org/x/time/rate"
)

// Worker is the external scheduler of a session. Only the worker calls
// Session.Tick, so ticks never overlap.
type Worker struct {
	Session *rules.Session
	// Store is optional; every round is recorded into it when set.
	Store store.Store
	// Render is called after a round starts and after every tick. It runs on
	// the worker goroutine and must not block.
	Render func()

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Start stops the running round, if any, and starts a new one with cfg. An
// invalid cfg is returned as an error and leaves the running round untouched.
func (w *Worker) Start(ctx context.Context, cfg rules.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopLocked()

	if err := w.Session.Start(cfg); err != nil {
		return err
	}
	st := w.Session.Status()
	w.createGame(ctx, st.GameID, cfg)
	w.render()

	if st.State.Over() {
		// The board was full before the first move.
		w.finish(ctx, st)
		return nil
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	w.cancel = cancel
	w.done = done

	go func() {
		defer close(done)
		w.run(loopCtx, ctx, st.GameID, cfg.RefreshRate)
	}()
	return nil
}

// Stop ends the running round without waiting for it to finish on its own.
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopLocked()
}

// Wait blocks until the running round is over or stopped.
func (w *Worker) Wait() {
	w.mu.Lock()
	done := w.done
	w.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (w *Worker) stopLocked() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
	w.cancel = nil
}

// run ticks until the round is over. loopCtx stops the loop, storeCtx is used
// for recording so the last status is written after a stop.
func (w *Worker) run(loopCtx, storeCtx context.Context, id string, refreshRate int) {
	limiter := rate.NewLimiter(config.TickLimit(refreshRate), config.TickBurst)
	// Drain the initial burst so the first move waits a full period.
	limiter.AllowN(time.Now(), config.TickBurst)

	for {
		if err := limiter.Wait(loopCtx); err != nil {
			w.Session.Stop()
			st := w.Session.Status()
			log.WithField("game", id).
				WithField("turn", st.Turn).
				Info("round stopped")
			w.finish(storeCtx, st)
			return
		}

		timer := prometheus.NewTimer(tickDuration)
		err := w.Session.Tick()
		timer.ObserveDuration()
		ticksTotal.Inc()

		if err != nil {
			// The board is inconsistent, no more ticks can take place.
			w.Session.Stop()
			st := w.Session.Status()
			log.WithError(err).
				WithField("game", id).
				WithField("turn", st.Turn).
				Error("ending game due to fatal error")
			w.finish(storeCtx, st)
			return
		}

		frame := w.Session.Frame()
		w.pushFrame(storeCtx, id, frame)
		w.render()

		if frame.State.Over() {
			w.finish(storeCtx, w.Session.Status())
			return
		}
	}
}

func (w *Worker) render() {
	if w.Render != nil {
		w.Render()
	}
}

func (w *Worker) finish(ctx context.Context, st rules.Status) {
	gamesTotal.WithLabelValues(string(st.State)).Inc()
	log.WithField("game", st.GameID).
		WithField("turn", st.Turn).
		WithField("state", st.State).
		WithField("score", st.Score).
		Info("ending game")

	if w.Store == nil {
		return
	}
	if err := w.Store.SetGameStatus(ctx, st.GameID, st.State, st.Score); err != nil {
		log.WithError(err).WithField("game", st.GameID).Error("unable to record game status")
	}
}

// Recording failures are logged; the round keeps running.
func (w *Worker) createGame(ctx context.Context, id string, cfg rules.Config) {
	if w.Store == nil {
		return
	}
	frames := []*rules.Frame{w.Session.Frame()}
	if err := w.Store.CreateGame(ctx, store.NewGame(id, cfg), frames); err != nil {
		log.WithError(err).WithField("game", id).Error("unable to record game")
	}
}

func (w *Worker) pushFrame(ctx context.Context, id string, f *rules.Frame) {
	if w.Store == nil {
		return
	}
	if err := w.Store.PushGameFrame(ctx, id, f); err != nil {
		log.WithError(err).
			WithField("game", id).
			WithField("turn", f.Turn).
			Error("unable to record frame")
	}
}
