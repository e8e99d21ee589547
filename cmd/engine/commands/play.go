package commands

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"

	termbox "github.com/nsf/termbox-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tilesnake/engine/board"
	"github.com/tilesnake/engine/cmd/engine/commands/server"
	"github.com/tilesnake/engine/config"
	"github.com/tilesnake/engine/rules"
	"github.com/tilesnake/engine/store"
	"github.com/tilesnake/engine/worker"
)

var (
	boardFile       string
	playBackend     = "none"
	playBackendArgs = ""
	logFile         string
	playPromEnable  = false
	playPromListen  = ":9000"
)

func init() {
	playCmd.Flags().StringVarP(&boardFile, "config", "c", "", "board configuration file, the default board is used when empty")
	playCmd.Flags().StringVarP(&playBackend, "backend", "b", playBackend, "record games to a backend, as one of: [none, inmem, file, redis, sql]")
	playCmd.Flags().StringVarP(&playBackendArgs, "backend-args", "a", playBackendArgs, "options to pass to the backend being used")
	playCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file, logs are discarded when empty")
	playCmd.Flags().BoolVar(&playPromEnable, "prometheus", playPromEnable, "enable prometheus metrics")
	playCmd.Flags().StringVar(&playPromListen, "prometheus-listen", playPromListen, "prometheus http endpoint")
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "plays a game in the terminal",
	PreRun: func(c *cobra.Command, args []string) {
		setupLogging()
		server.Prometheus(playPromEnable, playPromListen)
	},
	Run: func(*cobra.Command, []string) {
		b, err := loadBoard()
		if err != nil {
			fmt.Println("unable to load board:", err)
			os.Exit(1)
		}

		s, err := openRecorder()
		if err != nil {
			fmt.Println("unable to open backend:", err)
			os.Exit(1)
		}
		if s != nil {
			defer server.CloseStore(s)
		}

		if err := playGame(b, s); err != nil {
			log.WithError(err).Error("terminal failure")
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

// The terminal belongs to termbox while playing.
func setupLogging() {
	if logFile == "" {
		log.SetOutput(ioutil.Discard)
		return
	}
	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		fmt.Println("unable to open log file:", err)
		os.Exit(1)
	}
	log.SetOutput(f)
	log.SetLevel(log.DebugLevel)
}

func loadBoard() (config.Board, error) {
	if boardFile == "" {
		return config.DefaultBoard(), nil
	}
	return config.LoadBoard(boardFile)
}

func openRecorder() (store.Store, error) {
	if playBackend == "none" {
		return nil, nil
	}
	s, err := server.OpenStore(playBackend, playBackendArgs)
	if err != nil {
		return nil, err
	}
	return store.InstrumentStore(s), nil
}

var keyDirections = map[termbox.Key]board.Direction{
	termbox.KeyArrowUp:    board.Up,
	termbox.KeyArrowDown:  board.Down,
	termbox.KeyArrowLeft:  board.Left,
	termbox.KeyArrowRight: board.Right,
}

type inputAction int

const (
	actionNone inputAction = iota
	actionStart
	actionSteer
	actionExit
)

// keyAction maps a key press to what the host does with it.
func keyAction(ev termbox.Event) (inputAction, board.Direction) {
	if ev.Type != termbox.EventKey {
		return actionNone, ""
	}
	if dir, ok := keyDirections[ev.Key]; ok {
		return actionSteer, dir
	}
	switch {
	case ev.Key == termbox.KeyEnter:
		return actionStart, ""
	case ev.Key == termbox.KeyEsc, ev.Key == termbox.KeyCtrlC, ev.Ch == 'q':
		return actionExit, ""
	}
	return actionNone, ""
}

func playGame(b config.Board, s store.Store) error {
	if err := termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()

	session := rules.NewSession(&rules.BestScore{})
	redraw := make(chan struct{}, 1)
	w := &worker.Worker{
		Session: session,
		Store:   s,
		Render: func() {
			select {
			case redraw <- struct{}{}:
			default:
			}
		},
	}
	defer w.Stop()

	draw := func() error {
		st := session.Status()
		return renderGame(playGrid(session, b.Config), b.ShowGrid, "Snake!", statusLines(st))
	}
	if err := draw(); err != nil {
		return err
	}

	ctx := context.Background()
	eventQueue := setupEventQueue()
	for {
		select {
		case ev := <-eventQueue:
			action, dir := keyAction(ev)
			switch action {
			case actionSteer:
				session.HandleDirectionInput(dir)
			case actionStart:
				// Start only when no round is being played.
				if session.Status().State == rules.StateRunning {
					continue
				}
				if err := w.Start(ctx, b.Config); err != nil {
					log.WithError(err).Error("unable to start game")
				}
			case actionExit:
				w.Stop()
				return showExit(session.Status(), eventQueue)
			}
			if ev.Type == termbox.EventResize || action == actionStart {
				if err := draw(); err != nil {
					return err
				}
			}
		case <-redraw:
			if err := draw(); err != nil {
				return err
			}
		}
	}
}

// playGrid is the session board, or the starting position before the first
// round.
func playGrid(session *rules.Session, cfg rules.Config) *board.Grid {
	if session.Status().State == rules.StateIdle {
		return store.NewGame("", cfg).Grid(&rules.Frame{Snake: cfg.Snake})
	}
	return session.Snapshot()
}

func showExit(st rules.Status, eventQueue <-chan termbox.Event) error {
	if err := termbox.Clear(defaultColor, defaultColor); err != nil {
		return err
	}
	tbprint(left, top, defaultColor, defaultColor, fmt.Sprintf("Best Score: %d", st.BestScore))
	tbprint(left, top+2, defaultColor, defaultColor, "Press any key to exit...")
	if err := termbox.Flush(); err != nil {
		return err
	}
	for ev := range eventQueue {
		if ev.Type == termbox.EventKey {
			return nil
		}
	}
	return nil
}
