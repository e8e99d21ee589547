package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	termbox "github.com/nsf/termbox-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tilesnake/engine/rules"
	"github.com/tilesnake/engine/store"
)

var replayDelay = 100 * time.Millisecond

func init() {
	replayCmd.Flags().StringVarP(&gameID, "game-id", "g", "", "the game id of the game to replay")
	replayCmd.Flags().DurationVarP(&replayDelay, "delay", "d", replayDelay, "delay between frames")
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "replays a recorded game from the engine api",
	Args: func(c *cobra.Command, args []string) error {
		if len(gameID) == 0 {
			return errors.New("game id is required")
		}
		return nil
	},
	PreRun: func(*cobra.Command, []string) { setupLogging() },
	Run: func(*cobra.Command, []string) {
		if err := replayGame(); err != nil {
			fmt.Println("replay failed:", err)
		}
	},
}

func moveFrameForwards(frameIndex int, frames *frameHolder) (int, *rules.Frame, bool) {
	frameIndex++
	if frameIndex >= frames.count() {
		return frames.count() - 1, frames.get(frames.count() - 1), true
	}
	return frameIndex, frames.get(frameIndex), false
}

func moveFrameBackwards(frameIndex int, frames *frameHolder) (int, *rules.Frame) {
	frameIndex--
	if frameIndex <= 0 {
		frameIndex = 0
	}
	return frameIndex, frames.get(frameIndex)
}

func socketURL(addr, id string) string {
	scheme := "ws"
	if strings.HasPrefix(addr, "https://") {
		scheme = "wss"
	}
	host := strings.TrimPrefix(strings.TrimPrefix(addr, "http://"), "https://")
	u := url.URL{Scheme: scheme, Host: host, Path: fmt.Sprintf("/socket/%s", id)}
	return u.String()
}

// streamFrames reads frames from the socket into frames until the stream
// closes.
func streamFrames(c *websocket.Conn, frames *frameHolder) {
	defer func() {
		if err := c.Close(); err != nil {
			log.WithError(err).Warn("failure to close websocket connection")
		}
	}()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("read")
			}
			return
		}

		switch mt {
		case websocket.TextMessage:
			frame := &rules.Frame{}
			if err := json.Unmarshal(message, frame); err != nil {
				log.WithError(err).Warn("unmarshal frame")
				return
			}
			frames.append(frame)
		default:
			log.WithField("type", mt).Warn("unhandled message type")
		}
	}
}

func loadGame() (*store.Game, *frameHolder, error) {
	s, err := getStatus(apiAddr, gameID)
	if err != nil {
		return nil, nil, err
	}

	u := socketURL(apiAddr, gameID)
	log.WithField("url", u).Info("connecting")
	c, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		return nil, nil, err
	}

	frames := &frameHolder{}
	go streamFrames(c, frames)
	return s.Game, frames, nil
}

func replayLines(frame *rules.Frame, paused bool) []string {
	lines := []string{fmt.Sprintf("Score: %d", frame.Score)}
	switch frame.State {
	case rules.StateEnded:
		lines = append(lines, fmt.Sprintf("Your Score: %d", frame.Score))
		if frame.Cause != rules.CollisionClear {
			lines = append(lines, fmt.Sprintf("Crashed into %s", causeText(frame.Cause)))
		}
	case rules.StateWon:
		lines = append(lines, fmt.Sprintf("You won! Score: %d", frame.Score))
	}
	if paused {
		lines = append(lines, "Paused")
	}
	return append(lines, "Space pause, arrows step, Esc quit")
}

func renderReplay(game *store.Game, frame *rules.Frame, paused bool) error {
	if frame == nil {
		return errors.New("received nil frame")
	}
	title := fmt.Sprintf("Snake! - Turn %d", frame.Turn)
	return renderGame(game.Grid(frame), false, title, replayLines(frame, paused))
}

func replayGame() error {
	game, frames, err := loadGame()
	if err != nil {
		return err
	}

	var currentFrame *rules.Frame
	select {
	case currentFrame = <-frames.initialFrame():
	case <-time.After(2 * time.Second):
		return errors.New("unable to find initial frame for game")
	}

	if err = termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()

	eventQueue := setupEventQueue()
	cycle := time.NewTicker(replayDelay)
	defer cycle.Stop()

	frameIndex := 0
	paused := false
	if err := renderReplay(game, currentFrame, paused); err != nil {
		return err
	}

	for {
		select {
		case ev := <-eventQueue:
			if ev.Type != termbox.EventKey {
				continue
			}
			switch ev.Key {
			case termbox.KeyEsc:
				return nil
			case termbox.KeySpace:
				paused = !paused
			case termbox.KeyArrowLeft:
				paused = true
				frameIndex, currentFrame = moveFrameBackwards(frameIndex, frames)
			case termbox.KeyArrowRight:
				paused = true
				frameIndex, currentFrame, _ = moveFrameForwards(frameIndex, frames)
			}
			if err := renderReplay(game, currentFrame, paused); err != nil {
				return err
			}
		case <-cycle.C:
			if paused {
				continue
			}
			frameIndex, currentFrame, _ = moveFrameForwards(frameIndex, frames)
			if err := renderReplay(game, currentFrame, paused); err != nil {
				return err
			}
		}
	}
}
