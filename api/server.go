// Package api serves recorded games over HTTP so they can be watched and
// replayed from another process.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/tilesnake/engine/config"
	"github.com/tilesnake/engine/rules"
	"github.com/tilesnake/engine/store"
)

// PollInterval is how often a socket checks a running game for new frames.
var PollInterval = 50 * time.Millisecond

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server is the read only games API.
type Server struct {
	hs    *http.Server
	store store.Store
}

// GameResponse is returned by GET /games/:id.
type GameResponse struct {
	Game      *store.Game  `json:"game"`
	LastFrame *rules.Frame `json:"last_frame"`
}

// FramesResponse is returned by GET /games/:id/frames.
type FramesResponse struct {
	Count  int            `json:"count"`
	Frames []*rules.Frame `json:"frames"`
}

// New returns a server listening on addr once WaitForExit is called.
func New(addr string, s store.Store) *Server {
	srv := &Server{store: s}

	router := httprouter.New()
	router.GET("/games/:id", srv.getGame)
	router.GET("/games/:id/frames", srv.listFrames)
	router.GET("/socket/:id", srv.socket)

	srv.hs = &http.Server{
		Addr:    addr,
		Handler: cors.Default().Handler(router),
	}
	return srv
}

// WaitForExit serves until the server is shut down.
func (s *Server) WaitForExit() {
	log.Infof("Snake engine api listening on %s", s.hs.Addr)
	err := s.hs.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Errorf("Error while listening: %v", err)
	}
}

// Handler returns the routed handler, for serving from another listener.
func (s *Server) Handler() http.Handler {
	return s.hs.Handler
}

// Shutdown stops the server, waiting for open requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.hs.Shutdown(ctx)
}

func (s *Server) getGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	g, err := s.store.GetGame(r.Context(), id)
	if err != nil {
		writeError(w, id, err)
		return
	}
	frames, err := s.store.ListGameFrames(r.Context(), id, 1, -1)
	if err != nil {
		writeError(w, id, err)
		return
	}

	resp := &GameResponse{Game: g}
	if len(frames) > 0 {
		resp.LastFrame = frames[0]
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listFrames(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		http.Error(w, "invalid offset", http.StatusBadRequest)
		return
	}
	limit, err := queryInt(r, "limit", config.FramePageSize)
	if err != nil || limit < 0 {
		http.Error(w, "invalid limit", http.StatusBadRequest)
		return
	}

	frames, err := s.store.ListGameFrames(r.Context(), id, limit, offset)
	if err != nil {
		writeError(w, id, err)
		return
	}
	if frames == nil {
		frames = []*rules.Frame{}
	}
	writeJSON(w, http.StatusOK, &FramesResponse{Count: len(frames), Frames: frames})
}

// socket streams every frame of a game, then closes normally once the game is
// over and no frames are left.
func (s *Server) socket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if _, err := s.store.GetGame(r.Context(), id); err != nil {
		writeError(w, id, err)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).WithField("game", id).Error("Unable to upgrade connection")
		return
	}
	defer func() {
		if err := ws.Close(); err != nil {
			log.WithError(err).WithField("game", id).Error("Unable to close websocket stream")
		}
	}()

	ctx := r.Context()
	offset := 0
	for {
		// Read the status before the frames so no frame recorded before
		// the game ended is missed.
		g, err := s.store.GetGame(ctx, id)
		if err != nil {
			log.WithError(err).WithField("game", id).Error("Unable to load game")
			return
		}
		frames, err := s.store.ListGameFrames(ctx, id, config.FramePageSize, offset)
		if err != nil {
			log.WithError(err).WithField("game", id).Error("Unable to list frames")
			return
		}

		for _, f := range frames {
			data, err := json.Marshal(f)
			if err != nil {
				log.WithError(err).WithField("game", id).Error("Unable to encode frame")
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
				log.WithError(err).WithField("game", id).Debug("Unable to write to websocket")
				return
			}
		}
		offset += len(frames)

		if len(frames) > 0 {
			continue
		}
		if g.Status.Over() {
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			if err := ws.WriteMessage(websocket.CloseMessage, msg); err != nil {
				log.WithError(err).WithField("game", id).Debug("Unable to close websocket")
			}
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(PollInterval):
		}
	}
}

func queryInt(r *http.Request, name string, defaults int) (int, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaults, nil
	}
	return strconv.Atoi(val)
}

func writeError(w http.ResponseWriter, id string, err error) {
	if err == store.ErrNotFound {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	log.WithError(err).WithField("game", id).Error("Store request failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Unable to write response")
	}
}
