package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"github.com/tilesnake/engine/board"
	"github.com/tilesnake/engine/rules"
	"github.com/tilesnake/engine/store"
)

func testFrame(turn int) *rules.Frame {
	return &rules.Frame{
		Turn:  turn,
		Snake: []board.Point{{Row: 0, Col: turn}},
		State: rules.StateRunning,
	}
}

func createAPIServer(t *testing.T, status rules.State, frames int) (*Server, store.Store) {
	s := store.InMemStore()
	ctx := context.Background()
	var fs []*rules.Frame
	for i := 0; i < frames; i++ {
		fs = append(fs, testFrame(i))
	}
	require.NoError(t, s.CreateGame(ctx, &store.Game{ID: "abc_123", Rows: 1, Columns: 10, Status: rules.StateRunning}, fs))
	if status != rules.StateRunning {
		require.NoError(t, s.SetGameStatus(ctx, "abc_123", status, 4))
	}
	return New(":1234", s), s
}

func serve(s *Server, method, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	s.hs.Handler.ServeHTTP(rr, req)
	return rr
}

func TestGetGame(t *testing.T) {
	s, _ := createAPIServer(t, rules.StateEnded, 3)

	rr := serve(s, "GET", "/games/abc_123")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := &GameResponse{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(resp))
	require.Equal(t, "abc_123", resp.Game.ID)
	require.Equal(t, rules.StateEnded, resp.Game.Status)
	require.Equal(t, 4, resp.Game.Score)
	require.Equal(t, 2, resp.LastFrame.Turn)
}

func TestGetGameNotFound(t *testing.T) {
	s, _ := createAPIServer(t, rules.StateEnded, 0)

	rr := serve(s, "GET", "/games/missing")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListFrames(t *testing.T) {
	s, _ := createAPIServer(t, rules.StateEnded, 5)

	tests := []struct {
		query string
		turns []int
	}{
		{"", []int{0, 1, 2, 3, 4}},
		{"?limit=2", []int{0, 1}},
		{"?offset=3", []int{3, 4}},
		{"?offset=-2&limit=1", []int{3}},
		{"?offset=10", []int{}},
	}
	for _, tc := range tests {
		rr := serve(s, "GET", "/games/abc_123/frames"+tc.query)
		require.Equal(t, http.StatusOK, rr.Code, tc.query)

		resp := &FramesResponse{}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(resp))
		require.Equal(t, len(tc.turns), resp.Count, tc.query)
		turns := []int{}
		for _, f := range resp.Frames {
			turns = append(turns, f.Turn)
		}
		require.Equal(t, tc.turns, turns, tc.query)
	}
}

func TestListFramesBadQuery(t *testing.T) {
	s, _ := createAPIServer(t, rules.StateEnded, 1)

	require.Equal(t, http.StatusBadRequest, serve(s, "GET", "/games/abc_123/frames?offset=x").Code)
	require.Equal(t, http.StatusBadRequest, serve(s, "GET", "/games/abc_123/frames?limit=-1").Code)
	require.Equal(t, http.StatusNotFound, serve(s, "GET", "/games/missing/frames").Code)
}

func TestCORS(t *testing.T) {
	s, _ := createAPIServer(t, rules.StateEnded, 1)

	req, _ := http.NewRequest("GET", "/games/abc_123", nil)
	req.Header.Set("Origin", "http://example.com")
	rr := httptest.NewRecorder()
	s.hs.Handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func dialSocket(t *testing.T, s *Server, id string) (*websocket.Conn, func()) {
	hs := httptest.NewServer(s.hs.Handler)

	url := "ws" + strings.TrimPrefix(hs.URL, "http") + "/socket/" + id
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		hs.Close()
	}
	require.NoError(t, err)
	return c, func() {
		c.Close()
		hs.Close()
	}
}

func readTurns(t *testing.T, c *websocket.Conn, n int) []int {
	turns := []int{}
	for i := 0; i < n; i++ {
		require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
		mt, data, err := c.ReadMessage()
		require.NoError(t, err)
		require.Equal(t, websocket.TextMessage, mt)

		f := &rules.Frame{}
		require.NoError(t, json.Unmarshal(data, f))
		turns = append(turns, f.Turn)
	}
	return turns
}

func requireNormalClose(t *testing.T, c *websocket.Conn) {
	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := c.ReadMessage()
	require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestSocketFinishedGame(t *testing.T) {
	s, _ := createAPIServer(t, rules.StateWon, 3)

	c, done := dialSocket(t, s, "abc_123")
	defer done()
	require.Equal(t, []int{0, 1, 2}, readTurns(t, c, 3))
	requireNormalClose(t, c)
}

func TestSocketRunningGame(t *testing.T) {
	PollInterval = 5 * time.Millisecond
	s, st := createAPIServer(t, rules.StateRunning, 1)
	ctx := context.Background()

	c, done := dialSocket(t, s, "abc_123")
	defer done()
	require.Equal(t, []int{0}, readTurns(t, c, 1))

	require.NoError(t, st.PushGameFrame(ctx, "abc_123", testFrame(1)))
	require.NoError(t, st.PushGameFrame(ctx, "abc_123", testFrame(2)))
	require.Equal(t, []int{1, 2}, readTurns(t, c, 2))

	require.NoError(t, st.PushGameFrame(ctx, "abc_123", testFrame(3)))
	require.NoError(t, st.SetGameStatus(ctx, "abc_123", rules.StateEnded, 0))
	require.Equal(t, []int{3}, readTurns(t, c, 1))
	requireNormalClose(t, c)
}

func TestSocketNotFound(t *testing.T) {
	s, _ := createAPIServer(t, rules.StateEnded, 0)
	hs := httptest.NewServer(s.hs.Handler)
	defer hs.Close()

	url := "ws" + strings.TrimPrefix(hs.URL, "http") + "/socket/missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
