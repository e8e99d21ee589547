package filestore

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tilesnake/engine/board"
	"github.com/tilesnake/engine/rules"
	"github.com/tilesnake/engine/store"
	"github.com/tilesnake/engine/store/testsuite"
)

type mockWriter struct {
	text   string
	err    error
	closed bool
}

func (w *mockWriter) WriteString(s string) (int, error) {
	if w.err != nil {
		return 0, w.err
	}

	w.text += s
	return len(s), nil
}

func (w *mockWriter) Close() error {
	w.closed = true
	return nil
}

func basicGame() *store.Game {
	return &store.Game{
		ID:      "myid",
		Rows:    10,
		Columns: 15,
		Walls:   []board.Point{{Row: 4, Col: 4}},
		Status:  rules.StateRunning,
		Created: time.Date(2018, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func basicFrames() []*rules.Frame {
	food := board.Point{Row: 1, Col: 1}
	return []*rules.Frame{
		{Turn: 0, Snake: []board.Point{{Row: 2, Col: 3}, {Row: 2, Col: 2}}, Food: &food, State: rules.StateRunning},
		{Turn: 1, Snake: []board.Point{{Row: 2, Col: 4}, {Row: 2, Col: 3}}, Food: &food, State: rules.StateRunning},
	}
}

// testFileStore swaps file access for in memory writers keyed by game id.
func testFileStore(t *testing.T) (store.Store, map[string]*mockWriter) {
	files := map[string]*mockWriter{}
	openFileWriter = func(directory, id string, mustCreate bool) (writer, error) {
		w, ok := files[id]
		if !ok {
			w = &mockWriter{}
			files[id] = w
		}
		w.closed = false
		return w, nil
	}
	openFileReader = func(directory, id string) (reader, error) {
		w, ok := files[id]
		if !ok {
			return nil, store.ErrNotFound
		}
		return ioutil.NopCloser(strings.NewReader(w.text)), nil
	}
	return NewFileStore("unused"), files
}

func restoreFiles() {
	openFileWriter = appendOnlyFileWriter
	openFileReader = fileReader
}

func TestFileStore(t *testing.T) {
	defer restoreFiles()
	fs, files := testFileStore(t)
	ctx := context.Background()
	frames := basicFrames()

	err := fs.CreateGame(ctx, basicGame(), frames[:1])
	require.NoError(t, err)

	game, err := fs.GetGame(ctx, "myid")
	require.NoError(t, err)
	require.Equal(t, basicGame(), game)

	err = fs.PushGameFrame(ctx, "myid", frames[1])
	require.NoError(t, err)

	newFrames, err := fs.ListGameFrames(ctx, "myid", 5, 0)
	require.NoError(t, err)
	require.Equal(t, frames, newFrames)

	err = fs.SetGameStatus(ctx, "myid", rules.StateEnded, 3)
	require.NoError(t, err)
	require.True(t, files["myid"].closed)
	require.Len(t, strings.Split(strings.TrimSpace(files["myid"].text), "\n"), 4)

	// Reloaded from the file contents.
	game, err = fs.GetGame(ctx, "myid")
	require.NoError(t, err)
	require.Equal(t, rules.StateEnded, game.Status)
	require.Equal(t, 3, game.Score)

	newFrames, err = fs.ListGameFrames(ctx, "myid", 5, -1)
	require.NoError(t, err)
	require.Equal(t, frames[1:], newFrames)
}

func TestCreateGameHandlesWriteError(t *testing.T) {
	defer restoreFiles()
	fs, files := testFileStore(t)
	files["myid"] = &mockWriter{err: errors.New("fail")}

	err := fs.CreateGame(context.Background(), basicGame(), basicFrames())
	require.NotNil(t, err)
	require.True(t, files["myid"].closed)
}

func TestCreateGameHandlesOpenFileError(t *testing.T) {
	defer restoreFiles()
	openFileWriter = func(directory, id string, mustCreate bool) (writer, error) {
		return nil, errors.New("fail")
	}
	openFileReader = func(directory, id string) (reader, error) {
		return nil, errors.New("fail")
	}
	fs := NewFileStore("unused")
	err := fs.CreateGame(context.Background(), basicGame(), basicFrames())
	require.NotNil(t, err)
}

func TestCreateGameRejectsBadSequence(t *testing.T) {
	defer restoreFiles()
	fs, files := testFileStore(t)

	err := fs.CreateGame(context.Background(), basicGame(), basicFrames()[1:])
	require.Equal(t, store.ErrInvalidSequence, err)
	require.Empty(t, files)
}

func TestGetGameNotFound(t *testing.T) {
	defer restoreFiles()
	fs, _ := testFileStore(t)

	_, err := fs.GetGame(context.Background(), "notfound")
	require.Equal(t, store.ErrNotFound, err)
}

func TestPushGameFrameInvalidGame(t *testing.T) {
	defer restoreFiles()
	fs, _ := testFileStore(t)

	err := fs.PushGameFrame(context.Background(), "notfound", basicFrames()[0])
	require.Equal(t, store.ErrNotFound, err)
}

func TestSetGameStatusInvalidGame(t *testing.T) {
	defer restoreFiles()
	fs, _ := testFileStore(t)

	err := fs.SetGameStatus(context.Background(), "notfound", rules.StateEnded, 0)
	require.Equal(t, store.ErrNotFound, err)
}

func TestReadArchiveBadHeader(t *testing.T) {
	defer restoreFiles()
	fs, files := testFileStore(t)
	files["broken"] = &mockWriter{text: "{not json\n"}

	_, err := fs.GetGame(context.Background(), "broken")
	require.Error(t, err)
	require.NotEqual(t, store.ErrNotFound, err)
}

func TestFileStoreOnDisk(t *testing.T) {
	dir, err := ioutil.TempDir("", "filestore")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	testsuite.Suite(t, NewFileStore(dir), func() {})

	// A second store sees games recorded by the first.
	ctx := context.Background()
	first := NewFileStore(dir)
	require.NoError(t, first.CreateGame(ctx, basicGame(), basicFrames()))
	require.NoError(t, first.SetGameStatus(ctx, "myid", rules.StateWon, 9))

	game, frames, err := ReadGame(dir, "myid")
	require.NoError(t, err)
	require.Equal(t, rules.StateWon, game.Status)
	require.Equal(t, 9, game.Score)
	require.Equal(t, basicFrames(), frames)

	second := NewFileStore(dir)
	game, err = second.GetGame(ctx, "myid")
	require.NoError(t, err)
	require.Equal(t, 10, game.Rows)
}
