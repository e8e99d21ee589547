package filestore

import (
	"context"
	"os/user"
	"path"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/tilesnake/engine/rules"
	"github.com/tilesnake/engine/store"
)

// DefaultDir is where games are recorded when no directory is given.
func DefaultDir() string {
	return path.Join(homeDir(), ".tilesnake/games")
}

func homeDir() string {
	usr, err := user.Current()
	if err != nil {
		return "."
	}
	return usr.HomeDir
}

// NewFileStore returns a file based store implementation (1 file per game).
func NewFileStore(directory string) store.Store {
	if directory == "" {
		directory = DefaultDir()
	}

	return &fileStore{
		games:     map[string]*store.Game{},
		frames:    map[string][]*rules.Frame{},
		writers:   map[string]writer{},
		directory: directory,
	}
}

type fileStore struct {
	games     map[string]*store.Game
	frames    map[string][]*rules.Frame
	writers   map[string]writer
	lock      sync.Mutex
	directory string
}

// closeGame removes the game from in-memory cache and closes the handle to its
// file. Should be called when game is complete.
func (fs *fileStore) closeGame(id string) {
	if w, ok := fs.writers[id]; ok {
		err := w.Close()
		if err != nil {
			log.WithError(err).Error("Error while closing file writer")
		}
	}
	delete(fs.games, id)
	delete(fs.frames, id)
	delete(fs.writers, id)
}

func (fs *fileStore) CreateGame(ctx context.Context, g *store.Game, frames []*rules.Frame) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if err := store.CheckSequence(0, frames...); err != nil {
		return err
	}

	handle, err := openFileWriter(fs.directory, g.ID, true)
	if err != nil {
		return err
	}
	fs.writers[g.ID] = handle

	if err := writeGameInfo(handle, g); err != nil {
		fs.closeGame(g.ID)
		return err
	}
	fs.games[g.ID] = g.Clone()
	fs.frames[g.ID] = []*rules.Frame{}
	return fs.appendFrames(g.ID, frames)
}

func (fs *fileStore) SetGameStatus(ctx context.Context, id string, state rules.State, score int) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	game, err := fs.requireGame(id)
	if err != nil {
		return err
	}
	handle, err := fs.requireHandle(id)
	if err != nil {
		return err
	}
	if err := writeStatus(handle, state, score); err != nil {
		return err
	}

	game.Status = state
	game.Score = score
	if state != rules.StateRunning {
		fs.closeGame(id)
	}
	return nil
}

func (fs *fileStore) PushGameFrame(ctx context.Context, id string, f *rules.Frame) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if _, err := fs.requireGame(id); err != nil {
		return err
	}
	return fs.appendFrames(id, []*rules.Frame{f})
}

func (fs *fileStore) ListGameFrames(ctx context.Context, id string, limit, offset int) ([]*rules.Frame, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if _, err := fs.requireGame(id); err != nil {
		return nil, err
	}
	return store.Page(fs.frames[id], limit, offset), nil
}

func (fs *fileStore) GetGame(ctx context.Context, id string) (*store.Game, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	g, err := fs.requireGame(id)
	if err != nil {
		return nil, err
	}

	// Clone the game, since this could be modified after this is returned
	// and upset internal state inside the store.
	return g.Clone(), nil
}

func (fs *fileStore) requireHandle(id string) (writer, error) {
	if w, ok := fs.writers[id]; ok {
		return w, nil
	}

	handle, err := openFileWriter(fs.directory, id, false)
	if err != nil {
		return nil, err
	}

	fs.writers[id] = handle
	return handle, nil
}

// requireGame loads the game and its frames from file unless already cached.
func (fs *fileStore) requireGame(id string) (*store.Game, error) {
	if g, ok := fs.games[id]; ok {
		return g, nil
	}

	archive, err := readArchive(fs.directory, id)
	if err != nil {
		return nil, err
	}

	fs.games[id] = archive.game
	fs.frames[id] = archive.frames
	return archive.game, nil
}

func (fs *fileStore) appendFrames(id string, frames []*rules.Frame) error {
	if err := store.CheckSequence(len(fs.frames[id]), frames...); err != nil {
		return err
	}

	handle, err := fs.requireHandle(id)
	if err != nil {
		return err
	}

	for _, f := range frames {
		// Add frame to archive file
		if err := writeFrame(handle, f); err != nil {
			return err
		}
		// Add frame to in-memory cache
		fs.frames[id] = append(fs.frames[id], f.Clone())
	}
	return nil
}

type gameArchive struct {
	game   *store.Game
	frames []*rules.Frame
}

func getFilePath(directory string, id string) string {
	return path.Join(directory, id) + ".snake"
}
