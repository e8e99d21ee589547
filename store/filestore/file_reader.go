package filestore

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/tilesnake/engine/rules"
	"github.com/tilesnake/engine/store"
)

var openFileReader = fileReader

type reader interface {
	io.Reader
	Close() error
}

func fileReader(directory, id string) (reader, error) {
	f, err := os.Open(getFilePath(directory, id))
	if os.IsNotExist(err) {
		return nil, store.ErrNotFound
	}
	return f, err
}

// readLine decodes the next line into out. It returns false at the end of the
// file.
func readLine(r *bufio.Reader, out interface{}) (bool, error) {
	bytes, err := r.ReadBytes('\n')
	if err == io.EOF && len(bytes) == 0 {
		return false, nil
	}
	if err != nil && err != io.EOF {
		return false, err
	}
	if err := json.Unmarshal(bytes, out); err != nil {
		return false, err
	}
	return true, nil
}

func readArchive(directory, id string) (gameArchive, error) {
	f, err := openFileReader(directory, id)
	if err != nil {
		return gameArchive{}, err
	}
	defer f.Close()

	r := bufio.NewReader(f)

	game := &store.Game{}
	ok, err := readLine(r, game)
	if err != nil {
		return gameArchive{}, errors.Wrapf(err, "reading header of game %s", id)
	}
	if !ok {
		return gameArchive{}, store.ErrNotFound
	}

	frames := []*rules.Frame{}
	for {
		rec := record{}
		ok, err := readLine(r, &rec)
		if err != nil {
			return gameArchive{}, errors.Wrapf(err, "reading game %s", id)
		}
		if !ok {
			break
		}
		if rec.Frame != nil {
			frames = append(frames, rec.Frame)
		}
		if rec.Status != nil {
			game.Status = rec.Status.State
			game.Score = rec.Status.Score
		}
	}

	return gameArchive{game: game, frames: frames}, nil
}

// ReadGame loads the game stored in a file with the given id.
func ReadGame(directory, id string) (*store.Game, []*rules.Frame, error) {
	archive, err := readArchive(directory, id)
	if err != nil {
		return nil, nil, err
	}
	return archive.game, archive.frames, nil
}
