package filestore

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/tilesnake/engine/rules"
	"github.com/tilesnake/engine/store"
)

var openFileWriter = appendOnlyFileWriter

type writer interface {
	WriteString(s string) (int, error)
	Close() error
}

// record is every line after the game header.
type record struct {
	Frame  *rules.Frame  `json:"frame,omitempty"`
	Status *statusRecord `json:"status,omitempty"`
}

type statusRecord struct {
	State rules.State `json:"state"`
	Score int         `json:"score"`
}

func requireSaveDir(directory string) error {
	return os.MkdirAll(directory, 0775)
}

func writeLine(w writer, data interface{}) error {
	j, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = w.WriteString(string(j) + "\n")
	return err
}

func writeFrame(w writer, f *rules.Frame) error {
	return writeLine(w, &record{Frame: f})
}

func writeStatus(w writer, state rules.State, score int) error {
	return writeLine(w, &record{Status: &statusRecord{State: state, Score: score}})
}

func writeGameInfo(w writer, game *store.Game) error {
	return writeLine(w, game)
}

func appendOnlyFileWriter(directory, id string, mustCreate bool) (writer, error) {
	if err := requireSaveDir(directory); err != nil {
		return nil, errors.Wrap(err, "unable to create save directory")
	}

	path := getFilePath(directory, id)
	flags := os.O_APPEND | os.O_WRONLY | os.O_CREATE
	if mustCreate {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, err
	}
	return f, nil
}
