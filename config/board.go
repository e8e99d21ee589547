package config

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/tilesnake/engine/board"
	"github.com/tilesnake/engine/rules"
)

// Board defaults, used for every field missing from a board file.
const (
	DefaultRows    = 20
	DefaultColumns = 30
)

// DefaultSnake is the starting body, head first.
var DefaultSnake = [][2]int{{2, 3}, {2, 2}, {2, 1}}

// boardFile is the on disk format. Positions are [row, col] pairs.
type boardFile struct {
	Rows        *int     `json:"rows"`
	Columns     *int     `json:"columns"`
	Blocks      [][2]int `json:"blocks"`
	Grid        bool     `json:"grid"`
	Snake       [][2]int `json:"snake"`
	Direction   string   `json:"direction"`
	RefreshRate int      `json:"refresh_rate"`
}

// Board is a loaded board file.
type Board struct {
	Config rules.Config
	// ShowGrid draws a marker on empty cells.
	ShowGrid bool
}

// DefaultBoard returns the board used when no file is given.
func DefaultBoard() Board {
	b, _ := parseBoard(boardFile{})
	return b
}

// LoadBoard reads a JSON board file. The returned config is validated.
func LoadBoard(path string) (Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return Board{}, errors.Wrap(err, "unable to open board file")
	}
	defer f.Close()

	b, err := ReadBoard(f)
	if err != nil {
		return Board{}, errors.Wrapf(err, "loading %s", path)
	}
	return b, nil
}

// ReadBoard decodes and validates a board from r.
func ReadBoard(r io.Reader) (Board, error) {
	var bf boardFile
	if err := json.NewDecoder(r).Decode(&bf); err != nil {
		return Board{}, errors.Wrap(err, "invalid board json")
	}
	b, err := parseBoard(bf)
	if err != nil {
		return Board{}, err
	}
	if err := b.Config.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

func parseBoard(bf boardFile) (Board, error) {
	cfg := rules.Config{
		Rows:        DefaultRows,
		Columns:     DefaultColumns,
		Direction:   board.Right,
		RefreshRate: RefreshRate,
		Walls:       points(bf.Blocks),
		Snake:       points(DefaultSnake),
	}
	if bf.Rows != nil {
		cfg.Rows = *bf.Rows
	}
	if bf.Columns != nil {
		cfg.Columns = *bf.Columns
	}
	if len(bf.Snake) > 0 {
		cfg.Snake = points(bf.Snake)
	}
	if bf.Direction != "" {
		dir, err := board.ParseDirection(bf.Direction)
		if err != nil {
			return Board{}, errors.Wrap(err, "invalid board direction")
		}
		cfg.Direction = dir
	}
	if bf.RefreshRate != 0 {
		cfg.RefreshRate = bf.RefreshRate
	}
	return Board{Config: cfg, ShowGrid: bf.Grid}, nil
}

func points(pairs [][2]int) []board.Point {
	if len(pairs) == 0 {
		return nil
	}
	pts := make([]board.Point, len(pairs))
	for i, p := range pairs {
		pts[i] = board.Point{Row: p[0], Col: p[1]}
	}
	return pts
}
