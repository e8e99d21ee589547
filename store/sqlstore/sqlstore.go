package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/lib/pq" // Import pq driver.
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/tilesnake/engine/config"
	"github.com/tilesnake/engine/rules"
	"github.com/tilesnake/engine/store"
)

const migrations = `
CREATE TABLE IF NOT EXISTS games (
	id VARCHAR(255) PRIMARY KEY,
	value jsonb,
	created timestamp default now()
);
CREATE TABLE IF NOT EXISTS game_frames (
	id VARCHAR(255),
	turn INTEGER,
	value jsonb,
	PRIMARY KEY (id, turn)
);
`

// NewSQLStore returns a new store using a postgres database.
func NewSQLStore(url string) (*Store, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	if err = db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "unable to connect")
	}

	_, err = db.ExecContext(ctx, migrations)
	if err != nil {
		return nil, errors.Wrap(err, "unable to migrate")
	}
	return &Store{db: db}, nil
}

// Store represents an SQL store.
type Store struct {
	db *sql.DB
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// transact is a transaction wrapper, helps avoid failed to close connections.
func (s *Store) transact(
	ctx context.Context, txFunc func(*sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			if rErr := tx.Rollback(); rErr != nil {
				log.WithError(rErr).Error("rollback failed")
			}
			panic(p) // re-throw panic after Rollback
		} else if err != nil {
			// err is non-nil; don't change it
			if rErr := tx.Rollback(); rErr != nil {
				log.WithError(rErr).Error("rollback failed")
			}
		} else {
			err = tx.Commit() // err is nil; if Commit returns error update err
		}
	}()
	err = txFunc(tx)
	return err
}

// SetGameStatus records the state and score of a game in one update.
func (s *Store) SetGameStatus(
	ctx context.Context, id string, state rules.State, score int) error {
	return s.transact(ctx, func(tx *sql.Tx) error {
		status, err := json.Marshal(map[string]interface{}{
			"status": state,
			"score":  score,
		})
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE games SET value = value || $2::jsonb WHERE id = $1`, id, status)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

// CreateGame will insert a game with the default game frames.
func (s *Store) CreateGame(
	ctx context.Context, g *store.Game, frames []*rules.Frame) error {
	return s.transact(ctx, func(tx *sql.Tx) error {
		var data []byte
		{
			var err error
			data, err = json.Marshal(g)
			if err != nil {
				return err
			}
		}
		// Upsert games.
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO games (id, value) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET value=$2`,
			g.ID, data,
		); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM game_frames WHERE id=$1`, g.ID); err != nil {
			return err
		}
		return s.pushFrames(ctx, tx, g.ID, frames...)
	})
}

func (s *Store) pushFrames(
	ctx context.Context, tx *sql.Tx, id string, frames ...*rules.Frame) error {
	r := tx.QueryRowContext(
		ctx, "SELECT COUNT(*) FROM game_frames where id=$1", id)

	var count int
	if err := r.Scan(&count); err != nil {
		return err
	}
	if err := store.CheckSequence(count, frames...); err != nil {
		return err
	}

	for _, frame := range frames {
		frameData, err := json.Marshal(frame)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(
			ctx, `INSERT INTO game_frames (id, turn, value) VALUES ($1, $2, $3)`,
			id, frame.Turn, frameData,
		); err != nil {
			return err
		}
	}
	return nil
}

// PushGameFrame will push a game frame onto the list of frames.
func (s *Store) PushGameFrame(
	ctx context.Context, id string, f *rules.Frame) error {
	if _, err := s.GetGame(ctx, id); err != nil {
		return err
	}
	return s.transact(ctx, func(tx *sql.Tx) error {
		return s.pushFrames(ctx, tx, id, f)
	})
}

// ListGameFrames will list frames by an offset and limit, it supports
// negative offset.
func (s *Store) ListGameFrames(ctx context.Context, id string, limit, offset int) ([]*rules.Frame, error) {
	if _, err := s.GetGame(ctx, id); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}

	order := "ASC"
	if offset < 0 {
		order = "DESC"
		offset = -offset
		offset = offset - 1 // adjust the offset for common semantics
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT value FROM game_frames WHERE id=$1 ORDER BY turn `+
			order+` LIMIT $2 OFFSET $3`,
		id, limit, offset,
	)
	if err != nil {
		return nil, err
	}

	var frames []*rules.Frame
	defer rows.Close()
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}

		frame := &rules.Frame{}
		if err := json.Unmarshal(data, frame); err != nil {
			return nil, err
		}

		frames = append(frames, frame)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if order == "DESC" {
		for i, j := 0, len(frames)-1; i < j; i, j = i+1, j-1 {
			frames[i], frames[j] = frames[j], frames[i]
		}
	}
	return frames, nil
}

// GetGame will fetch the game.
func (s *Store) GetGame(c context.Context, id string) (*store.Game, error) {
	r := s.db.QueryRowContext(c, "SELECT value FROM games WHERE id=$1", id)

	var data []byte
	if err := r.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	g := &store.Game{}
	if err := json.Unmarshal(data, g); err != nil {
		return nil, err
	}
	return g, nil
}
