package redisstore

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"
	"github.com/tilesnake/engine/rules"
	"github.com/tilesnake/engine/store"
)

// Store is a redis backed store. Each game uses three keys: the JSON game
// header, a hash holding its status and score, and a list of JSON frames.
type Store struct {
	client *redis.Client
}

// NewStore will create a new instance of an underlying redis client, so it
// should not be re-created across goroutines. See
// github.com/go-redis/redis/options.go for URL specifics. The connection is
// tested immediately.
func NewStore(connectURL string) (*Store, error) {
	o, err := redis.ParseURL(connectURL)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse redis URL")
	}

	client := redis.NewClient(o)

	// Validate it's connected
	err = client.Ping().Err()
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect")
	}

	return &Store{client: client}, nil
}

// Close closes the underlying client.
func (rs *Store) Close() error {
	return rs.client.Close()
}

func gameKey(id string) string   { return "game:" + id }
func statusKey(id string) string { return "game:" + id + ":status" }
func framesKey(id string) string { return "game:" + id + ":frames" }

// CreateGame will insert a game with the default game frames.
func (rs *Store) CreateGame(c context.Context, g *store.Game, frames []*rules.Frame) error {
	if err := store.CheckSequence(0, frames...); err != nil {
		return err
	}

	header := g.Clone()
	header.Status = ""
	header.Score = 0
	data, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "unable to encode game")
	}
	encoded, err := encodeFrames(frames)
	if err != nil {
		return err
	}

	_, err = rs.client.TxPipelined(func(pipe redis.Pipeliner) error {
		pipe.Del(gameKey(g.ID), statusKey(g.ID), framesKey(g.ID))
		pipe.Set(gameKey(g.ID), data, 0)
		pipe.HMSet(statusKey(g.ID), map[string]interface{}{
			"state": string(g.Status),
			"score": g.Score,
		})
		if len(encoded) > 0 {
			pipe.RPush(framesKey(g.ID), encoded...)
		}
		return nil
	})
	return errors.Wrap(err, "unable to create game")
}

// PushGameFrame will push a game frame onto the list of frames.
func (rs *Store) PushGameFrame(c context.Context, id string, f *rules.Frame) error {
	if err := rs.requireGame(id); err != nil {
		return err
	}
	n, err := rs.client.LLen(framesKey(id)).Result()
	if err != nil {
		return errors.Wrap(err, "unable to count frames")
	}
	if err := store.CheckSequence(int(n), f); err != nil {
		return err
	}
	encoded, err := encodeFrames([]*rules.Frame{f})
	if err != nil {
		return err
	}
	return errors.Wrap(rs.client.RPush(framesKey(id), encoded...).Err(), "unable to push frame")
}

// ListGameFrames will list frames by an offset and limit, it supports
// negative offset.
func (rs *Store) ListGameFrames(c context.Context, id string, limit, offset int) ([]*rules.Frame, error) {
	if err := rs.requireGame(id); err != nil {
		return nil, err
	}
	n, err := rs.client.LLen(framesKey(id)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "unable to count frames")
	}

	total := int(n)
	if offset < 0 {
		offset = total + offset
		if offset < 0 {
			offset = 0
		}
	}
	if limit <= 0 || offset >= total {
		return nil, nil
	}

	values, err := rs.client.LRange(framesKey(id), int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "unable to list frames")
	}

	frames := make([]*rules.Frame, 0, len(values))
	for _, v := range values {
		f := &rules.Frame{}
		if err := json.Unmarshal([]byte(v), f); err != nil {
			return nil, errors.Wrap(err, "unable to decode frame")
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// GetGame will fetch the game.
func (rs *Store) GetGame(c context.Context, id string) (*store.Game, error) {
	data, err := rs.client.Get(gameKey(id)).Bytes()
	if err == redis.Nil {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to get game")
	}

	g := &store.Game{}
	if err := json.Unmarshal(data, g); err != nil {
		return nil, errors.Wrap(err, "unable to decode game")
	}

	status, err := rs.client.HGetAll(statusKey(id)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "unable to get game status")
	}
	g.Status = rules.State(status["state"])
	if s, ok := status["score"]; ok {
		g.Score, err = strconv.Atoi(s)
		if err != nil {
			return nil, errors.Wrap(err, "invalid game score")
		}
	}
	return g, nil
}

// SetGameStatus is used to set a specific game status. State and score are
// written together.
func (rs *Store) SetGameStatus(c context.Context, id string, state rules.State, score int) error {
	if err := rs.requireGame(id); err != nil {
		return err
	}
	err := rs.client.HMSet(statusKey(id), map[string]interface{}{
		"state": string(state),
		"score": score,
	}).Err()
	return errors.Wrap(err, "unable to set game status")
}

func (rs *Store) requireGame(id string) error {
	n, err := rs.client.Exists(gameKey(id)).Result()
	if err != nil {
		return errors.Wrap(err, "unable to check game")
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func encodeFrames(frames []*rules.Frame) ([]interface{}, error) {
	encoded := make([]interface{}, 0, len(frames))
	for _, f := range frames {
		data, err := json.Marshal(f)
		if err != nil {
			return nil, errors.Wrap(err, "unable to encode frame")
		}
		encoded = append(encoded, data)
	}
	return encoded, nil
}
