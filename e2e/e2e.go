// Package e2e drives whole rounds through the worker, a recording backend and
// the api, then checks what a spectator sees.
package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tilesnake/engine/api"
)

type client struct {
	apiURL string
	client *http.Client
}

func (c *client) getJSON(path string, out interface{}) error {
	resp, err := c.client.Get(c.apiURL + path)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return fmt.Errorf("GET %s: %s", path, resp.Status)
	}
	err = json.NewDecoder(resp.Body).Decode(out)
	if cErr := resp.Body.Close(); err == nil {
		err = cErr
	}
	return err
}

func (c *client) gameStatus(gameID string) (*api.GameResponse, *api.FramesResponse, error) {
	st := &api.GameResponse{}
	frames := &api.FramesResponse{}

	if err := c.getJSON(fmt.Sprintf("/games/%s", gameID), st); err != nil {
		return nil, nil, err
	}
	if err := c.getJSON(fmt.Sprintf("/games/%s/frames?limit=100000", gameID), frames); err != nil {
		return nil, nil, err
	}
	return st, frames, nil
}
