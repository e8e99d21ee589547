package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tilesnake/engine/api"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "gets the status of a recorded game from the engine api",
	Args: func(c *cobra.Command, args []string) error {
		if len(gameID) == 0 {
			return errors.New("game id is required")
		}
		return nil
	},
	Run: func(*cobra.Command, []string) {
		resp, err := getStatus(apiAddr, gameID)
		if err != nil {
			fmt.Println("error while getting status:", err)
			return
		}
		spew.Dump(resp)
	},
}

func init() {
	statusCmd.Flags().StringVarP(&gameID, "game-id", "g", "", "the game id of the game to get the status of")
}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
}

func getStatus(addr, id string) (*api.GameResponse, error) {
	resp, err := httpClient.Get(fmt.Sprintf("%s/games/%s", addr, id))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("error while closing body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	sr := &api.GameResponse{}
	if err := json.NewDecoder(resp.Body).Decode(sr); err != nil {
		log.WithField("id", id).WithError(err).Info("unable to unmarshal status response")
		return nil, err
	}
	return sr, nil
}
