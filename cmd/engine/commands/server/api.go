package server

import (
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tilesnake/engine/api"
	"github.com/tilesnake/engine/store"
)

var (
	apiListen      = ":3005"
	apiBackend     = "file"
	apiBackendArgs = ""
)

func init() {
	apiCmd.Flags().StringVarP(&apiListen, "listen", "l", apiListen, "api address to listen on")
	apiCmd.Flags().StringVarP(&apiBackend, "backend", "b", apiBackend, "game store backend, as one of: [inmem, file, redis, sql]")
	apiCmd.Flags().StringVarP(&apiBackendArgs, "backend-args", "a", apiBackendArgs, "options to pass to the backend being used")
	RootCmd.Flags().AddFlagSet(apiCmd.Flags())
}

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "runs the engine api",
	Run: func(c *cobra.Command, args []string) {
		s, err := OpenStore(apiBackend, apiBackendArgs)
		if err != nil {
			log.WithError(err).
				WithField("backend", apiBackend).
				Fatal("unable to start up backend store")
		}
		defer CloseStore(s)

		srv := api.New(apiListen, store.InstrumentStore(s))
		log.WithField("listen", apiListen).Info("Snake engine api serving")
		srv.WaitForExit()
	},
}

// CloseStore closes backends holding connections or files.
func CloseStore(s store.Store) {
	if c, ok := s.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.WithError(err).Error("unable to close store")
		}
	}
}
