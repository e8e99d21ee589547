package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	promEnable = true
	promListen = ":9000"
)

// RootCmd provides the root run command.
var RootCmd = &cobra.Command{
	Use:    "server",
	Short:  "serve recorded games over http",
	PreRun: func(c *cobra.Command, args []string) { Prometheus(promEnable, promListen) },
	Run: func(c *cobra.Command, args []string) {
		apiCmd.Run(c, args)
	},
}

func init() {
	RootCmd.Flags().BoolVar(&promEnable, "prometheus", promEnable, "enable prometheus metrics")
	RootCmd.Flags().StringVar(&promListen, "prometheus-listen", promListen, "prometheus http endpoint")
}

// Prometheus starts the metrics exporter on listen when enabled.
func Prometheus(enabled bool, listen string) {
	if !enabled {
		log.Info("prometheus exporter not enabled")
		return
	}

	log.WithField("addr", listen).Info("starting prometheus exporter")
	go func() {
		r := http.NewServeMux()
		r.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(listen, r); err != nil {
			log.WithError(err).Warn("prometheus failed to listen")
		}
	}()
}
