package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tilesnake/engine/cmd/engine/commands/server"
	"github.com/tilesnake/engine/version"
)

var rootCmd = &cobra.Command{
	Use:     "engine",
	Short:   "engine runs tile snake games in the terminal",
	Version: version.Version,
	PreRun:  playCmd.PreRun,
	Run:     playCmd.Run,
}

var (
	apiAddr string
	gameID  string
)

// Execute runs the root command
func Execute() {
	rootCmd.PersistentFlags().StringVar(&apiAddr, "api-addr", "http://localhost:3005", "address of the api server")
	rootCmd.Flags().AddFlagSet(playCmd.Flags())

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(server.RootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
