package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is a thin reference client: it loads config_gui.toml with the
// spec's exit-code contract and prints a snapshot of a running server's
// catalog/queue over the main TCP protocol. Actual GUI rendering
// (speedy2d, in musicdb-client/src/gui.rs) is an out-of-scope external
// collaborator — this binary only exercises the config and wire-protocol
// surface a GUI would sit on top of.
var rootCmd = &cobra.Command{
	Use:   "musicdb-client [addr]",
	Short: "Reference client: loads config_gui.toml and prints a server's state",
	Args:  cobra.ExactArgs(1),
	RunE:  runClient,
}

var configPath string

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "config_gui.toml", "path to the GUI config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
