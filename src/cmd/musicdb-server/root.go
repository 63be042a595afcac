package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags; "dev" otherwise.
var Version = "dev"

var preamble = `musicdb-server ` + Version + `

musicdb-server replicates a song/album/artist/cover catalog and playback
queue to any number of connected clients over a small binary protocol.`

var rootCmd = &cobra.Command{
	Use:     "musicdb-server",
	Short:   "musicdb catalog/queue replication server",
	Long:    preamble,
	Version: Version,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
}
