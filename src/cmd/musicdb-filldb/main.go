package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd scans a library directory for MP3 files and writes a fresh dbfile
// snapshot, grounded on musicdb-filldb/src/main.rs and fitted to the
// teacher's cobra CLI shape (cmd/muserv/root.go).
var rootCmd = &cobra.Command{
	Use:   "musicdb-filldb <library_root>",
	Short: "Seed a database snapshot from a music library's ID3 tags",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilldb,
}

var skipDuration bool

func init() {
	rootCmd.Flags().BoolVar(&skipDuration, "skip-duration", false, "suppress the missing-duration warning (durations are always stored as 0)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
