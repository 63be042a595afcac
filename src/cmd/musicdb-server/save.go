package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"gitlab.com/musicdb/musicdb/src/internal/catalog"
)

// saveCmd loads a snapshot and writes it back unchanged — useful to migrate
// a dbfile written by an older codec revision, or simply to verify the file
// round-trips cleanly.
var saveCmd = &cobra.Command{
	Use:   "save [db_dir]",
	Short: "Load and immediately re-save the database snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(args[0], snapshotFilename)
		store, err := catalog.Load(path)
		if err != nil {
			return err
		}
		if err := store.Save(path); err != nil {
			return err
		}
		fmt.Printf("saved %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
}
