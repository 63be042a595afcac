package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	utils "gitlab.com/mipimipi/go-utils"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gitlab.com/musicdb/musicdb/src/internal/catalog"
)

// statsCmd prints catalog counts, grounded on the teacher's
// Content.WriteStatus (internal/content/content.go): fixed-width counts plus
// a message.NewPrinter(language.English) line for large numbers.
var statsCmd = &cobra.Command{
	Use:   "stats [db_dir]",
	Short: "Print catalog counts for a database snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(args[0], snapshotFilename)
		store, err := catalog.Load(path)
		if err != nil {
			return err
		}

		p := message.NewPrinter(language.English)
		p.Printf("    %d artists\n", len(store.Artists()))
		p.Printf("    %d albums\n", len(store.Albums()))
		p.Printf("    %d songs\n", len(store.Songs()))
		p.Printf("    %d covers\n", len(store.Covers()))

		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		p.Printf("    memory consumption: %d bytes\n", m.HeapAlloc)

		if addr, err := utils.IPaddr(); err == nil {
			fmt.Fprintf(os.Stdout, "    this host's advertised address: %s\n", addr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
