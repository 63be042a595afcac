package main

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"gitlab.com/musicdb/musicdb/src/internal/command"
	"gitlab.com/musicdb/musicdb/src/internal/config"
)

// runClient mirrors musicdb-client/src/gui.rs's config-loading preamble
// exactly (same two exit codes), then — instead of opening a speedy2d
// window — connects as an ordinary "main" client and prints what the init
// sequence (spec §4.5) describes.
func runClient(cmd *cobra.Command, args []string) error {
	addr := args[0]

	cfg, err := config.LoadClientConfig(configPath)
	if err != nil {
		if err == config.ErrConfigMissing {
			fmt.Fprintf(os.Stderr, "[exit] no config file found at %q: wrote a default.\n", configPath)
			os.Exit(25)
		}
		fmt.Fprintf(os.Stderr, "[toml] %v\n", err)
		os.Exit(30)
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("main\n")); err != nil {
		return err
	}

	var artists, albums, songs int
	libRoot := ""
	playing := false

	for {
		c, err := command.FromBytes(conn)
		if err != nil {
			return err
		}
		switch c.Kind {
		case command.KindSyncDatabase:
			artists = len(c.SyncArtists)
			albums = len(c.SyncAlbums)
			songs = len(c.SyncSongs)
		case command.KindResume:
			playing = true
		case command.KindSetLibraryDirectory:
			libRoot = c.LibraryDirectory
		case command.KindInitComplete:
			printSummary(cfg, libRoot, artists, albums, songs, playing)
			return nil
		}
	}
}

// printSummary renders the idle-state text the GUI's status bar would show
// (spec §6 [text] keys), substituting the values a real render loop would
// have animated onto the screen.
func printSummary(cfg config.ClientConfig, libRoot string, artists, albums, songs int, playing bool) {
	fmt.Printf("%s\n", cfg.Text.IdleTop)
	fmt.Printf("library: %s\n", libRoot)
	fmt.Printf("%d artists, %d albums, %d songs\n", artists, albums, songs)
	if playing {
		fmt.Println(cfg.Text.StatusBar)
	} else {
		fmt.Printf("%s\n%s\n", cfg.Text.IdleSide1, cfg.Text.IdleSide2)
	}
}
