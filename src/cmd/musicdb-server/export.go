package main

import (
	"net"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ushis/m3u"

	"gitlab.com/musicdb/musicdb/src/internal/catalog"
	"gitlab.com/musicdb/musicdb/src/internal/command"
	"gitlab.com/musicdb/musicdb/src/internal/queue"
)

// queueCmd groups queue-related client-side operations.
var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Operate on a running server's playback queue",
}

// queueExportCmd connects to a running server's "main" channel, waits for
// the initialization sequence (spec §4.5) and writes the current queue out
// as an M3U playlist. Grounded on the teacher's playlist import
// (internal/content/playlist.go), which reads an m3u.Playlist with
// github.com/ushis/m3u; here the same library writes one instead.
var queueExportCmd = &cobra.Command{
	Use:   "export [addr] [path.m3u]",
	Short: "Export the current playback queue of a running server to an M3U file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, path := args[0], args[1]

		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return err
		}
		defer conn.Close()

		if _, err := conn.Write([]byte("main\n")); err != nil {
			return err
		}

		songs := map[catalog.SongID]catalog.Song{}
		libRoot := ""
		var q queue.Queue
		haveQueue := false

		for {
			c, err := command.FromBytes(conn)
			if err != nil {
				return err
			}
			switch c.Kind {
			case command.KindSyncDatabase:
				for _, s := range c.SyncSongs {
					songs[s.ID] = s
				}
			case command.KindQueueUpdate:
				q = c.Queue
				haveQueue = true
			case command.KindSetLibraryDirectory:
				libRoot = c.LibraryDirectory
			case command.KindInitComplete:
				if !haveQueue {
					return writePlaylist(path, nil)
				}
				return writePlaylist(path, tracksInOrder(q, songs, libRoot))
			}
		}
	},
}

func init() {
	queueCmd.AddCommand(queueExportCmd)
	rootCmd.AddCommand(queueCmd)
}

func writePlaylist(path string, tracks []m3u.Track) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m3u.Playlist(tracks).Write(f)
}

// tracksInOrder walks q from its current position to the end of its
// playback order via repeated AdvanceIndex calls on a clone — the same
// lookahead technique internal/cache.Manager uses to avoid disturbing the
// live cursor — and resolves each visited song id against the synced
// catalog to build absolute-path M3U tracks. Infinite queues (a loop or an
// endless random/shuffle folder) are cut off once a song id repeats.
func tracksInOrder(q queue.Queue, songs map[catalog.SongID]catalog.Song, libRoot string) []m3u.Track {
	walk := q.Clone()
	seen := map[catalog.SongID]bool{}
	var tracks []m3u.Track

	for {
		id, ok := walk.GetCurrentSong()
		if !ok {
			break
		}
		if seen[id] {
			break
		}
		seen[id] = true

		if s, ok := songs[id]; ok {
			tracks = append(tracks, m3u.Track{
				Path:     filepath.Join(libRoot, s.Location.RelPath),
				Title:    s.Title,
				Duration: int(s.DurationMillis / 1000),
			})
		}

		var actions []queue.Action
		if !walk.AdvanceIndex(nil, &actions) {
			break
		}
	}
	return tracks
}
