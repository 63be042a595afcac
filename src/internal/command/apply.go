package command

import (
	"math/rand"

	"gitlab.com/musicdb/musicdb/src/internal/catalog"
	"gitlab.com/musicdb/musicdb/src/internal/queue"
)

// State bundles the mutable pieces Apply acts on (spec §4.2/§4.3 combined
// behind the one coarse lock of spec §5). Callers hold Store.Mutex for the
// duration of Apply.
type State struct {
	Store   *catalog.Store
	Queue   *queue.Queue
	Playing *bool

	// SnapshotPath is where command Save writes to. Empty means "client
	// mode": Save becomes a no-op, mirroring save_database's empty-path
	// early return.
	SnapshotPath string
}

// Apply broadcasts cmd to every subscriber and then mutates st (spec §4.4:
// "since db.update_endpoints is empty for clients, this won't cause
// unwanted back and forth" — broadcast always runs first, even on a client,
// so the ordering is uniform regardless of role).
func Apply(st *State, b *Broadcaster, cmd Command) {
	b.Broadcast(cmd)
	apply(st, b, cmd)
}

func apply(st *State, b *Broadcaster, cmd Command) {
	switch cmd.Kind {
	case KindResume:
		*st.Playing = true
	case KindPause, KindStop:
		*st.Playing = false
	case KindNextSong:
		var actions []queue.Action
		st.Queue.AdvanceIndex(nil, &actions)
		handleActions(st, b, actions)
	case KindSave:
		if st.SnapshotPath == "" {
			return
		}
		if err := st.Store.Save(st.SnapshotPath); err != nil {
			log.WithError(err).Error("couldn't save database")
		}
	case KindSyncDatabase:
		st.Store.Sync(cmd.SyncArtists, cmd.SyncAlbums, cmd.SyncSongs)
	case KindQueueUpdate:
		if node := st.Queue.GetItemAtIndex(cmd.Path, 0); node != nil {
			*node = cmd.Queue
		}
	case KindQueueAdd:
		if node := st.Queue.GetItemAtIndex(cmd.Path, 0); node != nil {
			node.AddToEnd(cmd.Queue)
		}
	case KindQueueInsert:
		if node := st.Queue.GetItemAtIndex(cmd.Path, 0); node != nil {
			node.Insert(cmd.Queue, cmd.Pos)
		}
	case KindQueueRemove:
		st.Queue.RemoveByIndex(cmd.Path, 0)
	case KindQueueGoto:
		var actions []queue.Action
		st.Queue.SetIndex(cmd.Path, 0, nil, &actions)
		handleActions(st, b, actions)
	case KindQueueSetShuffle:
		st.Queue.ApplySetShuffle(cmd.Path, cmd.ShuffleMap, cmd.ShuffleNext)
	case KindAddSong:
		st.Store.AddSongNew(cmd.Song)
	case KindAddAlbum:
		st.Store.AddAlbumNew(cmd.Album)
	case KindAddArtist:
		st.Store.AddArtistNew(cmd.Artist)
	case KindAddCover:
		st.Store.AddCoverNew(cmd.Cover)
	case KindModifySong:
		st.Store.UpdateSong(cmd.Song)
	case KindModifyAlbum:
		st.Store.UpdateAlbum(cmd.Album)
	case KindModifyArtist:
		st.Store.UpdateArtist(cmd.Artist)
	case KindRemoveSong:
		st.Store.RemoveSong(cmd.SongID)
	case KindRemoveAlbum:
		st.Store.RemoveAlbum(cmd.AlbumID)
	case KindRemoveArtist:
		st.Store.RemoveArtist(cmd.ArtistID)
	case KindSetSongDuration:
		if song, ok := st.Store.Song(cmd.SongID); ok {
			song.DurationMillis = cmd.DurationMillis
			st.Store.UpdateSong(song)
		}
	case KindSetLibraryDirectory:
		st.Store.SetLibraryRoot(cmd.LibraryDirectory)
	case KindInitComplete, KindErrorInfo:
		// InitComplete is a sentinel the client watches for; ErrorInfo is
		// rendered client-side as a transient notification (spec §6
		// Application). Neither touches server-side state.
	}
}

// handleActions resolves the side effects AdvanceIndex/SetIndex could not
// perform inline — picking a real song for a Random buffer slot, committing
// a Shuffle reshuffle — by re-entering Apply, exactly as the Rust source's
// handle_actions re-enters apply_command (queue.rs::handle_actions).
func handleActions(st *State, b *Broadcaster, actions []queue.Action) {
	for _, a := range actions {
		switch a.Kind {
		case queue.ActionAddRandomSong:
			id, ok := randomSongID(st.Store)
			if !ok {
				continue
			}
			Apply(st, b, QueueAdd(a.Path, queue.NewSong(id)))
		case queue.ActionSetShuffle:
			Apply(st, b, QueueSetShuffle(a.Path, a.ShuffleMap, a.ShuffleNext))
		}
	}
}

// randomSongID picks a uniformly random existing song id (spec §4.3
// AddRandomSong: "chooses one existing song uniformly at random").
func randomSongID(store *catalog.Store) (catalog.SongID, bool) {
	songs := store.Songs()
	if len(songs) == 0 {
		return 0, false
	}
	n := rand.Intn(len(songs))
	i := 0
	for id := range songs {
		if i == n {
			return id, true
		}
		i++
	}
	return 0, false
}
