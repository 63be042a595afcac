package hub

import (
	"bufio"
	"context"
	"net"

	"gitlab.com/musicdb/musicdb/src/internal/catalog"
	"gitlab.com/musicdb/musicdb/src/internal/command"
)

// handleMain drives one "main" connection (spec §4.5): send the
// initialization sequence, register the connection as a broadcast
// subscriber, then read Command frames and feed them to command.Apply until
// the connection closes.
func (h *Hub) handleMain(ctx context.Context, conn net.Conn, r *bufio.Reader) {
	defer conn.Close()

	st := h.State
	st.Store.Mutex.Lock()
	if err := h.sendInitSequence(conn); err != nil {
		st.Store.Mutex.Unlock()
		log.WithError(err).Warn("failed to send init sequence")
		return
	}
	id := h.Broadcaster.SubscribeBytes(conn)
	st.Store.Mutex.Unlock()
	defer h.Broadcaster.Unsubscribe(id)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		cmd, err := command.FromBytes(r)
		if err != nil {
			log.WithError(err).Debug("main connection read failed, closing")
			return
		}

		st.Store.Mutex.Lock()
		command.Apply(st, h.Broadcaster, cmd)
		st.Store.Mutex.Unlock()
	}
}

// sendInitSequence writes SyncDatabase, QueueUpdate([], queue), Resume (if
// currently playing), SetLibraryDirectory and InitComplete directly to conn,
// before it is registered as a subscriber (spec §4.5 order). Caller holds
// Store.Mutex so the snapshot it sends is consistent.
func (h *Hub) sendInitSequence(conn net.Conn) error {
	st := h.State

	artistsMap := st.Store.Artists()
	artists := make([]catalog.Artist, 0, len(artistsMap))
	for _, a := range artistsMap {
		artists = append(artists, a)
	}
	albumsMap := st.Store.Albums()
	albums := make([]catalog.Album, 0, len(albumsMap))
	for _, a := range albumsMap {
		albums = append(albums, a)
	}
	songsMap := st.Store.Songs()
	songs := make([]catalog.Song, 0, len(songsMap))
	for _, s := range songsMap {
		songs = append(songs, s)
	}

	cmds := []command.Command{
		command.SyncDatabase(artists, albums, songs),
		command.QueueUpdate(nil, *st.Queue),
	}
	if *st.Playing {
		cmds = append(cmds, command.Resume())
	}
	cmds = append(cmds,
		command.SetLibraryDirectory(st.Store.LibraryRoot()),
		command.InitComplete(),
	)

	for _, c := range cmds {
		if err := c.ToBytes(conn); err != nil {
			return err
		}
	}
	return nil
}
