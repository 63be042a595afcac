package command

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/musicdb/musicdb/src/internal/catalog"
	"gitlab.com/musicdb/musicdb/src/internal/queue"
)

func TestCodecRoundTripSimple(t *testing.T) {
	for _, c := range []Command{Resume(), Pause(), Stop(), NextSong(), Save(), InitComplete()} {
		var buf bytes.Buffer
		require.NoError(t, c.ToBytes(&buf))
		got, err := FromBytes(&buf)
		require.NoError(t, err)
		require.Equal(t, c.Kind, got.Kind)
	}
}

func TestCodecRoundTripSetLibraryDirectory(t *testing.T) {
	c := SetLibraryDirectory("/music")
	var buf bytes.Buffer
	require.NoError(t, c.ToBytes(&buf))
	got, err := FromBytes(&buf)
	require.NoError(t, err)
	require.Equal(t, "/music", got.LibraryDirectory)
}

func TestCodecRoundTripErrorInfo(t *testing.T) {
	c := ErrorInfo("disconnected", "lost contact with server")
	var buf bytes.Buffer
	require.NoError(t, c.ToBytes(&buf))
	got, err := FromBytes(&buf)
	require.NoError(t, err)
	require.Equal(t, "disconnected", got.ErrorTitle)
	require.Equal(t, "lost contact with server", got.ErrorDetail)
}

func TestCodecRoundTripQueueAdd(t *testing.T) {
	c := QueueAdd([]int{0, 1}, queue.NewSong(42))
	var buf bytes.Buffer
	require.NoError(t, c.ToBytes(&buf))
	got, err := FromBytes(&buf)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, got.Path)
	require.Equal(t, catalog.SongID(42), got.Queue.Song)
}

func TestCodecRoundTripAddSong(t *testing.T) {
	song := catalog.NewSong(catalog.Location{RelPath: "a.flac"}, "Title", nil, 1, nil, nil)
	song.ID = 5
	c := AddSong(song)
	var buf bytes.Buffer
	require.NoError(t, c.ToBytes(&buf))
	got, err := FromBytes(&buf)
	require.NoError(t, err)
	require.Equal(t, "Title", got.Song.Title)
	require.Equal(t, catalog.SongID(5), got.Song.ID)
}

func newTestState() (*State, *queue.Queue, *bool) {
	store := catalog.NewStore("/music")
	q := queue.NewFolder("root", nil)
	playing := false
	return &State{Store: store, Queue: &q, Playing: &playing}, &q, &playing
}

func TestApplyBroadcastsBeforeMutating(t *testing.T) {
	st, _, playing := newTestState()
	b := NewBroadcaster()

	var seen []Kind
	b.SubscribeCallback(func(c Command) {
		// the callback observes *playing exactly as it stood immediately
		// before the local mutation, proving broadcast happens first.
		seen = append(seen, c.Kind)
		require.False(t, *playing)
	})

	Apply(st, b, Resume())
	require.True(t, *playing)
	require.Equal(t, []Kind{KindResume}, seen)
}

func TestApplyResumePauseStop(t *testing.T) {
	st, _, playing := newTestState()
	b := NewBroadcaster()

	Apply(st, b, Resume())
	require.True(t, *playing)
	Apply(st, b, Pause())
	require.False(t, *playing)
	Apply(st, b, Resume())
	Apply(st, b, Stop())
	require.False(t, *playing)
}

func TestApplySaveNoopWithoutSnapshotPath(t *testing.T) {
	st, _, _ := newTestState()
	b := NewBroadcaster()
	require.NotPanics(t, func() { Apply(st, b, Save()) })
}

func TestApplyAddSongAndModify(t *testing.T) {
	st, _, _ := newTestState()
	b := NewBroadcaster()

	artist := catalog.Artist{Name: "Artist"}
	Apply(st, b, AddArtist(artist))
	var artistID catalog.ArtistID
	for id := range st.Store.Artists() {
		artistID = id
	}

	song := catalog.NewSong(catalog.Location{RelPath: "a.flac"}, "Title", nil, artistID, nil, nil)
	Apply(st, b, AddSong(song))

	var songID catalog.SongID
	for id := range st.Store.Songs() {
		songID = id
	}
	stored, ok := st.Store.Song(songID)
	require.True(t, ok)
	require.Equal(t, "Title", stored.Title)

	stored.Title = "New Title"
	Apply(st, b, ModifySong(stored))
	stored, ok = st.Store.Song(songID)
	require.True(t, ok)
	require.Equal(t, "New Title", stored.Title)
}

func TestApplyQueueAddAndGoto(t *testing.T) {
	st, q, _ := newTestState()
	b := NewBroadcaster()

	Apply(st, b, QueueAdd(nil, queue.NewSong(1)))
	Apply(st, b, QueueAdd(nil, queue.NewSong(2)))
	require.Equal(t, 2, q.Len())

	cur, ok := q.GetCurrentSong()
	require.True(t, ok)
	require.Equal(t, catalog.SongID(1), cur)

	Apply(st, b, QueueGoto([]int{1}))
	cur, ok = q.GetCurrentSong()
	require.True(t, ok)
	require.Equal(t, catalog.SongID(2), cur)
}

func TestApplyNextSongAdvancesRandomAndTopsUpBuffer(t *testing.T) {
	st, q, _ := newTestState()
	b := NewBroadcaster()

	artist := catalog.Artist{Name: "Artist"}
	Apply(st, b, AddArtist(artist))
	var artistID catalog.ArtistID
	for id := range st.Store.Artists() {
		artistID = id
	}
	for i := 0; i < 3; i++ {
		Apply(st, b, AddSong(catalog.NewSong(catalog.Location{RelPath: "a.flac"}, "t", nil, artistID, nil, nil)))
	}

	*q = queue.NewRandom()
	var actions []queue.Action
	q.Init(nil, &actions)
	handleActions(st, b, actions)
	require.Len(t, q.RandomItems, 2, "init must top the random buffer up to the floor of 2")

	Apply(st, b, NextSong())
	require.Len(t, q.RandomItems, 2, "advancing pops the oldest slot and the AddRandomSong action refills it")
}
