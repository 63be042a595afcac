package cache

import (
	"bufio"
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gitlab.com/musicdb/musicdb/src/internal/catalog"
	"gitlab.com/musicdb/musicdb/src/internal/queue"
)

func TestEncodeDecodeLineRoundTrip(t *testing.T) {
	for _, s := range []string{
		"plain text",
		"a\\b",
		"line1\nline2",
		"carriage\rreturn",
		"mix\\of\nall\rthree",
	} {
		require.Equal(t, s, DecodeLine(EncodeLine(s)))
	}
}

func TestDecodeLineTrailingBackslash(t *testing.T) {
	require.Equal(t, "abc", DecodeLine(`abc\`))
}

func TestDecodeLineUnknownEscape(t *testing.T) {
	require.Equal(t, "ax", DecodeLine(`a\x`))
}

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestNormalizeCoverResizesAndReencodesAsJPEG(t *testing.T) {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 600, 400))
	require.NoError(t, png.Encode(&buf, img))

	out, err := normalizeCover(buf.Bytes())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	// JPEG magic bytes.
	require.Equal(t, []byte{0xFF, 0xD8, 0xFF}, out[:3])
}

func TestSongLoaderReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "track.mp3"), []byte("audio-bytes"), 0o644))

	store := catalog.NewStore(dir)
	song := catalog.NewSong(catalog.Location{RelPath: "track.mp3"}, "Title", nil, 0, nil, nil)
	song.ID = store.AddSongNew(song)
	song, _ = store.Song(song.ID)

	require.True(t, StartCachingSong(store, song))
	data, ok := SongBytesWait(store, song)
	require.True(t, ok)
	require.Equal(t, "audio-bytes", string(data))
}

func TestSongLoaderFailsOnMissingFile(t *testing.T) {
	dir := t.TempDir()
	store := catalog.NewStore(dir)
	song := catalog.NewSong(catalog.Location{RelPath: "missing.mp3"}, "Title", nil, 0, nil, nil)
	song.ID = store.AddSongNew(song)
	song, _ = store.Song(song.ID)

	_, ok := SongBytesWait(store, song)
	require.False(t, ok)
}

func TestCoverCacheStartAndWait(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "cover.png"), 500, 500)

	store := catalog.NewStore(dir)
	coverID := store.AddCoverNew(catalog.Cover{Location: catalog.Location{RelPath: "cover.png"}})
	cover, _ := store.Cover(coverID)

	covers := NewCoverCache()
	require.True(t, covers.StartCachingCover(store, cover))
	data, ok := covers.CoverBytesWait(store, cover)
	require.True(t, ok)
	require.Equal(t, []byte{0xFF, 0xD8, 0xFF}, data[:3])

	cached, ok := covers.CoverBytes(coverID)
	require.True(t, ok)
	require.Equal(t, data, cached)

	require.True(t, covers.Evict(coverID))
	_, ok = covers.CoverBytes(coverID)
	require.False(t, ok)
}

func newTestHandler(t *testing.T) (*Handler, *catalog.Store, catalog.Song, catalog.Cover) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "track.mp3"), []byte("audio-bytes"), 0o644))
	writeTestPNG(t, filepath.Join(dir, "cover.png"), 100, 100)

	customDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(customDir, "readme.txt"), []byte("hello custom"), 0o644))

	store := catalog.NewStore(dir)
	song := catalog.NewSong(catalog.Location{RelPath: "track.mp3"}, "Title", nil, 0, nil, nil)
	song.ID = store.AddSongNew(song)
	song, _ = store.Song(song.ID)

	coverID := store.AddCoverNew(catalog.Cover{Location: catalog.Location{RelPath: "cover.png"}})
	cover, _ := store.Cover(coverID)

	return NewHandler(store, NewCoverCache(), customDir), store, song, cover
}

func doRequest(t *testing.T, server, client net.Conn, request string) (string, []byte) {
	t.Helper()
	_, err := client.Write([]byte(EncodeLine(request) + "\n"))
	require.NoError(t, err)

	r := bufio.NewReader(client)
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	line = strings.TrimRight(line, "\n")

	if !strings.HasPrefix(line, "len: ") {
		return line, nil
	}
	var n int
	_, err = fscanLen(line, &n)
	require.NoError(t, err)
	buf := make([]byte, n)
	_, err = readFull(r, buf)
	require.NoError(t, err)
	return line, buf
}

func fscanLen(line string, n *int) (int, error) {
	rest := strings.TrimPrefix(line, "len: ")
	v := 0
	for _, ch := range rest {
		if ch < '0' || ch > '9' {
			break
		}
		v = v*10 + int(ch-'0')
	}
	*n = v
	return v, nil
}

func readFull(r *bufio.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func TestHandlerSongFile(t *testing.T) {
	h, _, song, _ := newTestHandler(t)
	server, client := net.Pipe()
	defer client.Close()
	go h.Handle(context.Background(), server)

	line, data := doRequest(t, server, client, VerbSongFile+"\n"+itoa(uint64(song.ID)))
	require.True(t, strings.HasPrefix(line, "len: "))
	require.Equal(t, "audio-bytes", string(data))
}

func TestHandlerCoverBytes(t *testing.T) {
	h, _, _, cover := newTestHandler(t)
	server, client := net.Pipe()
	defer client.Close()
	go h.Handle(context.Background(), server)

	line, data := doRequest(t, server, client, VerbCoverBytes+"\n"+itoa(uint64(cover.ID)))
	require.True(t, strings.HasPrefix(line, "len: "))
	require.Equal(t, []byte{0xFF, 0xD8, 0xFF}, data[:3])
}

func TestHandlerCoverBytesNoCover(t *testing.T) {
	h, _, _, _ := newTestHandler(t)
	server, client := net.Pipe()
	defer client.Close()
	go h.Handle(context.Background(), server)

	line, _ := doRequest(t, server, client, VerbCoverBytes+"\n9999")
	require.Equal(t, "no cover", line)
}

func TestHandlerCustomFile(t *testing.T) {
	h, _, _, _ := newTestHandler(t)
	server, client := net.Pipe()
	defer client.Close()
	go h.Handle(context.Background(), server)

	line, data := doRequest(t, server, client, VerbCustomFile+"\nreadme.txt")
	require.True(t, strings.HasPrefix(line, "len: "))
	require.Equal(t, "hello custom", string(data))
}

func TestHandlerCustomFileRejectsPathEscape(t *testing.T) {
	h, _, _, _ := newTestHandler(t)
	server, client := net.Pipe()
	defer client.Close()
	go h.Handle(context.Background(), server)

	line, _ := doRequest(t, server, client, VerbCustomFile+"\n../../etc/passwd")
	require.Equal(t, "no data", line)
}

func TestLookaheadSongIDsFollowsCursor(t *testing.T) {
	q := queue.NewFolder("root", []queue.Queue{
		queue.NewSong(1),
		queue.NewSong(2),
		queue.NewSong(3),
	})

	ids := lookaheadSongIDs(&q, 2)
	require.Equal(t, []catalog.SongID{1, 2}, ids)
}

func TestLookaheadSongIDsDoesNotMutateLiveQueue(t *testing.T) {
	q := queue.NewFolder("root", []queue.Queue{
		queue.NewSong(1),
		queue.NewSong(2),
	})

	_ = lookaheadSongIDs(&q, 2)
	cur, ok := q.GetCurrentSong()
	require.True(t, ok)
	require.Equal(t, catalog.SongID(1), cur)
}

func TestManagerTickEvictsOutsideLookaheadWindow(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.mp3"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.mp3"), []byte("b"), 0o644))

	store := catalog.NewStore(dir)
	songA := catalog.NewSong(catalog.Location{RelPath: "a.mp3"}, "A", nil, 0, nil, nil)
	idA := store.AddSongNew(songA)
	songB := catalog.NewSong(catalog.Location{RelPath: "b.mp3"}, "B", nil, 0, nil, nil)
	idB := store.AddSongNew(songB)

	songA, _ = store.Song(idA)
	songB, _ = store.Song(idB)
	require.True(t, songA.Cache.StartLoad(func() ([]byte, bool) { return []byte("cached-a"), true }))
	require.True(t, songB.Cache.StartLoad(func() ([]byte, bool) { return []byte("cached-b"), true }))
	waitReady(t, songA.Cache)
	waitReady(t, songB.Cache)

	q := queue.NewFolder("root", []queue.Queue{queue.NewSong(idA), queue.NewSong(idB)})
	mgr := NewManager(store, &q, NewCoverCache(), 1000, 2000, 1)
	mgr.Probe = func() (uint64, error) { return 0, nil } // below MinMiB: triggers eviction

	mgr.tick()

	_, ok := songA.Cache.Bytes()
	require.True(t, ok, "song in lookahead window must stay cached")
	_, ok = songB.Cache.Bytes()
	require.False(t, ok, "song outside lookahead window must be evicted")
}

func waitReady(t *testing.T, pc *catalog.PayloadCache) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		if pc.IsReady() {
			return
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for cache to become ready")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
