package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAlbumNewLinksArtist(t *testing.T) {
	s := NewStore("/lib")
	artistID := s.AddArtistNew(Artist{Name: "Artist"})
	albumID := s.AddAlbumNew(Album{Artist: artistID, Name: "Album"})

	artist, ok := s.Artist(artistID)
	require.True(t, ok)
	assert.Equal(t, []AlbumID{albumID}, artist.Albums)
}

func TestAddSongNewLinksAlbumOverArtist(t *testing.T) {
	s := NewStore("/lib")
	artistID := s.AddArtistNew(Artist{Name: "Artist"})
	albumID := s.AddAlbumNew(Album{Artist: artistID, Name: "Album"})
	songID := s.AddSongNew(NewSong(Location{RelPath: "a.mp3"}, "Song", &albumID, artistID, nil, nil))

	album, ok := s.Album(albumID)
	require.True(t, ok)
	assert.Equal(t, []SongID{songID}, album.Songs)

	artist, ok := s.Artist(artistID)
	require.True(t, ok)
	assert.Empty(t, artist.Singles, "song belongs to an album, not a single")
}

func TestAddSongNewWithoutAlbumBecomesSingle(t *testing.T) {
	s := NewStore("/lib")
	artistID := s.AddArtistNew(Artist{Name: "Artist"})
	songID := s.AddSongNew(NewSong(Location{RelPath: "a.mp3"}, "Song", nil, artistID, nil, nil))

	artist, ok := s.Artist(artistID)
	require.True(t, ok)
	assert.Equal(t, []SongID{songID}, artist.Singles)
}

func TestAddSongNewDanglingArtistDropsLink(t *testing.T) {
	s := NewStore("/lib")
	songID := s.AddSongNew(NewSong(Location{RelPath: "a.mp3"}, "Song", nil, ArtistID(999), nil, nil))

	song, ok := s.Song(songID)
	require.True(t, ok)
	assert.Equal(t, ArtistID(999), song.Artist)
}

func TestRemoveArtistLeavesDanglingAlbumLink(t *testing.T) {
	s := NewStore("/lib")
	artistID := s.AddArtistNew(Artist{Name: "Artist"})
	albumID := s.AddAlbumNew(Album{Artist: artistID, Name: "Album"})

	_, ok := s.RemoveArtist(artistID)
	require.True(t, ok)

	album, ok := s.Album(albumID)
	require.True(t, ok)
	assert.Equal(t, artistID, album.Artist, "remove does not cascade or repair links")
}

func TestIDsAreReusedFromLowestUnusedSlot(t *testing.T) {
	s := NewStore("/lib")
	a1 := s.AddArtistNew(Artist{Name: "One"})
	a2 := s.AddArtistNew(Artist{Name: "Two"})
	s.RemoveArtist(a1)
	a3 := s.AddArtistNew(Artist{Name: "Three"})
	assert.Equal(t, a1, a3)
	assert.NotEqual(t, a2, a3)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStore("/lib")
	artistID := s.AddArtistNew(Artist{Name: "Artist"})
	albumID := s.AddAlbumNew(Album{Artist: artistID, Name: "Album"})
	coverID := s.AddCoverNew(Cover{Location: Location{RelPath: "cover.jpg"}})
	songID := s.AddSongNew(NewSong(Location{RelPath: "a.mp3"}, "Song", &albumID, artistID, nil, &coverID))

	path := filepath.Join(t.TempDir(), "dbfile")
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/lib", loaded.LibraryRoot())

	song, ok := loaded.Song(songID)
	require.True(t, ok)
	assert.Equal(t, "Song", song.Title)
	assert.Equal(t, coverID, *song.Cover)

	_, ok = loaded.Album(albumID)
	assert.True(t, ok)
}

func TestHashCoverKeyIsStableAndContentSensitive(t *testing.T) {
	a := HashCoverKey([]byte("same bytes"))
	b := HashCoverKey([]byte("same bytes"))
	c := HashCoverKey([]byte("different bytes"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGeneralDataGetAndHas(t *testing.T) {
	g := GeneralData{}.With("Genre=Rock").With("Explicit")
	v, ok := g.Get("Genre")
	require.True(t, ok)
	assert.Equal(t, "Rock", v)

	_, ok = g.Get("Explicit")
	assert.True(t, ok)
	assert.True(t, g.Has("Explicit"))
	assert.False(t, g.Has("Missing"))
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
