package catalog

import (
	"sync"

	l "github.com/sirupsen/logrus"
)

var log *l.Entry = l.WithFields(l.Fields{"cmp": "catalog"})

// Store owns the four id-keyed mappings and the library root path (spec §3
// Ownership & lifecycle, §4.2 Catalog store). The zero value is not usable;
// construct with NewStore.
//
// Mutex is the single coarse lock spec §5 describes as guarding "the entire
// catalog+queue" — internal/hub takes this same lock around command.Apply,
// and the cache manager and watcher take it before reading the store or the
// queue, so it is exported rather than private.
type Store struct {
	Mutex sync.Mutex

	libraryRoot string

	artists map[ArtistID]Artist
	albums  map[AlbumID]Album
	songs   map[SongID]Song
	covers  map[CoverID]Cover
}

// NewStore creates an empty store rooted at libraryRoot.
func NewStore(libraryRoot string) *Store {
	return &Store{
		libraryRoot: libraryRoot,
		artists:     make(map[ArtistID]Artist),
		albums:      make(map[AlbumID]Album),
		songs:       make(map[SongID]Song),
		covers:      make(map[CoverID]Cover),
	}
}

// LibraryRoot returns the directory every Song/Cover Location is relative to.
func (s *Store) LibraryRoot() string { return s.libraryRoot }

// SetLibraryRoot updates the library root (spec command SetLibraryDirectory).
func (s *Store) SetLibraryRoot(root string) { s.libraryRoot = root }

// Artist looks up an artist by id.
func (s *Store) Artist(id ArtistID) (Artist, bool) { a, ok := s.artists[id]; return a, ok }

// Album looks up an album by id.
func (s *Store) Album(id AlbumID) (Album, bool) { a, ok := s.albums[id]; return a, ok }

// Song looks up a song by id.
func (s *Store) Song(id SongID) (Song, bool) { sg, ok := s.songs[id]; return sg, ok }

// Cover looks up a cover by id.
func (s *Store) Cover(id CoverID) (Cover, bool) { c, ok := s.covers[id]; return c, ok }

// Artists returns the live artist mapping. Callers must hold Mutex for
// anything beyond a single read.
func (s *Store) Artists() map[ArtistID]Artist { return s.artists }

// Albums returns the live album mapping.
func (s *Store) Albums() map[AlbumID]Album { return s.albums }

// Songs returns the live song mapping.
func (s *Store) Songs() map[SongID]Song { return s.songs }

// Covers returns the live cover mapping.
func (s *Store) Covers() map[CoverID]Cover { return s.covers }

// nextArtistID scans from 0 for the first unused slot (spec §3 Identifiers).
func nextArtistID(m map[ArtistID]Artist) ArtistID {
	raw := make(map[uint64]struct{}, len(m))
	for id := range m {
		raw[uint64(id)] = struct{}{}
	}
	for id := uint64(0); ; id++ {
		if _, used := raw[id]; !used {
			return ArtistID(id)
		}
		if id == ^uint64(0) {
			log.Fatal("catalog: artist id space exhausted")
		}
	}
}

func nextAlbumID(m map[AlbumID]Album) AlbumID {
	for id := AlbumID(0); ; id++ {
		if _, used := m[id]; !used {
			return id
		}
	}
}

func nextSongID(m map[SongID]Song) SongID {
	for id := SongID(0); ; id++ {
		if _, used := m[id]; !used {
			return id
		}
	}
}

func nextCoverID(m map[CoverID]Cover) CoverID {
	for id := CoverID(0); ; id++ {
		if _, used := m[id]; !used {
			return id
		}
	}
}

// AddArtistNew assigns the lowest unused ArtistID, overriding artist.ID, and
// inserts it (spec §4.2 add_artist_new).
func (s *Store) AddArtistNew(artist Artist) ArtistID {
	id := nextArtistID(s.artists)
	artist.ID = id
	s.artists[id] = artist
	return id
}

// AddAlbumNew assigns the lowest unused AlbumID and inserts it, additionally
// appending the new id to the owning artist's Albums list if that artist
// exists (silently dropping the link otherwise, per spec §4.2).
func (s *Store) AddAlbumNew(album Album) AlbumID {
	id := nextAlbumID(s.albums)
	album.ID = id
	s.albums[id] = album
	if artist, ok := s.artists[album.Artist]; ok {
		artist.Albums = append(artist.Albums, id)
		s.artists[album.Artist] = artist
	}
	return id
}

// AddSongNew assigns the lowest unused SongID and inserts it. If Album is
// set and exists, the id is appended to that album's Songs; else if Artist
// exists, it is appended to that artist's Singles (spec §4.2 add_song_new).
func (s *Store) AddSongNew(song Song) SongID {
	id := nextSongID(s.songs)
	song.ID = id
	if song.Cache == nil {
		song.Cache = NewPayloadCache()
	}
	s.songs[id] = song

	if song.Album != nil {
		if album, ok := s.albums[*song.Album]; ok {
			album.Songs = append(album.Songs, id)
			s.albums[*song.Album] = album
			return id
		}
	}
	if artist, ok := s.artists[song.Artist]; ok {
		artist.Singles = append(artist.Singles, id)
		s.artists[song.Artist] = artist
	}
	return id
}

// AddCoverNew assigns the lowest unused CoverID and inserts it.
func (s *Store) AddCoverNew(cover Cover) CoverID {
	id := nextCoverID(s.covers)
	cover.ID = id
	s.covers[id] = cover
	return id
}

// UpdateSong replaces the song with song.ID, returning the previous value.
// It does not touch parent-child links (spec §4.2).
func (s *Store) UpdateSong(song Song) (Song, bool) {
	prev, ok := s.songs[song.ID]
	if !ok {
		return Song{}, false
	}
	if song.Cache == nil {
		song.Cache = prev.Cache
	}
	s.songs[song.ID] = song
	return prev, true
}

// UpdateAlbum replaces the album with album.ID, returning the previous value.
func (s *Store) UpdateAlbum(album Album) (Album, bool) {
	prev, ok := s.albums[album.ID]
	if !ok {
		return Album{}, false
	}
	s.albums[album.ID] = album
	return prev, true
}

// UpdateArtist replaces the artist with artist.ID, returning the previous
// value.
func (s *Store) UpdateArtist(artist Artist) (Artist, bool) {
	prev, ok := s.artists[artist.ID]
	if !ok {
		return Artist{}, false
	}
	s.artists[artist.ID] = artist
	return prev, true
}

// RemoveSong removes a song from the mapping. Dangling references from
// albums/artists/the queue are intentionally left in place (spec §4.2).
func (s *Store) RemoveSong(id SongID) (Song, bool) {
	prev, ok := s.songs[id]
	if ok {
		delete(s.songs, id)
	}
	return prev, ok
}

// RemoveAlbum removes an album from the mapping.
func (s *Store) RemoveAlbum(id AlbumID) (Album, bool) {
	prev, ok := s.albums[id]
	if ok {
		delete(s.albums, id)
	}
	return prev, ok
}

// RemoveArtist removes an artist from the mapping.
func (s *Store) RemoveArtist(id ArtistID) (Artist, bool) {
	prev, ok := s.artists[id]
	if ok {
		delete(s.artists, id)
	}
	return prev, ok
}

// Sync replaces all three catalog mappings wholesale (spec command
// SyncDatabase / Database::sync).
func (s *Store) Sync(artists []Artist, albums []Album, songs []Song) {
	newArtists := make(map[ArtistID]Artist, len(artists))
	for _, a := range artists {
		newArtists[a.ID] = a
	}
	newAlbums := make(map[AlbumID]Album, len(albums))
	for _, a := range albums {
		newAlbums[a.ID] = a
	}
	newSongs := make(map[SongID]Song, len(songs))
	for _, sg := range songs {
		if sg.Cache == nil {
			sg.Cache = NewPayloadCache()
		}
		newSongs[sg.ID] = sg
	}
	s.artists = newArtists
	s.albums = newAlbums
	s.songs = newSongs
}
