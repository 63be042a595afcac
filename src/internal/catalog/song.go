package catalog

import "gitlab.com/musicdb/musicdb/src/internal/codec"

// Location is a path relative to the catalog's library root (spec §3 Song,
// "location: relative path under library root").
type Location struct {
	RelPath string
}

func (l Location) ToBytes(w codec.Writer) error { return codec.WriteText(w, l.RelPath) }

func LocationFromBytes(r codec.Reader) (Location, error) {
	s, err := codec.ReadText(r)
	return Location{RelPath: s}, err
}

// Song is one song in the catalog (spec §3 Song).
//
// Invariant: Album != nil implies Artist == catalog's Albums[*Album].Artist.
// Cache is never part of the wire format or the snapshot (spec §4.6: it is
// transient per-process state, rebuilt from Empty on load/sync).
type Song struct {
	ID             SongID
	Location       Location
	Title          string
	Album          *AlbumID
	Artist         ArtistID
	MoreArtists    []ArtistID
	Cover          *CoverID
	FileSize       uint64
	DurationMillis uint64
	General        GeneralData
	Cache          *PayloadCache
}

// NewSong builds a Song with a fresh, empty payload cache. The id is
// assigned by the store on AddSongNew.
func NewSong(location Location, title string, album *AlbumID, artist ArtistID, moreArtists []ArtistID, cover *CoverID) Song {
	return Song{
		Location:    location,
		Title:       title,
		Album:       album,
		Artist:      artist,
		MoreArtists: moreArtists,
		Cover:       cover,
		Cache:       NewPayloadCache(),
	}
}

func (s Song) Clone() Song {
	clone := s
	clone.MoreArtists = append([]ArtistID(nil), s.MoreArtists...)
	if s.Album != nil {
		v := *s.Album
		clone.Album = &v
	}
	if s.Cover != nil {
		v := *s.Cover
		clone.Cover = &v
	}
	clone.General.Tags = append([]string(nil), s.General.Tags...)
	return clone
}

func (s Song) ToBytes(w codec.Writer) error {
	if err := encodeSongID(w, s.ID); err != nil {
		return err
	}
	if err := s.Location.ToBytes(w); err != nil {
		return err
	}
	if err := codec.WriteText(w, s.Title); err != nil {
		return err
	}
	if err := codec.WriteOptional(w, s.Album, encodeAlbumID); err != nil {
		return err
	}
	if err := encodeArtistID(w, s.Artist); err != nil {
		return err
	}
	if err := codec.WriteSequence(w, s.MoreArtists, encodeArtistID); err != nil {
		return err
	}
	if err := codec.WriteOptional(w, s.Cover, encodeCoverID); err != nil {
		return err
	}
	if err := codec.WriteUint64(w, s.FileSize); err != nil {
		return err
	}
	if err := codec.WriteUint64(w, s.DurationMillis); err != nil {
		return err
	}
	return s.General.ToBytes(w)
}

func SongFromBytes(r codec.Reader) (Song, error) {
	var s Song
	var err error
	if s.ID, err = decodeSongID(r); err != nil {
		return Song{}, err
	}
	if s.Location, err = LocationFromBytes(r); err != nil {
		return Song{}, err
	}
	if s.Title, err = codec.ReadText(r); err != nil {
		return Song{}, err
	}
	if s.Album, err = codec.ReadOptional[AlbumID](r, decodeAlbumID); err != nil {
		return Song{}, err
	}
	if s.Artist, err = decodeArtistID(r); err != nil {
		return Song{}, err
	}
	if s.MoreArtists, err = codec.ReadSequence[ArtistID](r, decodeArtistID); err != nil {
		return Song{}, err
	}
	if s.Cover, err = codec.ReadOptional[CoverID](r, decodeCoverID); err != nil {
		return Song{}, err
	}
	if s.FileSize, err = codec.ReadUint64(r); err != nil {
		return Song{}, err
	}
	if s.DurationMillis, err = codec.ReadUint64(r); err != nil {
		return Song{}, err
	}
	if s.General, err = GeneralDataFromBytes(r); err != nil {
		return Song{}, err
	}
	s.Cache = NewPayloadCache()
	return s, nil
}
