package catalog

import (
	"os"

	"github.com/pkg/errors"

	"gitlab.com/musicdb/musicdb/src/internal/codec"
)

// Snapshot layout (spec §6): library_root, then the artists/albums/songs/
// covers mappings in that order. A save is a full rewrite (truncate+write);
// there is no incremental log (spec Non-goals, GLOSSARY "Snapshot").

// Save writes a full snapshot to path, truncating any existing file.
func (s *Store) Save(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "cannot open %q for writing", path)
	}
	defer f.Close()

	if err := codec.WriteText(f, s.libraryRoot); err != nil {
		return errors.Wrap(err, "write library root")
	}
	if err := codec.WriteMapping(f, s.artists, encodeArtistID,
		func(w codec.Writer, a Artist) error { return a.ToBytes(w) }); err != nil {
		return errors.Wrap(err, "write artists")
	}
	if err := codec.WriteMapping(f, s.albums, encodeAlbumID,
		func(w codec.Writer, a Album) error { return a.ToBytes(w) }); err != nil {
		return errors.Wrap(err, "write albums")
	}
	if err := codec.WriteMapping(f, s.songs, encodeSongID,
		func(w codec.Writer, sg Song) error { return sg.ToBytes(w) }); err != nil {
		return errors.Wrap(err, "write songs")
	}
	if err := codec.WriteMapping(f, s.covers, encodeCoverID,
		func(w codec.Writer, c Cover) error { return c.ToBytes(w) }); err != nil {
		return errors.Wrap(err, "write covers")
	}
	return nil
}

// Load reads a full snapshot from path into a new Store.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %q for reading", path)
	}
	defer f.Close()

	libraryRoot, err := codec.ReadText(f)
	if err != nil {
		return nil, errors.Wrap(err, "read library root")
	}
	s := NewStore(libraryRoot)

	if s.artists, err = codec.ReadMapping[ArtistID, Artist](f, decodeArtistID, ArtistFromBytes); err != nil {
		return nil, errors.Wrap(err, "read artists")
	}
	if s.albums, err = codec.ReadMapping[AlbumID, Album](f, decodeAlbumID, AlbumFromBytes); err != nil {
		return nil, errors.Wrap(err, "read albums")
	}
	if s.songs, err = codec.ReadMapping[SongID, Song](f, decodeSongID, SongFromBytes); err != nil {
		return nil, errors.Wrap(err, "read songs")
	}
	for id, sg := range s.songs {
		if sg.Cache == nil {
			sg.Cache = NewPayloadCache()
			s.songs[id] = sg
		}
	}
	if s.covers, err = codec.ReadMapping[CoverID, Cover](f, decodeCoverID, CoverFromBytes); err != nil {
		return nil, errors.Wrap(err, "read covers")
	}
	return s, nil
}
