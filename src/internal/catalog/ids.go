// Package catalog owns the artist/album/song/cover entity graph (spec §3)
// and the mutation primitives of the catalog store (spec §4.2).
package catalog

import (
	"strconv"

	"gitlab.com/musicdb/musicdb/src/internal/codec"
)

// ArtistID, AlbumID, SongID and CoverID are allocated by the store by
// scanning from 0 for the first unused slot in the owning mapping.
type (
	ArtistID uint64
	AlbumID  uint64
	SongID   uint64
	CoverID  uint64
)

func encodeArtistID(w codec.Writer, v ArtistID) error { return codec.WriteUint64(w, uint64(v)) }
func decodeArtistID(r codec.Reader) (ArtistID, error) {
	v, err := codec.ReadUint64(r)
	return ArtistID(v), err
}

func encodeAlbumID(w codec.Writer, v AlbumID) error { return codec.WriteUint64(w, uint64(v)) }
func decodeAlbumID(r codec.Reader) (AlbumID, error) {
	v, err := codec.ReadUint64(r)
	return AlbumID(v), err
}

func encodeSongID(w codec.Writer, v SongID) error { return codec.WriteUint64(w, uint64(v)) }
func decodeSongID(r codec.Reader) (SongID, error) {
	v, err := codec.ReadUint64(r)
	return SongID(v), err
}

func encodeCoverID(w codec.Writer, v CoverID) error { return codec.WriteUint64(w, uint64(v)) }
func decodeCoverID(r codec.Reader) (CoverID, error) {
	v, err := codec.ReadUint64(r)
	return CoverID(v), err
}

// SongIDFromString parses a decimal song id as sent over the get channel
// (spec §4.6 "song-file\n<SongId>").
func SongIDFromString(s string) (SongID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return SongID(v), err
}

// CoverIDFromString parses a decimal cover id as sent over the get channel
// (spec §4.6 "cover-bytes\n<CoverId>").
func CoverIDFromString(s string) (CoverID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return CoverID(v), err
}
