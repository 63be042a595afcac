package catalog

import "gitlab.com/musicdb/musicdb/src/internal/codec"

// Artist is one artist in the catalog (spec §3 Artist).
//
// Invariant: every id in Albums resolves to an Album whose Artist == Id;
// every id in Singles resolves to a Song whose Album is absent and whose
// Artist == Id. The store maintains this invariant on Add*New; it is not
// re-checked on Update*/Remove*, which intentionally leave dangling links
// for the caller to clean up (spec §4.2).
type Artist struct {
	ID      ArtistID
	Name    string
	Cover   *CoverID
	Albums  []AlbumID
	Singles []SongID
	General GeneralData
}

func (a Artist) Clone() Artist {
	clone := a
	clone.Albums = append([]AlbumID(nil), a.Albums...)
	clone.Singles = append([]SongID(nil), a.Singles...)
	if a.Cover != nil {
		c := *a.Cover
		clone.Cover = &c
	}
	clone.General.Tags = append([]string(nil), a.General.Tags...)
	return clone
}

func (a Artist) ToBytes(w codec.Writer) error {
	if err := encodeArtistID(w, a.ID); err != nil {
		return err
	}
	if err := codec.WriteText(w, a.Name); err != nil {
		return err
	}
	if err := codec.WriteOptional(w, a.Cover, encodeCoverID); err != nil {
		return err
	}
	if err := codec.WriteSequence(w, a.Albums, encodeAlbumID); err != nil {
		return err
	}
	if err := codec.WriteSequence(w, a.Singles, encodeSongID); err != nil {
		return err
	}
	return a.General.ToBytes(w)
}

func ArtistFromBytes(r codec.Reader) (Artist, error) {
	var a Artist
	var err error
	if a.ID, err = decodeArtistID(r); err != nil {
		return Artist{}, err
	}
	if a.Name, err = codec.ReadText(r); err != nil {
		return Artist{}, err
	}
	if a.Cover, err = codec.ReadOptional[CoverID](r, decodeCoverID); err != nil {
		return Artist{}, err
	}
	if a.Albums, err = codec.ReadSequence[AlbumID](r, decodeAlbumID); err != nil {
		return Artist{}, err
	}
	if a.Singles, err = codec.ReadSequence[SongID](r, decodeSongID); err != nil {
		return Artist{}, err
	}
	if a.General, err = GeneralDataFromBytes(r); err != nil {
		return Artist{}, err
	}
	return a, nil
}
