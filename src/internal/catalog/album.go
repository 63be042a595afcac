package catalog

import "gitlab.com/musicdb/musicdb/src/internal/codec"

// Album is one album in the catalog (spec §3 Album).
//
// Invariant: Songs all reference Songs with Album == Id.
type Album struct {
	ID      AlbumID
	Artist  ArtistID
	Name    string
	Cover   *CoverID
	Songs   []SongID
	General GeneralData
}

func (a Album) Clone() Album {
	clone := a
	clone.Songs = append([]SongID(nil), a.Songs...)
	if a.Cover != nil {
		c := *a.Cover
		clone.Cover = &c
	}
	clone.General.Tags = append([]string(nil), a.General.Tags...)
	return clone
}

func (a Album) ToBytes(w codec.Writer) error {
	if err := encodeAlbumID(w, a.ID); err != nil {
		return err
	}
	if err := encodeArtistID(w, a.Artist); err != nil {
		return err
	}
	if err := codec.WriteText(w, a.Name); err != nil {
		return err
	}
	if err := codec.WriteOptional(w, a.Cover, encodeCoverID); err != nil {
		return err
	}
	if err := codec.WriteSequence(w, a.Songs, encodeSongID); err != nil {
		return err
	}
	return a.General.ToBytes(w)
}

func AlbumFromBytes(r codec.Reader) (Album, error) {
	var a Album
	var err error
	if a.ID, err = decodeAlbumID(r); err != nil {
		return Album{}, err
	}
	if a.Artist, err = decodeArtistID(r); err != nil {
		return Album{}, err
	}
	if a.Name, err = codec.ReadText(r); err != nil {
		return Album{}, err
	}
	if a.Cover, err = codec.ReadOptional[CoverID](r, decodeCoverID); err != nil {
		return Album{}, err
	}
	if a.Songs, err = codec.ReadSequence[SongID](r, decodeSongID); err != nil {
		return Album{}, err
	}
	if a.General, err = GeneralDataFromBytes(r); err != nil {
		return Album{}, err
	}
	return a, nil
}
