package catalog

import (
	utils "gitlab.com/mipimipi/go-utils"

	"gitlab.com/musicdb/musicdb/src/internal/codec"
)

// Cover is one cover-art file reference (spec §3 Cover). Its bytes are
// loaded on demand by internal/cache and are never part of the snapshot.
type Cover struct {
	ID       CoverID
	Location Location
}

func (c Cover) ToBytes(w codec.Writer) error {
	if err := encodeCoverID(w, c.ID); err != nil {
		return err
	}
	return c.Location.ToBytes(w)
}

// HashCoverKey derives a stable dedup key from a cover file's raw bytes, the
// same way the teacher hashes picture bytes to dedup embedded cover art
// (internal/content/object.go's pictures.add: utils.HashUint64("%x", picture)).
// Callers (cmd/musicdb-filldb) use this to recognise the same cover
// appearing under multiple directories before calling AddCoverNew again.
func HashCoverKey(data []byte) uint64 {
	return utils.HashUint64("%x", data)
}

func CoverFromBytes(r codec.Reader) (Cover, error) {
	var c Cover
	var err error
	if c.ID, err = decodeCoverID(r); err != nil {
		return Cover{}, err
	}
	if c.Location, err = LocationFromBytes(r); err != nil {
		return Cover{}, err
	}
	return c, nil
}
