package queue

import (
	"github.com/pkg/errors"

	"gitlab.com/musicdb/musicdb/src/internal/catalog"
	"gitlab.com/musicdb/musicdb/src/internal/codec"
)

// Wire tags (spec §4.3): bit patterns chosen so a handful of bit flips still
// lands on "unknown" rather than silently aliasing another variant.
const (
	tagSong    byte = 0xFF
	tagFolder  byte = 0x00
	tagLoop    byte = 0xC0
	tagRandom  byte = 0x30
	tagShuffle byte = 0x0C
)

func writeUsize(w codec.Writer, v int) error { return codec.WriteUint64(w, uint64(v)) }

func readUsize(r codec.Reader) (int, error) {
	v, err := codec.ReadUint64(r)
	return int(v), err
}

// ToBytes writes the enabled byte followed by the content encoding.
func (q Queue) ToBytes(w codec.Writer) error {
	enabled := byte(0x00)
	if q.Enabled {
		enabled = 0xFF
	}
	if err := codec.WriteUint8(w, enabled); err != nil {
		return err
	}
	return q.contentToBytes(w)
}

func (q Queue) contentToBytes(w codec.Writer) error {
	switch q.Kind {
	case KindSong:
		if err := codec.WriteUint8(w, tagSong); err != nil {
			return err
		}
		return codec.WriteUint64(w, uint64(q.Song))
	case KindFolder:
		if err := codec.WriteUint8(w, tagFolder); err != nil {
			return err
		}
		if err := writeUsize(w, q.FolderIndex); err != nil {
			return err
		}
		if err := codec.WriteSequence(w, q.FolderItems, encodeQueue); err != nil {
			return err
		}
		return codec.WriteText(w, q.FolderName)
	case KindLoop:
		if err := codec.WriteUint8(w, tagLoop); err != nil {
			return err
		}
		if err := writeUsize(w, q.LoopTotal); err != nil {
			return err
		}
		if err := writeUsize(w, q.LoopCurrent); err != nil {
			return err
		}
		return q.LoopInner.ToBytes(w)
	case KindRandom:
		if err := codec.WriteUint8(w, tagRandom); err != nil {
			return err
		}
		return codec.WriteSequence(w, q.RandomItems, encodeQueue)
	case KindShuffle:
		if err := codec.WriteUint8(w, tagShuffle); err != nil {
			return err
		}
		if err := writeUsize(w, q.ShuffleCurrent); err != nil {
			return err
		}
		if err := codec.WriteSequence(w, q.ShuffleMap, func(w codec.Writer, v int) error { return writeUsize(w, v) }); err != nil {
			return err
		}
		if err := codec.WriteSequence(w, q.ShuffleElems, encodeQueue); err != nil {
			return err
		}
		return writeUsize(w, q.ShuffleNext)
	default:
		return errors.Errorf("queue: unknown content kind %d", q.Kind)
	}
}

func encodeQueue(w codec.Writer, q Queue) error { return q.ToBytes(w) }

func decodeQueue(r codec.Reader) (Queue, error) { return FromBytes(r) }

// FromBytes reads the enabled byte and content (spec §4.3, §4.1
// "count_ones() >= 4" rule for tolerating bit flips in the enabled flag).
func FromBytes(r codec.Reader) (Queue, error) {
	b, err := codec.ReadUint8(r)
	if err != nil {
		return Queue{}, err
	}
	q, err := contentFromBytes(r)
	if err != nil {
		return Queue{}, err
	}
	q.Enabled = countOnes(b) >= 4
	return q, nil
}

func countOnes(b byte) int {
	n := 0
	for b != 0 {
		n += int(b & 1)
		b >>= 1
	}
	return n
}

func contentFromBytes(r codec.Reader) (Queue, error) {
	tag, err := codec.ReadUint8(r)
	if err != nil {
		return Queue{}, err
	}
	switch tag {
	case tagSong:
		id, err := codec.ReadUint64(r)
		if err != nil {
			return Queue{}, errors.Wrap(err, "read queue song id")
		}
		return Queue{Kind: KindSong, Song: catalog.SongID(id)}, nil
	case tagFolder:
		index, err := readUsize(r)
		if err != nil {
			return Queue{}, errors.Wrap(err, "read folder index")
		}
		items, err := codec.ReadSequence[Queue](r, decodeQueue)
		if err != nil {
			return Queue{}, errors.Wrap(err, "read folder items")
		}
		name, err := codec.ReadText(r)
		if err != nil {
			return Queue{}, errors.Wrap(err, "read folder name")
		}
		return Queue{Kind: KindFolder, FolderIndex: index, FolderItems: items, FolderName: name}, nil
	case tagLoop:
		total, err := readUsize(r)
		if err != nil {
			return Queue{}, errors.Wrap(err, "read loop total")
		}
		current, err := readUsize(r)
		if err != nil {
			return Queue{}, errors.Wrap(err, "read loop current")
		}
		inner, err := FromBytes(r)
		if err != nil {
			return Queue{}, errors.Wrap(err, "read loop inner")
		}
		return Queue{Kind: KindLoop, LoopTotal: total, LoopCurrent: current, LoopInner: &inner}, nil
	case tagRandom:
		items, err := codec.ReadSequence[Queue](r, decodeQueue)
		if err != nil {
			return Queue{}, errors.Wrap(err, "read random items")
		}
		return Queue{Kind: KindRandom, RandomItems: items}, nil
	case tagShuffle:
		current, err := readUsize(r)
		if err != nil {
			return Queue{}, errors.Wrap(err, "read shuffle current")
		}
		m, err := codec.ReadSequence[int](r, func(r codec.Reader) (int, error) { return readUsize(r) })
		if err != nil {
			return Queue{}, errors.Wrap(err, "read shuffle map")
		}
		elems, err := codec.ReadSequence[Queue](r, decodeQueue)
		if err != nil {
			return Queue{}, errors.Wrap(err, "read shuffle elems")
		}
		next, err := readUsize(r)
		if err != nil {
			return Queue{}, errors.Wrap(err, "read shuffle next")
		}
		return Queue{Kind: KindShuffle, ShuffleCurrent: current, ShuffleMap: m, ShuffleElems: elems, ShuffleNext: next}, nil
	default:
		return Queue{Kind: KindFolder, FolderName: "<invalid byte received>"}, nil
	}
}
