// Package codec implements the length-prefixed little-endian binary framing
// used for snapshots and for every frame on the main and get TCP channels.
//
// The contract is uniform: every encodable type provides ToBytes(io.Writer)
// and a matching FromBytes(io.Reader) free function. Primitives are
// fixed-width little-endian; text is u64-length-prefixed UTF-8; optional
// values are a discriminant byte followed by the value; sequences, deques and
// mappings are u64-length-prefixed runs of elements.
package codec

import (
	"encoding/binary"
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Writer is satisfied by anything ToBytes can serialize to.
type Writer = io.Writer

// Reader is satisfied by anything FromBytes can deserialize from.
type Reader = io.Reader

// maxLen bounds length-prefixed reads so a corrupt or hostile prefix can't
// force an unbounded allocation before the "exceeds remaining input" check
// has a chance to run against real data.
const maxLen = 1 << 32

func WriteUint8(w Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return errors.Wrap(err, "write uint8")
}

func ReadUint8(r Reader) (uint8, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, errors.Wrap(err, "read uint8")
	}
	return b[0], nil
}

func WriteUint32(w Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return errors.Wrap(err, "write uint32")
}

func ReadUint32(r Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, errors.Wrap(err, "read uint32")
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func WriteUint64(w Writer, v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return errors.Wrap(err, "write uint64")
}

func ReadUint64(r Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, errors.Wrap(err, "read uint64")
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func WriteInt64(w Writer, v int64) error {
	return WriteUint64(w, uint64(v))
}

func ReadInt64(r Reader) (int64, error) {
	v, err := ReadUint64(r)
	return int64(v), err
}

func WriteBool(w Writer, v bool) error {
	if v {
		return WriteUint8(w, 1)
	}
	return WriteUint8(w, 0)
}

func ReadBool(r Reader) (bool, error) {
	v, err := ReadUint8(r)
	return v != 0, err
}

// WriteLen writes a sequence/deque/mapping/text length prefix.
func WriteLen(w Writer, n int) error {
	return WriteUint64(w, uint64(n))
}

// ReadLen reads and bounds-checks a length prefix.
func ReadLen(r Reader) (int, error) {
	n, err := ReadUint64(r)
	if err != nil {
		return 0, err
	}
	if n > maxLen {
		return 0, errors.Errorf("length %d exceeds maximum of %d", n, maxLen)
	}
	return int(n), nil
}

func WriteText(w Writer, s string) error {
	if err := WriteLen(w, len(s)); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return errors.Wrap(err, "write text bytes")
}

func ReadText(r Reader) (string, error) {
	n, err := ReadLen(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", errors.Wrap(err, "read text bytes")
	}
	if !utf8.Valid(buf) {
		return "", errors.New("text is not valid utf-8")
	}
	return string(buf), nil
}

// WriteOptionalPresence writes the discriminant byte for optional<T>.
func WriteOptionalPresence(w Writer, present bool) error {
	return WriteBool(w, present)
}

// ReadOptionalPresence reads the discriminant byte for optional<T>.
func ReadOptionalPresence(r Reader) (bool, error) {
	return ReadBool(r)
}
