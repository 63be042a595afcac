package codec

import "github.com/pkg/errors"

// EncodeFunc serializes a single value of T.
type EncodeFunc[T any] func(Writer, T) error

// DecodeFunc deserializes a single value of T.
type DecodeFunc[T any] func(Reader) (T, error)

// WriteSequence writes a sequence<T> (also used for deque<T>): a u64 length
// followed by that many encoded elements.
func WriteSequence[T any](w Writer, xs []T, enc EncodeFunc[T]) error {
	if err := WriteLen(w, len(xs)); err != nil {
		return err
	}
	for i, x := range xs {
		if err := enc(w, x); err != nil {
			return errors.Wrapf(err, "write sequence element %d", i)
		}
	}
	return nil
}

// ReadSequence reads a sequence<T>/deque<T>.
func ReadSequence[T any](r Reader, dec DecodeFunc[T]) ([]T, error) {
	n, err := ReadLen(r)
	if err != nil {
		return nil, err
	}
	xs := make([]T, 0, n)
	for i := 0; i < n; i++ {
		x, err := dec(r)
		if err != nil {
			return nil, errors.Wrapf(err, "read sequence element %d", i)
		}
		xs = append(xs, x)
	}
	return xs, nil
}

// WriteMapping writes a mapping<K,V>: a u64 length followed by that many
// K,V pairs.
func WriteMapping[K comparable, V any](w Writer, m map[K]V, encK EncodeFunc[K], encV EncodeFunc[V]) error {
	if err := WriteLen(w, len(m)); err != nil {
		return err
	}
	for k, v := range m {
		if err := encK(w, k); err != nil {
			return errors.Wrap(err, "write mapping key")
		}
		if err := encV(w, v); err != nil {
			return errors.Wrap(err, "write mapping value")
		}
	}
	return nil
}

// ReadMapping reads a mapping<K,V>.
func ReadMapping[K comparable, V any](r Reader, decK DecodeFunc[K], decV DecodeFunc[V]) (map[K]V, error) {
	n, err := ReadLen(r)
	if err != nil {
		return nil, err
	}
	m := make(map[K]V, n)
	for i := 0; i < n; i++ {
		k, err := decK(r)
		if err != nil {
			return nil, errors.Wrapf(err, "read mapping key %d", i)
		}
		v, err := decV(r)
		if err != nil {
			return nil, errors.Wrapf(err, "read mapping value %d", i)
		}
		m[k] = v
	}
	return m, nil
}

// WriteOptional writes an optional<T> using the codec §4.1 contract: a
// discriminant byte followed by T if present.
func WriteOptional[T any](w Writer, v *T, enc EncodeFunc[T]) error {
	if v == nil {
		return WriteOptionalPresence(w, false)
	}
	if err := WriteOptionalPresence(w, true); err != nil {
		return err
	}
	return enc(w, *v)
}

// ReadOptional reads an optional<T>.
func ReadOptional[T any](r Reader, dec DecodeFunc[T]) (*T, error) {
	present, err := ReadOptionalPresence(r)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	v, err := dec(r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
