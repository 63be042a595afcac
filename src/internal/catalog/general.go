package catalog

import (
	"strings"

	"gitlab.com/musicdb/musicdb/src/internal/codec"
)

// GeneralData is the free-form "Key=Value" / "Key" tag bag carried by
// artists, albums and songs (spec §3 General tag bag). It is an unordered
// multiset: the same tag may appear more than once.
type GeneralData struct {
	Tags []string
}

// Get returns the value of the first tag with the given key, and whether it
// was found. A bare "Key" tag (no '=') matches with an empty value.
func (g GeneralData) Get(key string) (string, bool) {
	prefix := key + "="
	for _, t := range g.Tags {
		if t == key {
			return "", true
		}
		if strings.HasPrefix(t, prefix) {
			return t[len(prefix):], true
		}
	}
	return "", false
}

// Has reports whether the bare tag (or a Key=Value tag with that key)
// exists.
func (g GeneralData) Has(key string) bool {
	_, ok := g.Get(key)
	return ok
}

// With returns a copy of g with tag appended.
func (g GeneralData) With(tag string) GeneralData {
	tags := make([]string, len(g.Tags), len(g.Tags)+1)
	copy(tags, g.Tags)
	tags = append(tags, tag)
	return GeneralData{Tags: tags}
}

func (g GeneralData) ToBytes(w codec.Writer) error {
	return codec.WriteSequence(w, g.Tags, func(w codec.Writer, s string) error {
		return codec.WriteText(w, s)
	})
}

func GeneralDataFromBytes(r codec.Reader) (GeneralData, error) {
	tags, err := codec.ReadSequence[string](r, func(r codec.Reader) (string, error) {
		return codec.ReadText(r)
	})
	if err != nil {
		return GeneralData{}, err
	}
	return GeneralData{Tags: tags}, nil
}
