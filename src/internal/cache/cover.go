package cache

import (
	"bytes"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// coverImgSize bounds normalized cover art to coverImgSize x coverImgSize
// pixels (spec §4.6 cache manager serves normalized cover bytes).
const coverImgSize = 300

// normalizeCover decodes raw cover bytes, resizes to coverImgSize on the
// longer side and re-encodes as JPEG. Grounded on the teacher's
// pictures.add (internal/content/object.go): decode → resize with
// imaging.Box → encode as JPEG.
func normalizeCover(raw []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "could not decode cover picture")
	}
	if b := img.Bounds(); b.Dy() > b.Dx() {
		img = imaging.Resize(img, 0, coverImgSize, imaging.Box)
	} else {
		img = imaging.Resize(img, coverImgSize, 0, imaging.Box)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG); err != nil {
		return nil, errors.Wrap(err, "could not encode resized cover picture")
	}
	return buf.Bytes(), nil
}
