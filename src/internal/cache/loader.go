package cache

import (
	"os"
	"path/filepath"

	l "github.com/sirupsen/logrus"

	"gitlab.com/musicdb/musicdb/src/internal/catalog"
)

var log *l.Entry = l.WithFields(l.Fields{"cmp": "cache"})

// songLoader builds the loader closure catalog.PayloadCache.StartLoad/
// BytesWait expects for a song stored on local disk (spec §4.6: "reads the
// file ... and transitions to Ready or Failed", song.rs::load_data's local
// branch).
func songLoader(store *catalog.Store, song catalog.Song) func() ([]byte, bool) {
	path := filepath.Join(store.LibraryRoot(), song.Location.RelPath)
	return func() ([]byte, bool) {
		log.WithFields(l.Fields{"path": path}).Debug("loading song from disk")
		data, err := os.ReadFile(path)
		if err != nil {
			log.WithError(err).Warnf("could not load song %q", path)
			return nil, false
		}
		return data, true
	}
}

// coverLoader reads cover from disk and normalizes it (decode/resize/
// re-encode as JPEG) before it enters the cache, so every served cover is a
// bounded-size JPEG regardless of the source file's format or dimensions.
func coverLoader(store *catalog.Store, cover catalog.Cover) func() ([]byte, bool) {
	path := filepath.Join(store.LibraryRoot(), cover.Location.RelPath)
	return func() ([]byte, bool) {
		log.WithFields(l.Fields{"path": path}).Debug("loading cover from disk")
		raw, err := os.ReadFile(path)
		if err != nil {
			log.WithError(err).Warnf("could not load cover %q", path)
			return nil, false
		}
		normalized, err := normalizeCover(raw)
		if err != nil {
			log.WithError(err).Warnf("could not normalize cover %q", path)
			return nil, false
		}
		return normalized, true
	}
}

// StartCachingSong transitions song's cache Empty→Loading (spec
// cache_data_start_thread). A no-op if a load is already in flight or bytes
// are already cached.
func StartCachingSong(store *catalog.Store, song catalog.Song) bool {
	if song.Cache == nil {
		return false
	}
	return song.Cache.StartLoad(songLoader(store, song))
}

// SongBytes returns song's cached bytes without blocking (spec
// cached_data).
func SongBytes(song catalog.Song) ([]byte, bool) {
	if song.Cache == nil {
		return nil, false
	}
	return song.Cache.Bytes()
}

// SongBytesWait returns song's bytes, performing or awaiting a load if
// necessary (spec cached_data_now).
func SongBytesWait(store *catalog.Store, song catalog.Song) ([]byte, bool) {
	if song.Cache == nil {
		return nil, false
	}
	return song.Cache.BytesWait(songLoader(store, song))
}
