package main

import (
	"os"
	"path/filepath"
	"strings"
)

// findMP3s walks root and returns every file whose extension is ".mp3", as
// the full paths produced by the walk (root joined with the relative part).
// The teacher's tracksFromDir
// (internal/content/updater.go) walks via gitlab.com/mipimipi/go-utils/file,
// but that package's Find signature isn't recoverable from the retrieved
// reference files (depth/filter semantics are ambiguous from the one call
// site seen), so this uses filepath.WalkDir directly rather than guess at an
// unverifiable API.
func findMP3s(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) != ".mp3" {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// imageExts are the cover-art file extensions get_cover recognises
// (musicdb-filldb/src/main.rs's get_cover).
var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// largestImageIn returns the path of the largest image file directly inside
// dir, and whether a strictly-larger candidate ever replaced an earlier one
// (the same "more than one cover option" signal musicdb-filldb/src/main.rs's
// get_cover emits — it only flags "multiple" on a replacement, not merely on
// a second, smaller file being seen).
func largestImageIn(dir string) (path string, multiple bool, found bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, false
	}
	var bestSize int64 = -1
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if !found || info.Size() > bestSize {
			if found {
				multiple = true
			}
			bestSize = info.Size()
			path = filepath.Join(dir, e.Name())
			found = true
		}
	}
	return path, multiple, found
}
