package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/spf13/cobra"

	"gitlab.com/musicdb/musicdb/src/internal/catalog"
)

const unknownArtistName = "<unknown>"
const snapshotFilename = "dbfile"

// albumBucket tracks one artist's already-seen albums: the assigned id and
// the directory its songs live in, cleared to nil once a second, differing
// directory is seen (musicdb-filldb/src/main.rs's "album directory is
// inconsistent" case — the album then gets no cover).
type albumBucket struct {
	id  catalog.AlbumID
	dir string
	set bool // album.1 is Some(dir) in the original; set=false mirrors None
}

type artistBucket struct {
	id     catalog.ArtistID
	albums map[string]*albumBucket
}

func runFilldb(cmd *cobra.Command, args []string) error {
	libDir := args[0]

	fmt.Fprintf(os.Stderr, "finding files...\n")
	files, err := findMP3s(libDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "found %d files, reading metadata...\n", len(files))

	type scanned struct {
		path string
		size uint64
		meta tag.Metadata
	}
	var songs []scanned
	for i, path := range files {
		fmt.Fprintf(os.Stderr, "\r%d/%d", i+1, len(files))
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\ncouldn't stat file %q, skipping\n", path)
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\n[%s] error opening file: %v\n", path, err)
			continue
		}
		m, err := tag.ReadFrom(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "\n[%s] error reading id3 tag: %v\n", path, err)
			continue
		}
		songs = append(songs, scanned{path: path, size: uint64(info.Size()), meta: m})
	}
	fmt.Fprintf(os.Stderr, "\nloaded metadata of %d files.\n", len(songs))

	store := catalog.NewStore(libDir)
	unknownArtist := store.AddArtistNew(catalog.Artist{Name: unknownArtistName})

	fmt.Fprintf(os.Stderr, "searching for artists and adding songs...\n")
	artists := map[string]*artistBucket{}

	n := len(songs)
	prevPerc := -1
	for i, sg := range songs {
		if n > 0 {
			perc := i * 100 / n
			if perc != prevPerc {
				fmt.Fprintf(os.Stderr, "%2d%%\r", perc)
				prevPerc = perc
			}
		}

		var general catalog.GeneralData
		if year := sg.meta.Year(); year != 0 {
			general = general.With(fmt.Sprintf("Year=%d", year))
		}
		if genre := sg.meta.Genre(); strings.TrimSpace(genre) != "" {
			general = general.With(fmt.Sprintf("Genre=%s", genre))
		}

		artistName := strings.TrimSpace(sg.meta.AlbumArtist())
		if artistName == "" {
			artistName = strings.TrimSpace(sg.meta.Artist())
		}

		var artistID catalog.ArtistID
		var albumID *catalog.AlbumID

		if artistName != "" {
			bucket, ok := artists[artistName]
			if !ok {
				id := store.AddArtistNew(catalog.Artist{Name: artistName})
				bucket = &artistBucket{id: id, albums: map[string]*albumBucket{}}
				artists[artistName] = bucket
			}
			artistID = bucket.id

			albumName := strings.TrimSpace(sg.meta.Album())
			if albumName != "" {
				ab, ok := bucket.albums[albumName]
				if !ok {
					id := store.AddAlbumNew(catalog.Album{Artist: artistID, Name: albumName})
					dir := filepath.Dir(sg.path)
					ab = &albumBucket{id: id, dir: dir, set: true}
					bucket.albums[albumName] = ab
				} else if ab.set && ab.dir != filepath.Dir(sg.path) {
					ab.set = false
				}
				id := ab.id
				albumID = &id
			}
		} else {
			artistID = unknownArtist
		}

		relPath, err := filepath.Rel(libDir, sg.path)
		if err != nil {
			relPath = sg.path
		}

		title := strings.TrimSpace(sg.meta.Title())
		if title == "" {
			base := filepath.Base(sg.path)
			title = strings.TrimSuffix(base, filepath.Ext(base))
		}

		// dhowden/tag exposes ID3 frames only, not the audio stream itself,
		// so there is no library in reach here to decode actual playback
		// duration the way musicdb-filldb/src/main.rs's mp3_duration crate
		// does. SetSongDuration (spec command) is the sanctioned way to
		// patch this in later from something that can decode audio.
		if skipDuration {
			fmt.Fprintf(os.Stderr, "\nDuration of song %q not found in tags, using 0 instead!\n", sg.path)
		} else {
			fmt.Fprintf(os.Stderr, "\nDuration of song %q not found in tags and can't be determined from the file contents either. Using duration 0 instead.\n", sg.path)
		}

		store.AddSongNew(catalog.Song{
			Title:          title,
			Location:       catalog.Location{RelPath: relPath},
			Album:          albumID,
			Artist:         artistID,
			FileSize:       sg.size,
			DurationMillis: 0,
			General:        general,
		})
	}

	fmt.Fprintf(os.Stderr, "searching for covers...\n")
	var multipleCoverOptions []string
	singleImages := map[string]*catalog.CoverID{}
	coverByHash := map[uint64]catalog.CoverID{}

	addCover := func(absPath string) (catalog.CoverID, bool) {
		data, err := os.ReadFile(absPath)
		if err != nil {
			return 0, false
		}
		key := catalog.HashCoverKey(data)
		if id, ok := coverByHash[key]; ok {
			return id, true
		}
		rel, err := filepath.Rel(libDir, absPath)
		if err != nil {
			rel = absPath
		}
		id := store.AddCoverNew(catalog.Cover{Location: catalog.Location{RelPath: rel}})
		coverByHash[key] = id
		return id, true
	}

	getCover := func(dir string) (catalog.CoverID, bool) {
		path, multiple, found := largestImageIn(dir)
		if multiple {
			multipleCoverOptions = append(multipleCoverOptions, dir)
		}
		if !found {
			return 0, false
		}
		return addCover(path)
	}

	i1 := 0
	for _, bucket := range artists {
		i1++
		fmt.Fprintf(os.Stderr, "\rartist %d/%d", i1, len(artists))

		for _, ab := range bucket.albums {
			if !ab.set {
				continue
			}
			if id, ok := getCover(ab.dir); ok {
				album, _ := store.Album(ab.id)
				album.Cover = &id
				store.UpdateAlbum(album)
			}
		}

		artist, ok := store.Artist(bucket.id)
		if !ok {
			continue
		}
		for _, songID := range artist.Singles {
			song, ok := store.Song(songID)
			if !ok {
				continue
			}
			dir := filepath.Dir(filepath.Join(libDir, song.Location.RelPath))
			var coverID *catalog.CoverID
			if id, ok := singleImages[dir]; ok {
				coverID = id
			} else if id, ok := getCover(dir); ok {
				singleImages[dir] = &id
				coverID = &id
			}
			song.Cover = coverID
			store.UpdateSong(song)
		}
	}
	fmt.Fprintln(os.Stderr)

	if len(multipleCoverOptions) > 0 {
		fmt.Fprintln(os.Stderr, "> Found more than one cover in the following directories: ")
		for _, dir := range multipleCoverOptions {
			fmt.Fprintf(os.Stderr, ">> %s\n", dir)
		}
		fmt.Fprintln(os.Stderr, "> Default behavior is using the largest image file found.")
	}

	if uka, ok := store.Artist(unknownArtist); ok {
		if len(uka.Albums) == 0 && len(uka.Singles) == 0 {
			store.RemoveArtist(unknownArtist)
		} else {
			fmt.Fprintln(os.Stderr, "Added the <unknown> artist as a fallback!")
		}
	}

	fmt.Fprintln(os.Stderr, "saving dbfile...")
	// Written to the current directory, not under libDir: a server
	// instance's db_dir and lib_dir are independent (spec §6 CLI), and
	// musicdb-filldb/src/main.rs always saves to "./dbfile" regardless of
	// where the library lives — run it from the directory that will become
	// db_dir.
	if err := store.Save(snapshotFilename); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "done!")
	return nil
}
