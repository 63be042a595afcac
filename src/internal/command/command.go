// Package command implements the tagged command log (spec §4.4): a single
// Command struct tagged by Kind, a wire codec, and Apply, which broadcasts a
// command to subscribers before mutating local state so every observer
// (including the node applying it) sees commands in the same order.
package command

import (
	"gitlab.com/musicdb/musicdb/src/internal/catalog"
	"gitlab.com/musicdb/musicdb/src/internal/queue"
)

// Kind discriminates the Command variants. Values are this module's own
// sequential wire tags: the kept original_source/ files never show the
// Rust Command enum's own to_bytes (only queue.rs's bit-patterned tags are
// given verbatim), so there is no prior tag layout to preserve here.
type Kind uint8

const (
	KindResume Kind = iota
	KindPause
	KindStop
	KindNextSong
	KindSave
	KindInitComplete
	KindSyncDatabase
	KindQueueUpdate
	KindQueueAdd
	KindQueueInsert
	KindQueueRemove
	KindQueueGoto
	KindQueueSetShuffle
	KindAddSong
	KindAddAlbum
	KindAddArtist
	KindAddCover
	KindModifySong
	KindModifyAlbum
	KindModifyArtist
	KindRemoveSong
	KindRemoveAlbum
	KindRemoveArtist
	KindSetSongDuration
	KindSetLibraryDirectory
	KindErrorInfo
)

// Command is a flat, struct-tagged union over every spec §4.4 variant. Only
// the fields relevant to Kind are populated; this follows the same shape as
// internal/queue.Queue, for the same reason (Go has no sum types, and the
// variant set here is closed and spec-defined).
type Command struct {
	Kind Kind

	// SyncDatabase
	SyncArtists []catalog.Artist
	SyncAlbums  []catalog.Album
	SyncSongs   []catalog.Song

	// QueueUpdate / QueueAdd / QueueInsert / QueueRemove / QueueGoto /
	// QueueSetShuffle all carry a path.
	Path []int

	// QueueUpdate / QueueAdd / QueueInsert
	Queue queue.Queue

	// QueueInsert
	Pos int

	// QueueSetShuffle
	ShuffleMap  []int
	ShuffleNext int

	// AddSong / ModifySong
	Song catalog.Song
	// AddAlbum / ModifyAlbum
	Album catalog.Album
	// AddArtist / ModifyArtist
	Artist catalog.Artist
	// AddCover
	Cover catalog.Cover

	// RemoveSong / SetSongDuration
	SongID catalog.SongID
	// RemoveAlbum
	AlbumID catalog.AlbumID
	// RemoveArtist
	ArtistID catalog.ArtistID

	// SetSongDuration
	DurationMillis uint64

	// SetLibraryDirectory
	LibraryDirectory string

	// ErrorInfo
	ErrorTitle  string
	ErrorDetail string
}

func Resume() Command       { return Command{Kind: KindResume} }
func Pause() Command        { return Command{Kind: KindPause} }
func Stop() Command         { return Command{Kind: KindStop} }
func NextSong() Command     { return Command{Kind: KindNextSong} }
func Save() Command         { return Command{Kind: KindSave} }
func InitComplete() Command { return Command{Kind: KindInitComplete} }

func SyncDatabase(artists []catalog.Artist, albums []catalog.Album, songs []catalog.Song) Command {
	return Command{Kind: KindSyncDatabase, SyncArtists: artists, SyncAlbums: albums, SyncSongs: songs}
}

func QueueUpdate(path []int, q queue.Queue) Command {
	return Command{Kind: KindQueueUpdate, Path: path, Queue: q}
}

func QueueAdd(path []int, q queue.Queue) Command {
	return Command{Kind: KindQueueAdd, Path: path, Queue: q}
}

func QueueInsert(path []int, pos int, q queue.Queue) Command {
	return Command{Kind: KindQueueInsert, Path: path, Pos: pos, Queue: q}
}

func QueueRemove(path []int) Command { return Command{Kind: KindQueueRemove, Path: path} }

func QueueGoto(path []int) Command { return Command{Kind: KindQueueGoto, Path: path} }

func QueueSetShuffle(path []int, m []int, next int) Command {
	return Command{Kind: KindQueueSetShuffle, Path: path, ShuffleMap: m, ShuffleNext: next}
}

func AddSong(s catalog.Song) Command   { return Command{Kind: KindAddSong, Song: s} }
func AddAlbum(a catalog.Album) Command { return Command{Kind: KindAddAlbum, Album: a} }

func AddArtist(a catalog.Artist) Command { return Command{Kind: KindAddArtist, Artist: a} }
func AddCover(c catalog.Cover) Command   { return Command{Kind: KindAddCover, Cover: c} }

func ModifySong(s catalog.Song) Command   { return Command{Kind: KindModifySong, Song: s} }
func ModifyAlbum(a catalog.Album) Command { return Command{Kind: KindModifyAlbum, Album: a} }

func ModifyArtist(a catalog.Artist) Command { return Command{Kind: KindModifyArtist, Artist: a} }

func RemoveSong(id catalog.SongID) Command     { return Command{Kind: KindRemoveSong, SongID: id} }
func RemoveAlbum(id catalog.AlbumID) Command   { return Command{Kind: KindRemoveAlbum, AlbumID: id} }
func RemoveArtist(id catalog.ArtistID) Command { return Command{Kind: KindRemoveArtist, ArtistID: id} }

func SetSongDuration(id catalog.SongID, ms uint64) Command {
	return Command{Kind: KindSetSongDuration, SongID: id, DurationMillis: ms}
}

func SetLibraryDirectory(dir string) Command {
	return Command{Kind: KindSetLibraryDirectory, LibraryDirectory: dir}
}

func ErrorInfo(title, detail string) Command {
	return Command{Kind: KindErrorInfo, ErrorTitle: title, ErrorDetail: detail}
}
