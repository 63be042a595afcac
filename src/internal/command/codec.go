package command

import (
	"github.com/pkg/errors"

	"gitlab.com/musicdb/musicdb/src/internal/catalog"
	"gitlab.com/musicdb/musicdb/src/internal/codec"
	"gitlab.com/musicdb/musicdb/src/internal/queue"
)

func writePath(w codec.Writer, path []int) error {
	return codec.WriteSequence(w, path, func(w codec.Writer, v int) error { return codec.WriteUint64(w, uint64(v)) })
}

func readPath(r codec.Reader) ([]int, error) {
	return codec.ReadSequence[int](r, func(r codec.Reader) (int, error) {
		v, err := codec.ReadUint64(r)
		return int(v), err
	})
}

func encodeArtist(w codec.Writer, a catalog.Artist) error { return a.ToBytes(w) }
func encodeAlbum(w codec.Writer, a catalog.Album) error   { return a.ToBytes(w) }
func encodeSong(w codec.Writer, s catalog.Song) error     { return s.ToBytes(w) }

// ToBytes writes the command's Kind tag followed by its payload (spec §4.1,
// §4.4).
func (c Command) ToBytes(w codec.Writer) error {
	if err := codec.WriteUint8(w, uint8(c.Kind)); err != nil {
		return err
	}
	switch c.Kind {
	case KindResume, KindPause, KindStop, KindNextSong, KindSave, KindInitComplete:
		return nil
	case KindSyncDatabase:
		if err := codec.WriteSequence(w, c.SyncArtists, encodeArtist); err != nil {
			return err
		}
		if err := codec.WriteSequence(w, c.SyncAlbums, encodeAlbum); err != nil {
			return err
		}
		return codec.WriteSequence(w, c.SyncSongs, encodeSong)
	case KindQueueUpdate, KindQueueAdd:
		if err := writePath(w, c.Path); err != nil {
			return err
		}
		return c.Queue.ToBytes(w)
	case KindQueueInsert:
		if err := writePath(w, c.Path); err != nil {
			return err
		}
		if err := codec.WriteUint64(w, uint64(c.Pos)); err != nil {
			return err
		}
		return c.Queue.ToBytes(w)
	case KindQueueRemove, KindQueueGoto:
		return writePath(w, c.Path)
	case KindQueueSetShuffle:
		if err := writePath(w, c.Path); err != nil {
			return err
		}
		if err := codec.WriteSequence(w, c.ShuffleMap, func(w codec.Writer, v int) error { return codec.WriteUint64(w, uint64(v)) }); err != nil {
			return err
		}
		return codec.WriteUint64(w, uint64(c.ShuffleNext))
	case KindAddSong, KindModifySong:
		return c.Song.ToBytes(w)
	case KindAddAlbum, KindModifyAlbum:
		return c.Album.ToBytes(w)
	case KindAddArtist, KindModifyArtist:
		return c.Artist.ToBytes(w)
	case KindAddCover:
		return c.Cover.ToBytes(w)
	case KindRemoveSong:
		return codec.WriteUint64(w, uint64(c.SongID))
	case KindRemoveAlbum:
		return codec.WriteUint64(w, uint64(c.AlbumID))
	case KindRemoveArtist:
		return codec.WriteUint64(w, uint64(c.ArtistID))
	case KindSetSongDuration:
		if err := codec.WriteUint64(w, uint64(c.SongID)); err != nil {
			return err
		}
		return codec.WriteUint64(w, c.DurationMillis)
	case KindSetLibraryDirectory:
		return codec.WriteText(w, c.LibraryDirectory)
	case KindErrorInfo:
		if err := codec.WriteText(w, c.ErrorTitle); err != nil {
			return err
		}
		return codec.WriteText(w, c.ErrorDetail)
	default:
		return errors.Errorf("command: unknown kind %d", c.Kind)
	}
}

// FromBytes reads one Command frame.
func FromBytes(r codec.Reader) (Command, error) {
	tag, err := codec.ReadUint8(r)
	if err != nil {
		return Command{}, err
	}
	c := Command{Kind: Kind(tag)}
	switch c.Kind {
	case KindResume, KindPause, KindStop, KindNextSong, KindSave, KindInitComplete:
		return c, nil
	case KindSyncDatabase:
		if c.SyncArtists, err = codec.ReadSequence[catalog.Artist](r, catalog.ArtistFromBytes); err != nil {
			return Command{}, errors.Wrap(err, "read sync artists")
		}
		if c.SyncAlbums, err = codec.ReadSequence[catalog.Album](r, catalog.AlbumFromBytes); err != nil {
			return Command{}, errors.Wrap(err, "read sync albums")
		}
		if c.SyncSongs, err = codec.ReadSequence[catalog.Song](r, catalog.SongFromBytes); err != nil {
			return Command{}, errors.Wrap(err, "read sync songs")
		}
		return c, nil
	case KindQueueUpdate, KindQueueAdd:
		if c.Path, err = readPath(r); err != nil {
			return Command{}, err
		}
		if c.Queue, err = queue.FromBytes(r); err != nil {
			return Command{}, err
		}
		return c, nil
	case KindQueueInsert:
		if c.Path, err = readPath(r); err != nil {
			return Command{}, err
		}
		pos, err := codec.ReadUint64(r)
		if err != nil {
			return Command{}, err
		}
		c.Pos = int(pos)
		if c.Queue, err = queue.FromBytes(r); err != nil {
			return Command{}, err
		}
		return c, nil
	case KindQueueRemove, KindQueueGoto:
		if c.Path, err = readPath(r); err != nil {
			return Command{}, err
		}
		return c, nil
	case KindQueueSetShuffle:
		if c.Path, err = readPath(r); err != nil {
			return Command{}, err
		}
		if c.ShuffleMap, err = codec.ReadSequence[int](r, func(r codec.Reader) (int, error) {
			v, err := codec.ReadUint64(r)
			return int(v), err
		}); err != nil {
			return Command{}, err
		}
		next, err := codec.ReadUint64(r)
		if err != nil {
			return Command{}, err
		}
		c.ShuffleNext = int(next)
		return c, nil
	case KindAddSong, KindModifySong:
		if c.Song, err = catalog.SongFromBytes(r); err != nil {
			return Command{}, err
		}
		return c, nil
	case KindAddAlbum, KindModifyAlbum:
		if c.Album, err = catalog.AlbumFromBytes(r); err != nil {
			return Command{}, err
		}
		return c, nil
	case KindAddArtist, KindModifyArtist:
		if c.Artist, err = catalog.ArtistFromBytes(r); err != nil {
			return Command{}, err
		}
		return c, nil
	case KindAddCover:
		if c.Cover, err = catalog.CoverFromBytes(r); err != nil {
			return Command{}, err
		}
		return c, nil
	case KindRemoveSong:
		v, err := codec.ReadUint64(r)
		if err != nil {
			return Command{}, err
		}
		c.SongID = catalog.SongID(v)
		return c, nil
	case KindRemoveAlbum:
		v, err := codec.ReadUint64(r)
		if err != nil {
			return Command{}, err
		}
		c.AlbumID = catalog.AlbumID(v)
		return c, nil
	case KindRemoveArtist:
		v, err := codec.ReadUint64(r)
		if err != nil {
			return Command{}, err
		}
		c.ArtistID = catalog.ArtistID(v)
		return c, nil
	case KindSetSongDuration:
		v, err := codec.ReadUint64(r)
		if err != nil {
			return Command{}, err
		}
		c.SongID = catalog.SongID(v)
		if c.DurationMillis, err = codec.ReadUint64(r); err != nil {
			return Command{}, err
		}
		return c, nil
	case KindSetLibraryDirectory:
		if c.LibraryDirectory, err = codec.ReadText(r); err != nil {
			return Command{}, err
		}
		return c, nil
	case KindErrorInfo:
		if c.ErrorTitle, err = codec.ReadText(r); err != nil {
			return Command{}, err
		}
		if c.ErrorDetail, err = codec.ReadText(r); err != nil {
			return Command{}, err
		}
		return c, nil
	default:
		return Command{}, errors.Errorf("command: unrecognised kind byte %d", tag)
	}
}
