package queue

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/musicdb/musicdb/src/internal/catalog"
)

func TestLenFolder(t *testing.T) {
	q := NewFolder("root", []Queue{NewSong(1), NewSong(2), NewSong(3)})
	require.Equal(t, 3, q.Len())
}

func TestLenDisabled(t *testing.T) {
	q := NewSong(1)
	q.Enabled = false
	require.Equal(t, 0, q.Len())
}

func TestLenLoopFinite(t *testing.T) {
	q := NewLoop(3, NewFolder("", []Queue{NewSong(1), NewSong(2)}))
	require.Equal(t, 6, q.Len())
}

func TestLenLoopInfiniteIsLowerBound(t *testing.T) {
	q := NewLoop(0, NewFolder("", []Queue{NewSong(1), NewSong(2)}))
	require.True(t, q.IsInfinite())
	require.Equal(t, 2, q.Len())
}

func TestGetCurrentAndNextFolder(t *testing.T) {
	q := NewFolder("root", []Queue{NewSong(1), NewSong(2), NewSong(3)})
	cur, ok := q.GetCurrentSong()
	require.True(t, ok)
	require.Equal(t, catalog.SongID(1), cur)

	next, ok := q.GetNextSong()
	require.True(t, ok)
	require.Equal(t, catalog.SongID(2), next)
}

func TestAdvanceIndexFolderWraps(t *testing.T) {
	q := NewFolder("root", []Queue{NewSong(1), NewSong(2)})
	var actions []Action

	ok := q.AdvanceIndex(nil, &actions)
	require.True(t, ok)
	cur, _ := q.GetCurrentSong()
	require.Equal(t, catalog.SongID(2), cur)

	ok = q.AdvanceIndex(nil, &actions)
	require.False(t, ok, "advancing past the last element should report wraparound")
	require.Equal(t, 0, q.FolderIndex)
}

func TestAdvanceIndexLoopRepeats(t *testing.T) {
	q := NewLoop(2, NewSong(7))
	var actions []Action

	require.Equal(t, catalog.SongID(7), mustSong(t, q.LoopInner))
	ok := q.AdvanceIndex(nil, &actions)
	require.True(t, ok)
	require.Equal(t, 1, q.LoopCurrent)

	ok = q.AdvanceIndex(nil, &actions)
	require.False(t, ok)
	require.Equal(t, 0, q.LoopCurrent)
}

func TestInitRandomRequestsFloorOfTwo(t *testing.T) {
	q := NewRandom()
	var actions []Action
	q.Init(nil, &actions)
	require.Len(t, actions, 2)
	for _, a := range actions {
		require.Equal(t, ActionAddRandomSong, a.Kind)
	}
}

func TestAdvanceIndexRandomRequestsTopUp(t *testing.T) {
	q := Queue{Enabled: true, Kind: KindRandom, RandomItems: []Queue{NewSong(1), NewSong(2)}}
	var actions []Action
	ok := q.AdvanceIndex(nil, &actions)
	require.False(t, ok, "random never itself reports success; the caller replays AddRandomSong")
	require.Len(t, q.RandomItems, 1)
	require.Len(t, actions, 1)
	require.Equal(t, ActionAddRandomSong, actions[0].Kind)
}

func TestShuffleInitEmitsSetShuffleAction(t *testing.T) {
	q := NewShuffle([]Queue{NewSong(1), NewSong(2), NewSong(3)})
	var actions []Action
	q.Init(nil, &actions)
	require.Len(t, actions, 1)
	a := actions[0]
	require.Equal(t, ActionSetShuffle, a.Kind)
	require.Len(t, a.ShuffleMap, 3)
	seen := map[int]bool{}
	for _, v := range a.ShuffleMap {
		seen[v] = true
	}
	require.Len(t, seen, 3, "map must be a permutation with no duplicate indices")
}

func TestInsertShiftsFolderCursor(t *testing.T) {
	q := NewFolder("root", []Queue{NewSong(1), NewSong(2)})
	q.FolderIndex = 1
	ok := q.Insert(NewSong(9), 0)
	require.True(t, ok)
	require.Equal(t, 2, q.FolderIndex, "cursor shifts right when an element is inserted at or before it")
	require.Len(t, q.FolderItems, 3)
}

func TestRemoveByIndexRepairsFolderCursor(t *testing.T) {
	q := NewFolder("root", []Queue{NewSong(1), NewSong(2), NewSong(3)})
	q.FolderIndex = 2
	removed, ok := q.RemoveByIndex([]int{0}, 0)
	require.True(t, ok)
	require.Equal(t, catalog.SongID(1), removed.Song)
	require.Equal(t, 1, q.FolderIndex, "cursor decrements so it still points at the same element")
}

func TestAddAndInsertAtPath(t *testing.T) {
	q := NewFolder("root", []Queue{NewFolder("sub", nil)})
	idx, ok := q.AddAtPath([]int{0}, NewSong(42))
	require.True(t, ok)
	require.Equal(t, 0, idx)
	require.Equal(t, catalog.SongID(42), q.FolderItems[0].FolderItems[0].Song)

	require.True(t, q.InsertAtPath([]int{0, 0}, NewSong(7)))
	require.Equal(t, catalog.SongID(7), q.FolderItems[0].FolderItems[0].Song)
	require.Equal(t, catalog.SongID(42), q.FolderItems[0].FolderItems[1].Song)
}

func TestCodecRoundTripFolder(t *testing.T) {
	orig := NewFolder("root", []Queue{NewSong(1), NewSong(2)})
	orig.FolderIndex = 1

	var buf bytes.Buffer
	require.NoError(t, orig.ToBytes(&buf))

	got, err := FromBytes(&buf)
	require.NoError(t, err)
	require.Equal(t, orig.Enabled, got.Enabled)
	require.Equal(t, orig.FolderIndex, got.FolderIndex)
	require.Equal(t, orig.FolderName, got.FolderName)
	require.Len(t, got.FolderItems, 2)
	require.Equal(t, catalog.SongID(1), got.FolderItems[0].Song)
	require.Equal(t, catalog.SongID(2), got.FolderItems[1].Song)
}

func TestCodecRoundTripLoopAndShuffle(t *testing.T) {
	orig := NewLoop(5, NewShuffle([]Queue{NewSong(1), NewSong(2)}))

	var buf bytes.Buffer
	require.NoError(t, orig.ToBytes(&buf))

	got, err := FromBytes(&buf)
	require.NoError(t, err)
	require.Equal(t, KindLoop, got.Kind)
	require.Equal(t, 5, got.LoopTotal)
	require.Equal(t, KindShuffle, got.LoopInner.Kind)
	require.Equal(t, orig.LoopInner.ShuffleMap, got.LoopInner.ShuffleMap)
}

func TestCodecUnknownTagDecodesToEmptyFolder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, buf.WriteByte(0xFF)) // enabled
	require.NoError(t, buf.WriteByte(0x55)) // unrecognised content tag

	got, err := FromBytes(&buf)
	require.NoError(t, err)
	require.Equal(t, KindFolder, got.Kind)
	require.Equal(t, "<invalid byte received>", got.FolderName)
	require.Empty(t, got.FolderItems)
}

func TestCodecEnabledToleratesBitFlips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, buf.WriteByte(0b11110001)) // 5 bits set, still "enabled"
	require.NoError(t, buf.WriteByte(tagSong))
	require.NoError(t, writeUsizeHelper(&buf, 9))

	got, err := FromBytes(&buf)
	require.NoError(t, err)
	require.True(t, got.Enabled)
	require.Equal(t, catalog.SongID(9), got.Song)
}

func writeUsizeHelper(buf *bytes.Buffer, v uint64) error {
	for i := 0; i < 8; i++ {
		buf.WriteByte(byte(v >> (8 * i)))
	}
	return nil
}

func mustSong(t *testing.T, q *Queue) catalog.SongID {
	t.Helper()
	require.Equal(t, KindSong, q.Kind)
	return q.Song
}
