// Package queue implements the recursive queue algebra (spec §4.3): a tree
// of Song/Folder/Loop/Random/Shuffle nodes with post-order advancement,
// index-path navigation and the spec §4.1 wire codec.
//
// This is the closest 1:1 port in the module: the algebra is the spec's
// core, and original_source/musicdb-lib/src/data/queue.rs is unambiguous
// about traversal order, cursor repair on insert/remove, and the
// SetShuffle/AddRandomSong action emission, so the Go shape follows it
// field for field rather than reaching for a more "idiomatic" redesign.
package queue

import "gitlab.com/musicdb/musicdb/src/internal/catalog"

// Kind discriminates the Queue node variants.
type Kind uint8

const (
	KindSong Kind = iota
	KindFolder
	KindLoop
	KindRandom
	KindShuffle
)

// Queue is one node of the queue tree. Only the fields for Kind are
// meaningful; this mirrors the Rust QueueContent enum as a Go struct since
// Go has no sum types, following the pack's habit of flat structs with a
// discriminant field over an interface hierarchy for small closed sets of
// variants (internal/content/fileinfo.go's Kind-tagged FileInfo).
type Queue struct {
	Enabled bool
	Kind    Kind

	// KindSong
	Song catalog.SongID

	// KindFolder
	FolderIndex int
	FolderItems []Queue
	FolderName  string

	// KindLoop: Total == 0 means infinite (spec §9 Open Question 2); Len
	// then returns the inner length as a lower bound, exposed via
	// IsInfinite for callers that need to tell the two cases apart.
	LoopTotal   int
	LoopCurrent int
	LoopInner   *Queue

	// KindRandom: a deque; index 0 is the front (oldest), the last index is
	// the back (newest/lookahead slot).
	RandomItems []Queue

	// KindShuffle: Map[Current] indexes into Elems for the active element;
	// Next is the pre-picked index elected to follow it once played.
	ShuffleCurrent int
	ShuffleMap     []int
	ShuffleElems   []Queue
	ShuffleNext    int
}

// Action is a side effect AdvanceIndex/Init could not apply in place because
// it needs catalog/command access the tree itself doesn't have (spec §4.3:
// "Random topping up and Shuffle reshuffling are emitted as actions, not
// performed inline, so the caller can route them through the command log").
type Action struct {
	// Kind: 0 = AddRandomSong, 1 = SetShuffle.
	Kind ActionKind
	Path []int

	// SetShuffle payload.
	ShuffleMap  []int
	ShuffleNext int
}

type ActionKind uint8

const (
	ActionAddRandomSong ActionKind = iota
	ActionSetShuffle
)

// NewSong builds an enabled Song leaf.
func NewSong(id catalog.SongID) Queue {
	return Queue{Enabled: true, Kind: KindSong, Song: id}
}

// NewFolder builds an enabled Folder node.
func NewFolder(name string, items []Queue) Queue {
	return Queue{Enabled: true, Kind: KindFolder, FolderName: name, FolderItems: items}
}

// NewLoop builds an enabled Loop node. total == 0 means loop forever.
func NewLoop(total int, inner Queue) Queue {
	return Queue{Enabled: true, Kind: KindLoop, LoopTotal: total, LoopInner: &inner}
}

// NewRandom builds an enabled, empty Random node; Init tops it up to the
// steady-state buffer floor of 2 (spec §9 Open Question 1).
func NewRandom() Queue {
	return Queue{Enabled: true, Kind: KindRandom}
}

// NewShuffle builds an enabled Shuffle node over items, with an identity map
// and ShuffleNext set to element 0.
func NewShuffle(items []Queue) Queue {
	m := make([]int, len(items))
	for i := range m {
		m[i] = i
	}
	next := 0
	if len(items) > 0 {
		next = 0
	}
	return Queue{Enabled: true, Kind: KindShuffle, ShuffleMap: m, ShuffleElems: items, ShuffleNext: next}
}

// IsInfinite reports whether a Loop node repeats forever (Total == 0).
func (q *Queue) IsInfinite() bool {
	return q.Kind == KindLoop && q.LoopTotal == 0
}

// Len returns the number of songs the node contributes, or 0 if disabled.
// A Loop with Total == 0 contributes its inner length as a lower bound
// (spec §9 Open Question 2).
func (q *Queue) Len() int {
	if !q.Enabled {
		return 0
	}
	switch q.Kind {
	case KindSong:
		return 1
	case KindFolder:
		total := 0
		for i := range q.FolderItems {
			total += q.FolderItems[i].Len()
		}
		return total
	case KindLoop:
		if q.LoopTotal == 0 {
			return q.LoopInner.Len()
		}
		return q.LoopTotal * q.LoopInner.Len()
	case KindRandom:
		total := 0
		for i := range q.RandomItems {
			total += q.RandomItems[i].Len()
		}
		return total
	case KindShuffle:
		total := 0
		for i := range q.ShuffleElems {
			total += q.ShuffleElems[i].Len()
		}
		return total
	default:
		return 0
	}
}

// GetCurrent recursively descends to the currently active leaf, if any.
func (q *Queue) GetCurrent() *Queue {
	switch q.Kind {
	case KindSong:
		return q
	case KindFolder:
		if q.FolderIndex < 0 || q.FolderIndex >= len(q.FolderItems) {
			return nil
		}
		return q.FolderItems[q.FolderIndex].GetCurrent()
	case KindLoop:
		return q.LoopInner.GetCurrent()
	case KindRandom:
		i := satSub(len(q.RandomItems), 2)
		if i >= len(q.RandomItems) {
			return nil
		}
		return q.RandomItems[i].GetCurrent()
	case KindShuffle:
		if q.ShuffleCurrent >= len(q.ShuffleMap) {
			return nil
		}
		idx := q.ShuffleMap[q.ShuffleCurrent]
		if idx < 0 || idx >= len(q.ShuffleElems) {
			return nil
		}
		return q.ShuffleElems[idx].GetCurrent()
	default:
		return nil
	}
}

// GetCurrentSong returns the currently playing song id, if the current leaf
// is a Song.
func (q *Queue) GetCurrentSong() (catalog.SongID, bool) {
	cur := q.GetCurrent()
	if cur == nil || cur.Kind != KindSong {
		return 0, false
	}
	return cur.Song, true
}

// GetNextSong returns the song id that would become current after the next
// AdvanceIndex, if any.
func (q *Queue) GetNextSong() (catalog.SongID, bool) {
	next := q.GetNext()
	if next == nil || next.Kind != KindSong {
		return 0, false
	}
	return next.Song, true
}

// GetNext returns the leaf that would become current after the next
// AdvanceIndex, without mutating the tree.
func (q *Queue) GetNext() *Queue {
	switch q.Kind {
	case KindSong:
		return nil
	case KindFolder:
		if q.FolderIndex >= len(q.FolderItems) {
			return nil
		}
		cur := &q.FolderItems[q.FolderIndex]
		if n := cur.GetNext(); n != nil {
			return n
		}
		if q.FolderIndex+1 < len(q.FolderItems) {
			return q.FolderItems[q.FolderIndex+1].GetCurrent()
		}
		return nil
	case KindLoop:
		if n := q.LoopInner.GetNext(); n != nil {
			return n
		}
		if q.LoopTotal == 0 || q.LoopCurrent < q.LoopTotal {
			return q.LoopInner.GetFirst()
		}
		return nil
	case KindRandom:
		i := satSub(len(q.RandomItems), 1)
		if i >= len(q.RandomItems) {
			return nil
		}
		return q.RandomItems[i].GetCurrent()
	case KindShuffle:
		i := q.ShuffleCurrent + 1
		if i >= len(q.ShuffleMap) {
			return nil
		}
		idx := q.ShuffleMap[i]
		if idx < 0 || idx >= len(q.ShuffleElems) {
			return nil
		}
		return q.ShuffleElems[idx].GetCurrent()
	default:
		return nil
	}
}

// GetFirst returns the leaf that playback would start from if this node
// were entered from the top.
func (q *Queue) GetFirst() *Queue {
	switch q.Kind {
	case KindSong:
		return q
	case KindFolder:
		if len(q.FolderItems) == 0 {
			return nil
		}
		return q.FolderItems[0].GetFirst()
	case KindLoop:
		return q.LoopInner.GetFirst()
	case KindRandom:
		if len(q.RandomItems) == 0 {
			return nil
		}
		return q.RandomItems[0].GetFirst()
	case KindShuffle:
		if q.ShuffleCurrent == 0 {
			if len(q.ShuffleElems) == 0 {
				return nil
			}
			return q.ShuffleElems[0].GetFirst()
		}
		if q.ShuffleNext < 0 || q.ShuffleNext >= len(q.ShuffleElems) {
			return nil
		}
		return q.ShuffleElems[q.ShuffleNext].GetFirst()
	default:
		return nil
	}
}

// AddToEnd appends v to the end of a Folder/Random/Shuffle node, returning
// the new element's index. Song and Loop nodes reject it (they have no
// "end" to append to).
func (q *Queue) AddToEnd(v Queue) (int, bool) {
	switch q.Kind {
	case KindFolder:
		q.FolderItems = append(q.FolderItems, v)
		return len(q.FolderItems) - 1, true
	case KindRandom:
		q.RandomItems = append(q.RandomItems, v)
		return len(q.RandomItems) - 1, true
	case KindShuffle:
		q.ShuffleMap = append(q.ShuffleMap, len(q.ShuffleElems))
		q.ShuffleElems = append(q.ShuffleElems, v)
		return len(q.ShuffleMap) - 1, true
	default:
		return 0, false
	}
}

// Insert inserts v at index in a Folder/Shuffle node, shifting the cursor if
// it now points past the insertion point. Loop and Random reject it.
func (q *Queue) Insert(v Queue, index int) bool {
	switch q.Kind {
	case KindFolder:
		if index < 0 || index > len(q.FolderItems) {
			return false
		}
		if q.FolderIndex >= index {
			q.FolderIndex++
		}
		q.FolderItems = append(q.FolderItems, Queue{})
		copy(q.FolderItems[index+1:], q.FolderItems[index:])
		q.FolderItems[index] = v
		return true
	case KindShuffle:
		if index < 0 || index > len(q.ShuffleMap) {
			return false
		}
		if q.ShuffleCurrent >= index {
			q.ShuffleCurrent++
		}
		newElem := len(q.ShuffleElems)
		q.ShuffleMap = append(q.ShuffleMap, 0)
		copy(q.ShuffleMap[index+1:], q.ShuffleMap[index:])
		q.ShuffleMap[index] = newElem
		q.ShuffleElems = append(q.ShuffleElems, v)
		return true
	default:
		return false
	}
}

// RemoveByIndex removes and returns the node at the given index path,
// repairing cursors the way the Rust source does: a Folder/Shuffle cursor
// pointing past the removed slot is decremented so it keeps pointing at the
// same logical element.
func (q *Queue) RemoveByIndex(path []int, depth int) (Queue, bool) {
	if depth >= len(path) {
		return Queue{}, false
	}
	i := path[depth]
	switch q.Kind {
	case KindFolder:
		if depth+1 < len(path) {
			if i < 0 || i >= len(q.FolderItems) {
				return Queue{}, false
			}
			return q.FolderItems[i].RemoveByIndex(path, depth+1)
		}
		if i < 0 || i >= len(q.FolderItems) {
			return Queue{}, false
		}
		if q.FolderIndex > i {
			q.FolderIndex--
		}
		removed := q.FolderItems[i]
		q.FolderItems = append(q.FolderItems[:i], q.FolderItems[i+1:]...)
		return removed, true
	case KindLoop:
		if depth+1 < len(path) {
			return q.LoopInner.RemoveByIndex(path, depth+1)
		}
		return Queue{}, false
	case KindRandom:
		if i < 0 || i >= len(q.RandomItems) {
			return Queue{}, false
		}
		if depth+1 < len(path) {
			return q.RandomItems[i].RemoveByIndex(path, depth+1)
		}
		removed := q.RandomItems[i]
		q.RandomItems = append(q.RandomItems[:i], q.RandomItems[i+1:]...)
		return removed, true
	case KindShuffle:
		if depth+1 < len(path) {
			if i < 0 || i >= len(q.ShuffleMap) || q.ShuffleMap[i] < 0 || q.ShuffleMap[i] >= len(q.ShuffleElems) {
				return Queue{}, false
			}
			return q.ShuffleElems[q.ShuffleMap[i]].RemoveByIndex(path, depth+1)
		}
		if i < q.ShuffleCurrent {
			q.ShuffleCurrent--
		}
		if i < q.ShuffleNext {
			q.ShuffleNext--
		}
		if i < 0 || i >= len(q.ShuffleMap) {
			return Queue{}, false
		}
		elem := q.ShuffleMap[i]
		q.ShuffleMap = append(q.ShuffleMap[:i], q.ShuffleMap[i+1:]...)
		if elem < 0 || elem >= len(q.ShuffleElems) {
			return Queue{}, false
		}
		for j, m := range q.ShuffleMap {
			if m > elem {
				q.ShuffleMap[j] = m - 1
			}
		}
		removed := q.ShuffleElems[elem]
		q.ShuffleElems = append(q.ShuffleElems[:elem], q.ShuffleElems[elem+1:]...)
		return removed, true
	default:
		return Queue{}, false
	}
}

// GetItemAtIndex returns a pointer to the node at the given index path, or
// nil if the path is invalid. Callers may mutate the node through it.
func (q *Queue) GetItemAtIndex(path []int, depth int) *Queue {
	if depth >= len(path) {
		return q
	}
	i := path[depth]
	switch q.Kind {
	case KindFolder:
		if i < 0 || i >= len(q.FolderItems) {
			return nil
		}
		return q.FolderItems[i].GetItemAtIndex(path, depth+1)
	case KindLoop:
		return q.LoopInner.GetItemAtIndex(path, depth+1)
	case KindRandom:
		if i < 0 || i >= len(q.RandomItems) {
			return nil
		}
		return q.RandomItems[i].GetItemAtIndex(path, depth+1)
	case KindShuffle:
		if i < 0 || i >= len(q.ShuffleMap) {
			return nil
		}
		elem := q.ShuffleMap[i]
		if elem < 0 || elem >= len(q.ShuffleElems) {
			return nil
		}
		return q.ShuffleElems[elem].GetItemAtIndex(path, depth+1)
	default:
		return nil
	}
}

func satSub(a, b int) int {
	if a < b {
		return 0
	}
	return a - b
}
