package queue

import "math/rand"

// Init seeds a node's bookkeeping so Len/GetCurrent are meaningful right
// after insertion or SetIndex: it walks to the first child, tops up a
// Random node's lookahead buffer to the floor of 2 (spec §9 Open Question
// 1), and reshuffles a Shuffle node's map. Actions it cannot apply in place
// (picking a real song, committing a reshuffle) are appended to actions for
// the caller to carry out and replay through the command log.
func (q *Queue) Init(path []int, actions *[]Action) {
	switch q.Kind {
	case KindSong:
	case KindFolder:
		q.FolderIndex = 0
		if len(q.FolderItems) > 0 {
			q.FolderItems[0].Init(append(append([]int(nil), path...), 0), actions)
		}
	case KindLoop:
		q.LoopInner.Init(append(append([]int(nil), path...), 0), actions)
	case KindRandom:
		for n := len(q.RandomItems); n < 2; n++ {
			*actions = append(*actions, Action{Kind: ActionAddRandomSong, Path: append([]int(nil), path...)})
		}
		if i := satSub(len(q.RandomItems), 2); i < len(q.RandomItems) {
			q.RandomItems[i].Init(append(append([]int(nil), path...), i), actions)
		}
	case KindShuffle:
		newMap := make([]int, 0, len(q.ShuffleElems))
		for i := range q.ShuffleElems {
			if i != q.ShuffleNext {
				newMap = append(newMap, i)
			}
		}
		rand.Shuffle(len(newMap), func(i, j int) { newMap[i], newMap[j] = newMap[j], newMap[i] })
		if len(newMap) > 0 {
			wasFirst := newMap[0]
			newMap[0] = q.ShuffleNext
			newMap = append(newMap, wasFirst)
		} else if q.ShuffleNext < len(q.ShuffleElems) {
			newMap = append(newMap, q.ShuffleNext)
		}
		newNext := 0
		if len(q.ShuffleElems) > 0 {
			newNext = rand.Intn(len(q.ShuffleElems))
		}
		p := append([]int(nil), path...)
		*actions = append(*actions, Action{Kind: ActionSetShuffle, Path: p, ShuffleMap: newMap, ShuffleNext: newNext})
	}
}

// AdvanceIndex moves the playback cursor to the next leaf in post-order,
// returning whether it succeeded (false means this node wrapped back to its
// own start and the caller must advance a sibling/parent instead).
func (q *Queue) AdvanceIndex(path []int, actions *[]Action) bool {
	switch q.Kind {
	case KindSong:
		return false
	case KindFolder:
		if q.FolderIndex < 0 || q.FolderIndex >= len(q.FolderItems) {
			q.FolderIndex = 0
			return false
		}
		p := append(append([]int(nil), path...), q.FolderIndex)
		if q.FolderItems[q.FolderIndex].AdvanceIndex(p, actions) {
			return true
		}
		for {
			if q.FolderIndex+1 < len(q.FolderItems) {
				q.FolderIndex++
				if q.FolderItems[q.FolderIndex].Enabled {
					q.FolderItems[q.FolderIndex].Init(append(append([]int(nil), path...), q.FolderIndex), actions)
					return true
				}
				continue
			}
			q.FolderIndex = 0
			return false
		}
	case KindLoop:
		p := append(append([]int(nil), path...), 0)
		if q.LoopInner.AdvanceIndex(p, actions) {
			return true
		}
		q.LoopCurrent++
		if q.LoopTotal == 0 || q.LoopCurrent < q.LoopTotal {
			q.LoopInner.Init(p, actions)
			return true
		}
		q.LoopCurrent = 0
		return false
	case KindRandom:
		i := satSub(len(q.RandomItems), 2)
		if i < len(q.RandomItems) {
			p := append(append([]int(nil), path...), i)
			if q.RandomItems[i].AdvanceIndex(p, actions) {
				return true
			}
		}
		if len(q.RandomItems) >= 2 {
			q.RandomItems = q.RandomItems[1:]
		}
		i2 := satSub(len(q.RandomItems), 1)
		if i2 < len(q.RandomItems) {
			p := append(append([]int(nil), path...), i2)
			q.RandomItems[i2].Init(p, actions)
		}
		*actions = append(*actions, Action{Kind: ActionAddRandomSong, Path: append([]int(nil), path...)})
		return false
	case KindShuffle:
		if q.ShuffleCurrent >= 0 && q.ShuffleCurrent < len(q.ShuffleMap) {
			elem := q.ShuffleMap[q.ShuffleCurrent]
			if elem >= 0 && elem < len(q.ShuffleElems) {
				p := append(append([]int(nil), path...), q.ShuffleCurrent)
				if q.ShuffleElems[elem].AdvanceIndex(p, actions) {
					return true
				}
			}
		}
		q.ShuffleCurrent++
		if q.ShuffleCurrent < len(q.ShuffleMap) {
			if elem := q.ShuffleMap[q.ShuffleCurrent]; elem >= 0 && elem < len(q.ShuffleElems) {
				q.ShuffleElems[elem].Init(append(append([]int(nil), path...), q.ShuffleCurrent), actions)
			}
			return true
		}
		q.ShuffleCurrent = 0
		return false
	default:
		return false
	}
}

// SetIndex moves the cursor down the given index path, re-initializing each
// node it passes through the way AdvanceIndex would on entry.
func (q *Queue) SetIndex(index []int, depth int, buildPath []int, actions *[]Action) {
	if depth >= len(index) {
		return
	}
	i := index[depth]
	buildPath = append(append([]int(nil), buildPath...), i)
	switch q.Kind {
	case KindSong:
	case KindFolder:
		q.FolderIndex = i
		if i >= 0 && i < len(q.FolderItems) {
			q.FolderItems[i].Init(buildPath, actions)
			q.FolderItems[i].SetIndex(index, depth+1, buildPath, actions)
		}
	case KindLoop:
		q.LoopInner.Init(buildPath, actions)
		q.LoopInner.SetIndex(index, depth+1, buildPath, actions)
	case KindRandom:
	case KindShuffle:
		q.ShuffleCurrent = i
		if i >= 0 && i < len(q.ShuffleMap) {
			elem := q.ShuffleMap[i]
			if elem >= 0 && elem < len(q.ShuffleElems) {
				q.ShuffleElems[elem].Init(buildPath, actions)
				q.ShuffleElems[elem].SetIndex(index, depth+1, buildPath, actions)
			}
		}
	}
}
