package queue

// Clone deep-copies a Queue tree so a caller can walk it (e.g. to compute a
// cache lookahead window) without disturbing the live cursor state.
func (q Queue) Clone() Queue {
	clone := q
	switch q.Kind {
	case KindFolder:
		clone.FolderItems = make([]Queue, len(q.FolderItems))
		for i, v := range q.FolderItems {
			clone.FolderItems[i] = v.Clone()
		}
	case KindLoop:
		if q.LoopInner != nil {
			inner := q.LoopInner.Clone()
			clone.LoopInner = &inner
		}
	case KindRandom:
		clone.RandomItems = make([]Queue, len(q.RandomItems))
		for i, v := range q.RandomItems {
			clone.RandomItems[i] = v.Clone()
		}
	case KindShuffle:
		clone.ShuffleMap = append([]int(nil), q.ShuffleMap...)
		clone.ShuffleElems = make([]Queue, len(q.ShuffleElems))
		for i, v := range q.ShuffleElems {
			clone.ShuffleElems[i] = v.Clone()
		}
	}
	return clone
}
