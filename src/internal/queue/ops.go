package queue

// AddAtPath resolves path to a node and appends v to its end (spec
// QueueAdd), returning the new child's index.
func (q *Queue) AddAtPath(path []int, v Queue) (int, bool) {
	node := q.GetItemAtIndex(path, 0)
	if node == nil {
		return 0, false
	}
	return node.AddToEnd(v)
}

// InsertAtPath resolves parent(path) and inserts v at the path's last
// index (spec QueueInsert).
func (q *Queue) InsertAtPath(path []int, v Queue) bool {
	if len(path) == 0 {
		return false
	}
	parent := q.GetItemAtIndex(path[:len(path)-1], 0)
	if parent == nil {
		return false
	}
	return parent.Insert(v, path[len(path)-1])
}

// ApplySetShuffle resolves path to a Shuffle node and replaces its map and
// next pointer (spec QueueSetShuffle; the ActionSetShuffle replay target).
func (q *Queue) ApplySetShuffle(path []int, m []int, next int) bool {
	node := q.GetItemAtIndex(path, 0)
	if node == nil || node.Kind != KindShuffle {
		return false
	}
	node.ShuffleMap = m
	node.ShuffleNext = next
	return true
}
