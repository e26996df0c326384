package tableau

import "container/heap"

// TieOrder decides which of two pending nodes with equal priority expands
// first.
type TieOrder int

const (
	// TiesFIFO expands the node that was queued first.
	TiesFIFO TieOrder = iota
	// TiesLIFO expands the node that was queued last.
	TiesLIFO
)

type pendingNode struct {
	id       NodeID
	priority int
	seq      uint64
}

// pendingQueue is a max-heap on priority with a deterministic tie-break on
// insertion sequence.
type pendingQueue struct {
	items []pendingNode
	ties  TieOrder
	seq   uint64
}

func (q *pendingQueue) Len() int { return len(q.items) }

func (q *pendingQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.priority != b.priority {
		return a.priority > b.priority
	}
	if q.ties == TiesLIFO {
		return a.seq > b.seq
	}
	return a.seq < b.seq
}

func (q *pendingQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *pendingQueue) Push(x any) { q.items = append(q.items, x.(pendingNode)) }

func (q *pendingQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

func (q *pendingQueue) push(id NodeID, priority int) {
	heap.Push(q, pendingNode{id: id, priority: priority, seq: q.seq})
	q.seq++
}

func (q *pendingQueue) pop() (NodeID, bool) {
	if len(q.items) == 0 {
		return NoNode, false
	}
	return heap.Pop(q).(pendingNode).id, true
}
