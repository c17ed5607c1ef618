package skyline

import "container/heap"

// pqItem is one entry in a lazy-decrease-key priority queue: a payload
// tagged with its tentative distance. Stale entries (a node popped after a
// cheaper entry for the same key has already been processed) are detected
// via the caller's visited-set, not removed from the heap eagerly — the
// same trade-off katalvlaran-lvlath/dijkstra/dijkstra.go makes.
type pqItem[T any] struct {
	value T
	dist  float64
	index int
}

// priorityQueue is a container/heap-backed min-heap ordered ascending by
// dist, shared by C5's residual-demand search (fulfilment.go) and the
// parallel driver's per-worker candidate queues (driver.go); internal/roadnet
// has its own heap. NaN distances are treated as equal to
// everything per legLess, so the heap can't mis-order on a non-finite input.
type priorityQueue[T any] []*pqItem[T]

func (pq priorityQueue[T]) Len() int { return len(pq) }

func (pq priorityQueue[T]) Less(i, j int) bool {
	return legLess(pq[i].dist, pq[j].dist)
}

func (pq priorityQueue[T]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue[T]) Push(x any) {
	item := x.(*pqItem[T])
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue[T]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// newPriorityQueue returns an initialized, empty priority queue ready for
// heap.Push/heap.Pop.
func newPriorityQueue[T any]() *priorityQueue[T] {
	pq := make(priorityQueue[T], 0)
	heap.Init(&pq)
	return &pq
}

func (pq *priorityQueue[T]) push(value T, dist float64) {
	heap.Push(pq, &pqItem[T]{value: value, dist: dist})
}

func (pq *priorityQueue[T]) pop() (T, float64, bool) {
	if pq.Len() == 0 {
		var zero T
		return zero, 0, false
	}
	item := heap.Pop(pq).(*pqItem[T])
	return item.value, item.dist, true
}
