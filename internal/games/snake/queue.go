package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// QueueCap is the number of turns that can be buffered between moves.
const QueueCap = 2

// DirQueue buffers pending turns. Legality is checked when a turn is
// pushed, against the turn queued before it or the heading when empty.
type DirQueue struct {
	dirs [QueueCap]core.Direction
	n    int
}

// Push queues d. Turns equal to, or the reverse of, the preceding one are
// rejected, as is any turn once the queue is full: queued turns are never
// dropped.
func (q *DirQueue) Push(d, heading core.Direction) bool {
	if q.n == QueueCap {
		return false
	}
	prev := heading
	if q.n > 0 {
		prev = q.dirs[q.n-1]
	}
	if !turnable(prev, d) {
		return false
	}
	q.dirs[q.n] = d
	q.n++
	return true
}

// Pop removes and returns the front turn.
func (q *DirQueue) Pop() (core.Direction, bool) {
	if q.n == 0 {
		return 0, false
	}
	d := q.dirs[0]
	copy(q.dirs[:], q.dirs[1:q.n])
	q.n--
	return d, true
}

// Peek returns the front turn without removing it.
func (q *DirQueue) Peek() (core.Direction, bool) {
	if q.n == 0 {
		return 0, false
	}
	return q.dirs[0], true
}

// Len returns the number of queued turns.
func (q *DirQueue) Len() int {
	return q.n
}

// Clear drops all queued turns.
func (q *DirQueue) Clear() {
	q.n = 0
}

func turnable(from, to core.Direction) bool {
	return to != from && to != from.Opposite()
}
