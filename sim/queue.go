// sim/queue.go
package sim

import "container/heap"

// queuedEvent pairs an Event with its insertion index, the deterministic
// tertiary tie-breaker required by §4.4 (FIFO within equal time+priority).
type queuedEvent struct {
	event     Event
	insertion uint64
}

// EventHeap is the priority queue ordered by (time, priority, insertion)
// (§4.4). It mirrors the teacher's sim/cluster/event_heap.go container/heap
// wrapper shape, generalized from an integer type-priority lookup to the
// spec's float Priority() plus an explicit insertion counter.
type EventHeap struct {
	items     []queuedEvent
	nextIndex uint64
}

// NewEventHeap creates an empty event heap.
func NewEventHeap() *EventHeap {
	h := &EventHeap{}
	heap.Init(h)
	return h
}

func (h *EventHeap) Len() int { return len(h.items) }

func (h *EventHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.event.Timestamp() != b.event.Timestamp() {
		return a.event.Timestamp() < b.event.Timestamp()
	}
	if a.event.Priority() != b.event.Priority() {
		return a.event.Priority() < b.event.Priority()
	}
	return a.insertion < b.insertion
}

func (h *EventHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *EventHeap) Push(x any) {
	h.items = append(h.items, x.(queuedEvent))
}

func (h *EventHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// Schedule adds an event to the heap, assigning it the next insertion
// index.
func (h *EventHeap) Schedule(e Event) {
	qe := queuedEvent{event: e, insertion: h.nextIndex}
	h.nextIndex++
	heap.Push(h, qe)
}

// PopNext removes and returns the minimum event, or nil if the heap is
// empty.
func (h *EventHeap) PopNext() Event {
	if h.Len() == 0 {
		return nil
	}
	return heap.Pop(h).(queuedEvent).event
}

// Empty reports whether the heap has no pending events.
func (h *EventHeap) Empty() bool {
	return h.Len() == 0
}

// Peek returns the minimum event without removing it, or nil if empty.
func (h *EventHeap) Peek() Event {
	if h.Len() == 0 {
		return nil
	}
	return h.items[0].event
}
