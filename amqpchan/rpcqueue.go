package amqpchan

import (
	"container/list"

	"github.com/corvid-labs/amqpchannel/wire"
)

// rpcEntry is one (reply_sink, method, content) triple queued for
// outbound delivery. sink is nil for cast / internally originated
// requests (channel.flow_ok).
type rpcEntry struct {
	sink    *replySink
	method  wire.Method
	content *wire.Content
}

// rpcQueue is a FIFO of outstanding RPC entries: entries are matched to
// inbound replies positionally, never by id, because AMQP 0-9-1 guarantees
// in-order synchronous replies per channel (I2). A doubly linked list gives
// O(1) push-back/pop-front while preserving that ordering exactly; a
// map keyed by a generated id would lose FIFO order on iteration and
// violate I1/I2.
type rpcQueue struct {
	entries *list.List
}

func newRPCQueue() *rpcQueue {
	return &rpcQueue{entries: list.New()}
}

func (q *rpcQueue) Len() int {
	return q.entries.Len()
}

func (q *rpcQueue) PushBack(entry *rpcEntry) {
	q.entries.PushBack(entry)
}

// Front returns the head entry (the one "in flight", per I1) without
// removing it, or nil if the queue is empty.
func (q *rpcQueue) Front() *rpcEntry {
	if e := q.entries.Front(); e != nil {
		return e.Value.(*rpcEntry)
	}
	return nil
}

// PopFront removes and returns the head entry, or nil if the queue is
// empty.
func (q *rpcQueue) PopFront() *rpcEntry {
	e := q.entries.Front()
	if e == nil {
		return nil
	}
	q.entries.Remove(e)
	return e.Value.(*rpcEntry)
}

// DrainAll removes and returns every remaining entry in FIFO order, used
// when the actor exits with entries still queued.
func (q *rpcQueue) DrainAll() []*rpcEntry {
	drained := make([]*rpcEntry, 0, q.entries.Len())
	for e := q.entries.Front(); e != nil; e = e.Next() {
		drained = append(drained, e.Value.(*rpcEntry))
	}
	q.entries.Init()
	return drained
}
