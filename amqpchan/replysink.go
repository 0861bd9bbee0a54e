package amqpchan

import "github.com/corvid-labs/amqpchannel/wire"

// ReplyKind tags the shape of a CallResult delivered to a waiting caller.
type ReplyKind int

const (
	// ReplyOk is returned for successful async methods and for a completed
	// channel.open or channel.close handshake.
	ReplyOk ReplyKind = iota
	// ReplyBlocked is returned when a content-bearing method is
	// submitted while flow_active is false.
	ReplyBlocked
	// ReplyClosing is returned when any method is submitted while the
	// channel is not Open.
	ReplyClosing
	// ReplyInvalid is returned for application misuse.
	ReplyInvalid
	// ReplyMethod carries the correlated server method (and content, if
	// content-bearing) back to the caller.
	ReplyMethod
)

// CallResult is the reply sentinel surface visible to applications: Ok,
// Blocked, Closing, an application-misuse error, or the correlated server
// method.
type CallResult struct {
	Kind    ReplyKind
	Method  wire.Method
	Content *wire.Content
	Err     error
}

// Ok reports whether the call succeeded (ReplyOk or ReplyMethod without an
// error).
func (r CallResult) Ok() bool {
	return r.Err == nil && (r.Kind == ReplyOk || r.Kind == ReplyMethod)
}

// replySink is the abstract handle identifying either a waiting
// synchronous caller awaiting exactly one reply, or the sentinel "no sink"
// (a nil *replySink) used by cast / internally-generated requests such as
// channel.flow_ok. It is a one-shot blocking container backed by a
// capacity-1 buffered channel: a channel actor only ever calls deliver
// once per sink by construction (I1: at most one in-flight entry per
// sink), so no set-once guard is needed beyond the buffer itself.
type replySink struct {
	ch chan CallResult
}

func newReplySink() *replySink {
	return &replySink{ch: make(chan CallResult, 1)}
}

// deliver hands the reply to the waiting caller. A nil receiver is the "no
// sink" sentinel and is always safe to call.
func (s *replySink) deliver(result CallResult) {
	if s == nil {
		return
	}
	select {
	case s.ch <- result:
	default:
		// already delivered; I1 guarantees this never happens for a
		// correctly driven queue, but never block the actor over it.
	}
}

// wait blocks until deliver is called. Only ever invoked by the
// application goroutine that owns this sink, never by the actor itself.
func (s *replySink) wait() CallResult {
	return <-s.ch
}
