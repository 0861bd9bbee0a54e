// Package consumer defines the pluggable consumer-strategy interface the
// channel actor delegates consumption semantics to. The channel owns the
// strategy's state and threads it through each callback; it never
// interprets the state itself.
package consumer

import "github.com/corvid-labs/amqpchannel/wire"

// Delivery pairs a basic.deliver method with its content.
type Delivery struct {
	Method  wire.BasicDeliver
	Content wire.Content
}

// Strategy is the callback set a channel delegates consumption to. Each
// callback receives the strategy's own opaque state and returns the
// (possibly updated) state; the channel threads it through unchanged.
type Strategy interface {
	// Init is called once, when the channel is constructed, with the
	// consumer arguments supplied by its owner.
	Init(args any) any
	// HandleConsumeOk is called when the broker confirms a basic.consume
	// this strategy originated. original is the basic.consume request
	// that was at the head of the RPC queue.
	HandleConsumeOk(consumeOk wire.BasicConsumeOk, original wire.BasicConsume, state any) any
	// HandleCancelOk is called when the broker confirms a basic.cancel.
	HandleCancelOk(cancelOk wire.BasicCancelOk, original wire.BasicCancel, state any) any
	// HandleCancel is called when the broker pushes an unsolicited
	// basic.cancel (e.g. the consumed queue was deleted).
	HandleCancel(cancel wire.BasicCancel, state any) any
	// HandleDeliver is called for every basic.deliver routed to this
	// channel's consumers.
	HandleDeliver(delivery Delivery, state any) any
	// HandleCall services a synchronous call forwarded from the
	// application via Channel.CallConsumer, returning a reply to hand
	// back to the caller alongside the updated state.
	HandleCall(msg any, state any) (reply any, newState any)
	// Terminate is invoked once, when the channel actor exits, with the
	// exit reason and final state. It performs no state transition.
	Terminate(reason error, state any)
}
