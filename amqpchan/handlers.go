package amqpchan

import "github.com/corvid-labs/amqpchannel/wire"

// ReturnEvent is delivered to the return handler for a server-pushed
// basic.return.
type ReturnEvent struct {
	Method  wire.BasicReturn
	Content wire.Content
}

// ConfirmEvent is delivered to the confirm handler for a server-pushed
// basic.ack or basic.nack. Ack reports which of the two was received.
type ConfirmEvent struct {
	DeliveryTag uint64
	Multiple    bool
	Ack         bool
	Requeue     bool // only meaningful when Ack is false (basic.nack)
}

// FlowEvent is delivered to the flow handler for a server-pushed
// channel.flow.
type FlowEvent struct {
	Active bool
}

// LivenessProbe lets a registered handler be checked for liveness without
// the channel actor depending on any particular delivery mechanism, in
// place of a weak reference (Go has none).
type LivenessProbe interface {
	IsAlive() bool
}

// Handler is the sink surface a channel registers one of per kind (return,
// confirm, flow). HandleReturn/HandleConfirm/HandleFlow are invoked
// fire-and-forget from the actor's goroutine — implementations must not
// block.
type Handler interface {
	LivenessProbe
}

// ReturnHandler receives basic.return events.
type ReturnHandler interface {
	Handler
	HandleReturn(ReturnEvent)
}

// ConfirmHandler receives basic.ack/basic.nack events.
type ConfirmHandler interface {
	Handler
	HandleConfirm(ConfirmEvent)
}

// FlowHandler receives channel.flow events.
type FlowHandler interface {
	Handler
	HandleFlow(FlowEvent)
}

// handlerSlot holds at most one sink per kind; re-registering replaces
// the prior one.
type handlerSlot struct {
	sink Handler
}

func (s *handlerSlot) set(h Handler) {
	s.sink = h
}

func (s *handlerSlot) clear() {
	s.sink = nil
}

func (s *handlerSlot) get() Handler {
	if s.sink == nil {
		return nil
	}
	if !s.sink.IsAlive() {
		// The old sink's subsequent death, after a later re-registration
		// already cleared the slot, simply targets an empty slot and is
		// ignored here — the liveness check only ever observes the
		// currently installed sink.
		s.sink = nil
		return nil
	}
	return s.sink
}
