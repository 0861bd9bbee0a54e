package amqpchan

import "github.com/corvid-labs/amqpchannel/wire"

// CloseType distinguishes how the connection actor is closing: flush lets
// in-flight RPCs drain under a bounded timeout; any other value shuts the
// channel down immediately.
type CloseType int

const (
	CloseFlush CloseType = iota
	CloseAbrupt
)

// Event is the sum type of everything the actor's single inbound queue
// carries. The actor's run loop is the only reader; every field reachable
// from an Event is private to this package.
type Event interface{ isEvent() }

type callEvent struct {
	method  wire.Method
	content *wire.Content
	sink    *replySink
}

func (callEvent) isEvent() {}

type castEvent struct {
	method  wire.Method
	content *wire.Content
}

func (castEvent) isEvent() {}

type closeEvent struct {
	code uint16
	text string
	sink *replySink
}

func (closeEvent) isEvent() {}

type nextPublishSeqnoEvent struct {
	reply chan uint64
}

func (nextPublishSeqnoEvent) isEvent() {}

type handlerKind int

const (
	handlerReturn handlerKind = iota
	handlerConfirm
	handlerFlow
)

type registerHandlerEvent struct {
	kind  handlerKind
	sink  Handler
	reply chan struct{}
}

func (registerHandlerEvent) isEvent() {}

type callConsumerEvent struct {
	msg   any
	reply chan consumerCallReply
}

func (callConsumerEvent) isEvent() {}

type consumerCallReply struct {
	value any
}

type serverMethodEvent struct {
	method  wire.Method
	content *wire.Content
}

func (serverMethodEvent) isEvent() {}

type connectionClosingEvent struct {
	closeType CloseType
	reason    error
}

func (connectionClosingEvent) isEvent() {}

type shutdownEvent struct {
	reason error
}

func (shutdownEvent) isEvent() {}

type timeoutFlushEvent struct{}

func (timeoutFlushEvent) isEvent() {}

type timeoutCloseOkEvent struct{}

func (timeoutCloseOkEvent) isEvent() {}

// channelExitEvent is the fault input: either an *AmqpError or any other
// error value.
type channelExitEvent struct {
	reason error
}

func (channelExitEvent) isEvent() {}

// openEvent is issued only by the connection actor (never the
// application) to drive channel.open through the RPC pipeline.
type openEvent struct {
	sink *replySink
}

func (openEvent) isEvent() {}
