package amqpchan

import (
	"github.com/rs/zerolog"

	"github.com/corvid-labs/amqpchannel/consumer"
	"github.com/corvid-labs/amqpchannel/wire"
)

// Channel is the public handle onto a channel actor. All methods are safe
// to call from any goroutine; each one hands a single Event to the
// actor's inbox and, where the protocol needs a reply, blocks on a
// dedicated one-shot reply sink.
type Channel struct {
	actor *channelActor
}

// NewChannel starts a channel actor's goroutine and returns its handle.
// number is the AMQP channel number the caller has already allocated.
// writerFactory is invoked lazily on the first channel.open, never here —
// the returned Channel is usable (its inbox accepts events) before that
// happens.
func NewChannel(number uint16, strategy consumer.Strategy, cfg Config, logger zerolog.Logger, writerFactory WriterFactory) *Channel {
	return &Channel{actor: newChannelActor(number, strategy, cfg, logger, writerFactory)}
}

// Number returns the AMQP channel number this handle was constructed with.
func (c *Channel) Number() uint16 { return c.actor.number }

// Call sends a synchronous or asynchronous application method and blocks
// for its CallResult. Passing a method reserved for Open/Close or a
// connection-class method returns ReplyInvalid without touching state.
func (c *Channel) Call(method wire.Method, content *wire.Content) CallResult {
	sink := newReplySink()
	c.actor.inbox <- callEvent{method: method, content: content, sink: sink}
	return sink.wait()
}

// Cast sends a method without waiting for any reply. Rejections and
// admission failures are logged and dropped rather than surfaced, since
// there is no caller left to report them to.
func (c *Channel) Cast(method wire.Method, content *wire.Content) {
	c.actor.inbox <- castEvent{method: method, content: content}
}

// Close drives the channel.close handshake and blocks until it completes,
// times out, or the channel is already closing.
func (c *Channel) Close(code uint16, text string) CallResult {
	sink := newReplySink()
	c.actor.inbox <- closeEvent{code: code, text: text, sink: sink}
	return sink.wait()
}

// Open drives channel.open through the RPC pipeline exactly like any other
// synchronous method. Reserved for the connection actor — application
// code must never call this directly; a connection factory is expected to
// return an already-opened Channel.
func (c *Channel) Open() CallResult {
	sink := newReplySink()
	c.actor.inbox <- openEvent{sink: sink}
	return sink.wait()
}

// NextPublishSeqno returns the sequence number the next basic.publish will
// be assigned under publisher confirms, or 0 if confirm.select has not
// been issued.
func (c *Channel) NextPublishSeqno() uint64 {
	reply := make(chan uint64, 1)
	c.actor.inbox <- nextPublishSeqnoEvent{reply: reply}
	return <-reply
}

// RegisterReturnHandler installs h as the sink for basic.return. Passing
// nil clears the current sink.
func (c *Channel) RegisterReturnHandler(h ReturnHandler) {
	if h == nil {
		c.registerHandler(handlerReturn, nil)
		return
	}
	c.registerHandler(handlerReturn, h)
}

// RegisterConfirmHandler installs h as the sink for basic.ack/basic.nack.
// Passing nil clears the current sink.
func (c *Channel) RegisterConfirmHandler(h ConfirmHandler) {
	if h == nil {
		c.registerHandler(handlerConfirm, nil)
		return
	}
	c.registerHandler(handlerConfirm, h)
}

// RegisterFlowHandler installs h as the sink for channel.flow
// notifications. Passing nil clears the current sink.
func (c *Channel) RegisterFlowHandler(h FlowHandler) {
	if h == nil {
		c.registerHandler(handlerFlow, nil)
		return
	}
	c.registerHandler(handlerFlow, h)
}

func (c *Channel) registerHandler(kind handlerKind, h Handler) {
	reply := make(chan struct{})
	c.actor.inbox <- registerHandlerEvent{kind: kind, sink: h, reply: reply}
	<-reply
}

// CallConsumer forwards msg to the consumer strategy's HandleCall and
// returns its reply.
func (c *Channel) CallConsumer(msg any) any {
	reply := make(chan consumerCallReply, 1)
	c.actor.inbox <- callConsumerEvent{msg: msg, reply: reply}
	return (<-reply).value
}

// DeliverServerMethod feeds one inbound method (with content, if any) from
// the connection's frame-assembly pipeline into this channel. The
// connection actor is the only expected caller.
func (c *Channel) DeliverServerMethod(method wire.Method, content *wire.Content) {
	c.actor.inbox <- serverMethodEvent{method: method, content: content}
}

// NotifyConnectionClosing informs the channel that the connection is
// closing. The connection actor is the only expected caller.
func (c *Channel) NotifyConnectionClosing(closeType CloseType, reason error) {
	c.actor.inbox <- connectionClosingEvent{closeType: closeType, reason: reason}
}

// NotifyChannelExit delivers a fault observed on the direct transport
// path: an *AmqpError for a protocol exception, any other error for an
// infrastructure failure.
func (c *Channel) NotifyChannelExit(reason error) {
	c.actor.inbox <- channelExitEvent{reason: reason}
}

// Done is closed once the channel actor has exited. Err then reports the
// terminal reason (nil for a graceful close).
func (c *Channel) Done() <-chan struct{} { return c.actor.done }

// Err reports the exit reason once Done is closed; calling it earlier
// returns nil regardless of what will eventually terminate the channel.
func (c *Channel) Err() error { return c.actor.exitReason }
