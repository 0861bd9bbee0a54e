package amqpchan

import (
	"fmt"

	"github.com/corvid-labs/amqpchannel/consumer"
	"github.com/corvid-labs/amqpchannel/wire"
)

// preDo applies side effects attached to specific outbound methods just
// before they are handed to the transport.
func (ch *channelActor) preDo(method wire.Method) {
	switch method.(type) {
	case wire.ChannelOpen:
		if ch.transport == nil && ch.writerFactory != nil {
			writer, err := ch.writerFactory()
			if err != nil {
				ch.postSelf(channelExitEvent{reason: err})
				return
			}
			ch.transport = writer
		}
	case wire.ChannelClose:
		if ch.closing.kind == closingOpen {
			ch.closing = closingState{kind: closingJustChannel}
		}
	}
}

// drive is the RPC queue's drive loop: while the queue is non-empty, peek
// the head, apply preDo, hand it to the transport, then either stop
// (synchronous — await the matching inbound reply) or reply Ok and
// continue (asynchronous).
func (ch *channelActor) drive() {
	for {
		entry := ch.rpc.Front()
		if entry == nil {
			break
		}

		ch.preDo(entry.method)
		if ch.transport == nil {
			// preDo's writer factory failed and already posted a
			// channel_exit; stop driving until that event is processed.
			return
		}

		if err := ch.transport.Send(entry.method, entry.content); err != nil {
			// Do not reply; a channel_exit event is expected to follow.
			return
		}

		if wire.IsSynchronous(entry.method) {
			return
		}

		entry.sink.deliver(CallResult{Kind: ReplyOk})
		ch.rpc.PopFront()
	}

	if ch.closing.kind == closingConnection {
		ch.postSelf(shutdownEvent{reason: ConnectionClosing{Inner: ch.closing.reason}})
	}
}

// popHeadAndDrive pops the head entry, delivers result to its sink, and
// resumes driving so the next queued entry (if any) is sent immediately.
func (ch *channelActor) popHeadAndDrive(result CallResult) {
	entry := ch.rpc.PopFront()
	if entry != nil {
		entry.sink.deliver(result)
	}
	ch.drive()
}

// dispatchInbound is the server-method dispatch table.
func (ch *channelActor) dispatchInbound(method wire.Method, content *wire.Content) {
	switch m := method.(type) {
	case wire.ChannelOpenOk:
		ch.popHeadAndDrive(CallResult{Kind: ReplyOk})

	case wire.ChannelClose:
		ch.sendAsyncNoWait(wire.ChannelCloseOk{})
		ch.exit(normalizeShutdownReason(ServerInitiatedClose{Code: m.ReplyCode, Text: m.ReplyText}))

	case wire.ChannelCloseOk:
		entry := ch.rpc.PopFront()
		if entry != nil {
			entry.sink.deliver(CallResult{Kind: ReplyOk})
		}
		ch.exit(nil)

	case wire.BasicConsumeOk:
		var original wire.BasicConsume
		if entry := ch.rpc.Front(); entry != nil {
			original, _ = entry.method.(wire.BasicConsume)
		}
		ch.consumerState = ch.consumer.HandleConsumeOk(m, original, ch.consumerState)
		ch.popHeadAndDrive(CallResult{Kind: ReplyMethod, Method: m})

	case wire.BasicCancelOk:
		var original wire.BasicCancel
		if entry := ch.rpc.Front(); entry != nil {
			original, _ = entry.method.(wire.BasicCancel)
		}
		ch.consumerState = ch.consumer.HandleCancelOk(m, original, ch.consumerState)
		ch.popHeadAndDrive(CallResult{Kind: ReplyMethod, Method: m})

	case wire.BasicCancel:
		ch.consumerState = ch.consumer.HandleCancel(m, ch.consumerState)

	case wire.BasicDeliver:
		var body wire.Content
		if content != nil {
			body = *content
		}
		ch.consumerState = ch.consumer.HandleDeliver(consumer.Delivery{Method: m, Content: body}, ch.consumerState)

	case wire.BasicReturn:
		if handler, ok := ch.returnHandler.get().(ReturnHandler); ok && handler != nil {
			var body wire.Content
			if content != nil {
				body = *content
			}
			handler.HandleReturn(ReturnEvent{Method: m, Content: body})
		} else {
			ch.logger.Warn().Str("method", m.MethodName()).Msg("basic.return with no registered return handler; dropped")
		}

	case wire.BasicAck:
		if handler, ok := ch.confirmHandler.get().(ConfirmHandler); ok && handler != nil {
			handler.HandleConfirm(ConfirmEvent{DeliveryTag: m.DeliveryTag, Multiple: m.Multiple, Ack: true})
		} else {
			ch.logger.Warn().Str("method", m.MethodName()).Msg("basic.ack with no registered confirm handler; dropped")
		}

	case wire.BasicNack:
		if handler, ok := ch.confirmHandler.get().(ConfirmHandler); ok && handler != nil {
			handler.HandleConfirm(ConfirmEvent{DeliveryTag: m.DeliveryTag, Multiple: m.Multiple, Ack: false, Requeue: m.Requeue})
		} else {
			ch.logger.Warn().Str("method", m.MethodName()).Msg("basic.nack with no registered confirm handler; dropped")
		}

	case wire.ChannelFlow:
		ch.flowActive = m.Active
		if handler, ok := ch.flowHandler.get().(FlowHandler); ok && handler != nil {
			handler.HandleFlow(FlowEvent{Active: m.Active})
		}
		// Enqueued as a regular RPC entry so it serializes behind
		// whatever is already in flight.
		ch.enqueue(nil, wire.ChannelFlowOk{Active: m.Active}, nil)

	default:
		var replyContent *wire.Content
		if wire.HasContent(method) {
			replyContent = content
		}
		ch.popHeadAndDrive(CallResult{Kind: ReplyMethod, Method: method, Content: replyContent})
	}
}

// handleServerMethod is the inbound pipeline entry point for a method
// delivered from the connection's frame-assembly layer.
func (ch *channelActor) handleServerMethod(method wire.Method, content *wire.Content) {
	if wire.IsConnectionClass(method) {
		ch.handleServerMisbehavior(method)
		return
	}

	if ch.closing.kind == closingJustChannel {
		switch method.(type) {
		case wire.ChannelClose, wire.ChannelCloseOk:
			// fall through to dispatch
		default:
			ch.logger.Debug().Str("method", method.MethodName()).Msg("dropping late inbound method while closing")
			return
		}
	}

	ch.dispatchInbound(method, content)
}

// handleServerMisbehavior handles a connection-class method arriving on
// this non-zero channel, which is always a protocol violation.
func (ch *channelActor) handleServerMisbehavior(method wire.Method) {
	err := fmt.Errorf("unexpected connection-class method %s on channel %d", method.MethodName(), ch.number)
	// command-invalid (503) is hard in the exception table, so this exits
	// with ServerMisbehaved; the soft branch below is not taken with the
	// current table.
	exc := wire.LookupException(503)
	if exc.Hard {
		ch.exit(ServerMisbehaved{Inner: err})
		return
	}
	ch.initiateLocalClose(exc.Code, exc.Explanation)
}

// handleChannelExit looks up the AMQP exception for a server-pushed fault
// on the direct path; routes hard exceptions to a connection-closing exit,
// soft ones to an asynchronously self-enqueued close; anything that isn't
// an AmqpError is an infrastructure failure.
func (ch *channelActor) handleChannelExit(reason error) {
	amqpErr, ok := reason.(*AmqpError)
	if !ok {
		ch.exit(InfrastructureDied{Inner: reason})
		return
	}

	if amqpErr.Hard {
		ch.exit(ConnectionClosing{Inner: ServerInitiatedHardClose{Code: amqpErr.Code, Text: amqpErr.Explanation}})
		return
	}

	ch.initiateLocalClose(amqpErr.Code, amqpErr.Explanation)
}

// initiateLocalClose starts the closing handshake without blocking the
// actor's own goroutine: calling Close() inline from inside dispatch would
// deadlock the actor (Close blocks on a reply sink the actor itself must
// deliver), so the close is enqueued asynchronously from a spawned
// goroutine instead.
func (ch *channelActor) initiateLocalClose(code uint16, text string) {
	go func() {
		_ = ch.closeSelf(code, text)
	}()
}
