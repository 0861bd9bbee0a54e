// Package amqpchan implements the client-side channel state machine: a
// single-goroutine actor per AMQP 0-9-1 channel that serializes application
// calls against one outbound transport, correlates synchronous replies
// positionally against a FIFO queue, and fans inbound server methods out to
// a pluggable consumer strategy and the three optional handler sinks
// (return, confirm, flow).
package amqpchan

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/corvid-labs/amqpchannel/consumer"
	"github.com/corvid-labs/amqpchannel/transport"
	"github.com/corvid-labs/amqpchannel/wire"
)

// WriterFactory lazily produces the transport a channel sends methods
// through. Invoked exactly once, the first time channel.open is driven —
// never at construction time, so a channel object can exist before its
// connection has finished negotiating.
type WriterFactory func() (transport.Transport, error)

// channelActor owns everything private to the state machine. It is never
// exposed directly; Channel is the public handle applications and the
// connection actor hold.
type channelActor struct {
	number uint16
	inbox  chan Event

	logger zerolog.Logger

	consumer      consumer.Strategy
	consumerState any

	cfg Config

	transport     transport.Transport
	writerFactory WriterFactory

	closing closingState
	rpc     *rpcQueue

	nextPubSeqno uint64
	flowActive   bool

	returnHandler  handlerSlot
	confirmHandler handlerSlot
	flowHandler    handlerSlot

	flushTimer   *time.Timer
	closeOkTimer *time.Timer

	terminal   bool
	exitReason error
	done       chan struct{}
}

func newChannelActor(number uint16, strategy consumer.Strategy, cfg Config, logger zerolog.Logger, writerFactory WriterFactory) *channelActor {
	ch := &channelActor{
		number:        number,
		inbox:         make(chan Event, 32),
		logger:        logger.With().Uint16("channel", number).Logger(),
		consumer:      strategy,
		cfg:           cfg.withDefaults(),
		writerFactory: writerFactory,
		rpc:           newRPCQueue(),
		flowActive:    true, // I5: a freshly opened channel starts unblocked
		done:          make(chan struct{}),
	}
	ch.consumerState = strategy.Init(cfg.ConsumerArgs)
	go ch.run()
	return ch
}

// run is the actor's single event loop: one goroutine per channel, one
// inbound queue. It is the only goroutine that ever touches an unexported
// channelActor field.
func (ch *channelActor) run() {
	for ev := range ch.inbox {
		ch.handleEvent(ev)
		if ch.terminal {
			return
		}
	}
}

func (ch *channelActor) handleEvent(ev Event) {
	switch e := ev.(type) {
	case callEvent:
		ch.handleCall(e)
	case castEvent:
		ch.handleCast(e)
	case closeEvent:
		ch.handleClose(e)
	case openEvent:
		ch.enqueue(e.sink, wire.ChannelOpen{}, nil)
	case nextPublishSeqnoEvent:
		e.reply <- ch.nextPubSeqno
	case registerHandlerEvent:
		ch.handleRegisterHandler(e)
	case callConsumerEvent:
		reply, newState := ch.consumer.HandleCall(e.msg, ch.consumerState)
		ch.consumerState = newState
		e.reply <- consumerCallReply{value: reply}
	case serverMethodEvent:
		ch.handleServerMethod(e.method, e.content)
	case connectionClosingEvent:
		ch.handleConnectionClosing(e.closeType, e.reason)
	case shutdownEvent:
		ch.exit(normalizeShutdownReason(e.reason))
	case timeoutFlushEvent:
		ch.exit(ErrTimedOutFlushingChannel)
	case timeoutCloseOkEvent:
		ch.exit(ErrTimedOutWaitingCloseOk)
	case channelExitEvent:
		ch.handleChannelExit(e.reason)
	}
}

func (ch *channelActor) handleCall(e callEvent) {
	if err := validateApplicationMethod(e.method); err != nil {
		e.sink.deliver(CallResult{Kind: ReplyInvalid, Err: err})
		return
	}
	if kind := ch.admit(e.method); kind != ReplyOk {
		e.sink.deliver(CallResult{Kind: kind})
		return
	}
	ch.updateConfirmCounters(e.method)
	ch.enqueue(e.sink, e.method, e.content)
}

func (ch *channelActor) handleCast(e castEvent) {
	if err := validateApplicationMethod(e.method); err != nil {
		ch.logger.Warn().Err(err).Str("method", e.method.MethodName()).Msg("cast rejected")
		return
	}
	if kind := ch.admit(e.method); kind != ReplyOk {
		ch.logger.Debug().Str("method", e.method.MethodName()).Msg("cast dropped; channel not admissible")
		return
	}
	ch.updateConfirmCounters(e.method)
	ch.enqueue(nil, e.method, e.content)
}

func (ch *channelActor) handleClose(e closeEvent) {
	if !ch.closing.isOpen() {
		e.sink.deliver(CallResult{Kind: ReplyClosing})
		return
	}
	ch.enqueue(e.sink, wire.ChannelClose{ReplyCode: e.code, ReplyText: e.text}, nil)
}

func (ch *channelActor) handleRegisterHandler(e registerHandlerEvent) {
	var slot *handlerSlot
	switch e.kind {
	case handlerReturn:
		slot = &ch.returnHandler
	case handlerConfirm:
		slot = &ch.confirmHandler
	case handlerFlow:
		slot = &ch.flowHandler
	}
	if e.sink == nil {
		slot.clear()
	} else {
		slot.set(e.sink)
	}
	close(e.reply)
}

// enqueue pushes a new RPC entry and resumes driving the queue.
func (ch *channelActor) enqueue(sink *replySink, method wire.Method, content *wire.Content) {
	ch.rpc.PushBack(&rpcEntry{sink: sink, method: method, content: content})
	ch.drive()
}

// postSelf queues an event the actor's own goroutine raised for itself
// (a timer firing, a lazily-created writer failing). The inbox is buffered
// precisely so this never has to block the goroutine that is also its only
// reader; a full buffer here means something is generating self-events far
// faster than the actor can apply them, so the event is dropped and logged
// rather than risking a deadlock.
func (ch *channelActor) postSelf(ev Event) {
	select {
	case ch.inbox <- ev:
	default:
		ch.logger.Error().Msg("internal inbox full; dropped self-posted event")
	}
}

// closeSelf is invoked from a goroutine spawned off the actor (see
// initiateLocalClose) and blocks for the close handshake's result, exactly
// like an application calling Channel.Close.
func (ch *channelActor) closeSelf(code uint16, text string) error {
	sink := newReplySink()
	ch.inbox <- closeEvent{code: code, text: text, sink: sink}
	return sink.wait().Err
}

// sendAsyncNoWait sends a method with no RPC correlation at all — used only
// for channel.close_ok, the one reply the actor itself originates rather
// than routing through the rpc queue.
func (ch *channelActor) sendAsyncNoWait(method wire.Method) {
	if ch.transport == nil {
		return
	}
	if err := ch.transport.Send(method, nil); err != nil {
		ch.logger.Warn().Err(err).Str("method", method.MethodName()).Msg("failed to send async reply; awaiting channel_exit")
	}
}

func (ch *channelActor) armFlushTimer() {
	ch.flushTimer = time.AfterFunc(ch.cfg.FlushTimeout, func() { ch.postSelf(timeoutFlushEvent{}) })
}

func (ch *channelActor) armCloseOkTimer() {
	ch.closeOkTimer = time.AfterFunc(ch.cfg.CloseOkTimeout, func() { ch.postSelf(timeoutCloseOkEvent{}) })
}

func (ch *channelActor) stopTimers() {
	if ch.flushTimer != nil {
		ch.flushTimer.Stop()
	}
	if ch.closeOkTimer != nil {
		ch.closeOkTimer.Stop()
	}
}

// shutdown is the entry point used once the connection actor has
// committed to tearing this channel down unconditionally.
func (ch *channelActor) shutdown(reason error) {
	ch.exit(normalizeShutdownReason(reason))
}

// exit is the actor's terminal transition: idempotent, drains every
// still-queued RPC entry with a terminal reply, releases the transport,
// notifies the consumer strategy, and unblocks anyone waiting on Done.
func (ch *channelActor) exit(reason error) {
	if ch.terminal {
		return
	}
	ch.terminal = true
	ch.exitReason = reason
	ch.stopTimers()

	terminalErr := reason
	if terminalErr == nil {
		terminalErr = ErrChannelTerminated
	}
	for _, entry := range ch.rpc.DrainAll() {
		entry.sink.deliver(CallResult{Kind: ReplyClosing, Err: terminalErr})
	}

	if ch.transport != nil {
		if cerr := ch.transport.Close(); cerr != nil {
			ch.logger.Warn().Err(cerr).Msg("error closing transport on exit")
		}
	}

	ch.consumer.Terminate(reason, ch.consumerState)
	close(ch.done)
}
