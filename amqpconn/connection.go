package amqpconn

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/corvid-labs/amqpchannel/amqpchan"
	"github.com/corvid-labs/amqpchannel/consumer"
	"github.com/corvid-labs/amqpchannel/directbroker"
	"github.com/corvid-labs/amqpchannel/transport"
)

// ErrNoChannelsAvailable is returned by OpenChannel when every number in
// the allocator's range is already in use.
var ErrNoChannelsAvailable = errors.New("amqpconn: no channel numbers available")

// Connection stands in for the connection actor that owns channel.open
// admission, channel-number bookkeeping, and fan-out of
// connection_closing to every channel it opened (no separate shutdown
// signal is sent). It talks to its
// channels over the in-process direct broker rather than a real socket —
// the network transport variant remains available to a caller that
// supplies its own FrameWriter/dialer, via NewNetworkWriterFactory.
type Connection struct {
	broker    *directbroker.Broker
	allocator *ChannelAllocator
	logger    zerolog.Logger

	mu       sync.Mutex
	channels map[uint16]*amqpchan.Channel
}

// NewConnection constructs a Connection backed by a fresh direct broker and
// an allocator covering channel numbers 1..maxChannels.
func NewConnection(maxChannels uint16, logger zerolog.Logger) *Connection {
	return &Connection{
		broker:    directbroker.New(),
		allocator: NewChannelAllocator(maxChannels),
		logger:    logger.With().Str("component", "amqpconn").Logger(),
		channels:  make(map[uint16]*amqpchan.Channel),
	}
}

// OpenChannel allocates a channel number, starts the channel actor over
// the direct transport, and drives channel.open before returning.
//
// routineFactory stands in for whatever actually behaves like an AMQP
// server on the other end of the direct broker — real server logic is out
// of scope here. It receives the not-yet-opened channel handle so the
// routine it returns can close over it and call DeliverServerMethod to
// simulate replies; Open blocks until that routine replies with
// channel.open-ok, with no timeout of its own. Pass
// nil to skip registration entirely and register later via Broker(), e.g.
// for a caller driving the network transport instead.
func (c *Connection) OpenChannel(strategy consumer.Strategy, cfg amqpchan.Config, routineFactory func(ch *amqpchan.Channel) directbroker.ChannelRoutine) (*amqpchan.Channel, error) {
	number, ok := c.allocator.Allocate()
	if !ok {
		return nil, ErrNoChannelsAvailable
	}

	writerFactory := func() (transport.Transport, error) {
		return transport.NewDirect(c.broker, number, c.logger), nil
	}
	ch := amqpchan.NewChannel(number, strategy, cfg, c.logger, writerFactory)

	if routineFactory != nil {
		c.broker.Register(number, routineFactory(ch))
	}

	if result := ch.Open(); !result.Ok() {
		c.broker.Unregister(number)
		c.allocator.Free(number)
		if result.Err != nil {
			return nil, result.Err
		}
		return nil, errors.New("amqpconn: channel.open did not complete")
	}

	c.mu.Lock()
	c.channels[number] = ch
	c.mu.Unlock()
	return ch, nil
}

// Broker exposes the direct broker backing this connection so a caller can
// register or replace a channel's server-side routine after the fact.
func (c *Connection) Broker() *directbroker.Broker { return c.broker }

// NewNetworkWriterFactory adapts an externally owned FrameWriter into the
// WriterFactory a channel needs, for callers that have a real connection
// instead of this package's direct broker.
func NewNetworkWriterFactory(dial func() (transport.FrameWriter, error), logger zerolog.Logger) amqpchan.WriterFactory {
	return func() (transport.Transport, error) {
		writer, err := dial()
		if err != nil {
			return nil, err
		}
		return transport.NewNetwork(writer, logger), nil
	}
}

// Get returns the channel registered under number, if any.
func (c *Connection) Get(number uint16) (*amqpchan.Channel, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.channels[number]
	return ch, ok
}

// Forget drops number from the registry and frees it back to the
// allocator, once its owner has observed the channel's Done being closed.
func (c *Connection) Forget(number uint16) {
	c.mu.Lock()
	delete(c.channels, number)
	c.mu.Unlock()
	c.broker.Unregister(number)
	c.allocator.Free(number)
}

// RouteExit delivers a fault observed on the direct path for a specific
// channel number, e.g. from a broker-side goroutine that can no longer
// reach the channel through SendCommand.
func (c *Connection) RouteExit(number uint16, reason error) {
	if ch, ok := c.Get(number); ok {
		ch.NotifyChannelExit(reason)
	}
}

// NotifyClosing broadcasts connection_closing to every channel this
// connection has opened. closeType selects whether each channel is given
// a chance to flush its in-flight RPC before tearing down.
func (c *Connection) NotifyClosing(closeType amqpchan.CloseType, reason error) {
	c.mu.Lock()
	targets := make([]*amqpchan.Channel, 0, len(c.channels))
	for _, ch := range c.channels {
		targets = append(targets, ch)
	}
	c.mu.Unlock()

	for _, ch := range targets {
		ch.NotifyConnectionClosing(closeType, reason)
	}
}
