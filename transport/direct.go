package transport

import (
	"github.com/rs/zerolog"

	"github.com/corvid-labs/amqpchannel/directbroker"
	"github.com/corvid-labs/amqpchannel/wire"
)

// Direct is the transport variant that invokes the in-process broker's
// channel routine directly, bypassing socket framing entirely.
type Direct struct {
	broker *directbroker.Broker
	number uint16
	logger zerolog.Logger
}

// NewDirect binds a channel number to a broker so Send dispatches
// in-process instead of over a writer.
func NewDirect(broker *directbroker.Broker, number uint16, logger zerolog.Logger) *Direct {
	return &Direct{broker: broker, number: number, logger: logger.With().Str("transport", "direct").Logger()}
}

func (d *Direct) Send(method wire.Method, content *wire.Content) error {
	if err := d.broker.SendCommandSync(d.number, method, content); err != nil {
		d.logger.Warn().Err(err).Str("method", method.MethodName()).Msg("direct dispatch failed; awaiting channel_exit")
		return err
	}
	return nil
}

func (d *Direct) Close() error {
	d.broker.Unregister(d.number)
	return nil
}
