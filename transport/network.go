package transport

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/corvid-labs/amqpchannel/wire"
)

// FrameWriter is the external writer actor that serializes frames onto the
// socket. It is a collaborator, not something this package implements —
// the frame encoder/decoder and the writer that owns the socket are out
// of scope for the channel.
type FrameWriter interface {
	WriteMethod(method wire.Method, content *wire.Content) error
	Close() error
}

// WriterFactory lazily creates a channel's writer, invoked exactly once
// from pre_do(channel.open).
type WriterFactory func() (FrameWriter, error)

// Network is the transport variant backed by a writer that synchronously
// serializes frames to a connection-owning actor. A writer error is logged
// and returned from Send wrapped; the channel actor then stops driving its
// queue without replying and waits for an explicit channel_exit event.
type Network struct {
	writer FrameWriter
	logger zerolog.Logger
}

// NewNetwork wraps an already-created writer. Construction itself is the
// lazy step: callers invoke this from the channel's pre_do(channel.open)
// hook via a WriterFactory, not eagerly at channel creation.
func NewNetwork(writer FrameWriter, logger zerolog.Logger) *Network {
	return &Network{writer: writer, logger: logger.With().Str("transport", "network").Logger()}
}

func (n *Network) Send(method wire.Method, content *wire.Content) error {
	if err := n.writer.WriteMethod(method, content); err != nil {
		n.logger.Warn().Err(err).Str("method", method.MethodName()).Msg("write failed; awaiting channel_exit")
		return fmt.Errorf("network transport: %w", err)
	}
	return nil
}

func (n *Network) Close() error {
	return n.writer.Close()
}
