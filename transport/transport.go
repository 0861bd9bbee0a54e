// Package transport implements the uniform "send method [+content]" facade
// the channel actor talks to, with two variants: Network (frames serialized
// by a writer actor) and Direct (in-process broker bypass). Frame encoding
// and socket ownership are out of scope here — the FrameWriter this package
// closes over is the external collaborator that owns them.
package transport

import "github.com/corvid-labs/amqpchannel/wire"

// Transport is the uniform surface both variants present to the channel
// actor: hand a method, optionally with content, and it is delivered or
// the error surfaces out-of-band via a later channel_exit event.
type Transport interface {
	Send(method wire.Method, content *wire.Content) error
	// Close releases whatever resource this transport owns (the writer's
	// connection, or the broker registration). The channel actor calls
	// this exactly once, on exit.
	Close() error
}
