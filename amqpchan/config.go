package amqpchan

import "time"

// Config carries the channel actor's tunables. No external config file
// loading is in scope here — the connection-level factory that owns
// dial/auth/vhost settings is an external collaborator; a channel only
// needs its own closing-handshake timeouts and initial consumer args.
type Config struct {
	// FlushTimeout bounds how long the channel waits for in-flight RPCs
	// to drain when the connection starts closing while still Open.
	// Defaults to 60s.
	FlushTimeout time.Duration
	// CloseOkTimeout bounds how long the channel waits for
	// channel.close_ok when the connection starts closing (flush) after the
	// channel has itself committed to JustChannel. A local close with no
	// connection closing is not bounded by it. Defaults to 3s.
	CloseOkTimeout time.Duration
	// ConsumerArgs is passed verbatim to the consumer strategy's Init
	// callback.
	ConsumerArgs any
}

// DefaultConfig returns the default closing-handshake timeouts.
func DefaultConfig() Config {
	return Config{
		FlushTimeout:   60 * time.Second,
		CloseOkTimeout: 3 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	if c.FlushTimeout <= 0 {
		c.FlushTimeout = 60 * time.Second
	}
	if c.CloseOkTimeout <= 0 {
		c.CloseOkTimeout = 3 * time.Second
	}
	return c
}
