package amqpchan

import (
	"os"
	"sync/atomic"
	"time"

	_ "code.cloudfoundry.org/go-diodes" // lockless ring buffer backing the diode writer below
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
)

// NewDefaultLogger builds the package's default logger: a
// zerolog.ConsoleWriter fed through a go-diodes ring buffer so a slow
// sink (a blocked terminal, a backed-up log shipper) can never apply
// backpressure to the channel actor's single-threaded event loop.
//
// go-diodes is otherwise a poor fit for this module — its lossy-ring-buffer
// semantics (overwrite-oldest-on-overflow) directly conflict with I1/I2's
// requirement that RPC replies and server events are never dropped. Logging
// is the one place in this module where dropping under pressure is exactly
// the desired behavior, so that's where it's wired in.
func NewDefaultLogger(level zerolog.Level) zerolog.Logger {
	writer := diode.NewWriter(os.Stdout, 1000, 10*time.Millisecond, func(missed int) {
		droppedLogLines.Add(uint64(missed))
	})
	return zerolog.New(zerolog.ConsoleWriter{Out: writer}).Level(level).With().Timestamp().Logger()
}

// droppedLogLines counts log lines the diode writer dropped because the
// sink fell behind. Exposed for tests; a real deployment would wire this
// into its metrics collector instead of just counting in memory.
var droppedLogLines = &diodeDropCounter{}

type diodeDropCounter struct {
	count atomic.Uint64
}

func (c *diodeDropCounter) Add(n uint64) { c.count.Add(n) }
func (c *diodeDropCounter) Load() uint64 { return c.count.Load() }
