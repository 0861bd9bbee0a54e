// Package directbroker is the in-process broker stand-in behind the
// channel actor's "direct" transport variant. It is intentionally
// minimal: broker-side routing (exchanges, queues, bindings) is out of
// scope here, so this package only provides enough of a collaborator to
// exercise the Direct transport's send_command / send_command_sync /
// send_command_and_notify inputs end to end in tests.
package directbroker

import (
	"sync"

	"github.com/google/uuid"

	"github.com/corvid-labs/amqpchannel/wire"
)

// ChannelRoutine is the in-process broker-side handler for one channel.
// A real broker would route methods through exchange/queue/binding
// tables; this stand-in just forwards to a single callback so tests can
// script the broker's behavior.
type ChannelRoutine func(method wire.Method, content *wire.Content) error

// Broker is a minimal registry of per-channel routines.
type Broker struct {
	mu       sync.Mutex
	routines map[uint16]ChannelRoutine
}

// New creates an empty broker.
func New() *Broker {
	return &Broker{routines: make(map[uint16]ChannelRoutine)}
}

// Register installs the in-process routine invoked for methods sent on
// channel number.
func (b *Broker) Register(number uint16, routine ChannelRoutine) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routines[number] = routine
}

// Unregister removes the routine for number, e.g. once its channel has
// terminated.
func (b *Broker) Unregister(number uint16) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.routines, number)
}

// SendCommand dispatches method[, content] to the routine registered for
// number, fire-and-forget with no acknowledgement.
func (b *Broker) SendCommand(number uint16, method wire.Method, content *wire.Content) error {
	routine := b.lookup(number)
	if routine == nil {
		return ErrNoRoutine
	}
	return routine(method, content)
}

// SendCommandSync dispatches method[, content] and is acked immediately
// once the in-process call returns, rather than waiting for an
// asynchronous broker reply.
func (b *Broker) SendCommandSync(number uint16, method wire.Method, content *wire.Content) error {
	return b.SendCommand(number, method, content)
}

// Notifier is called once a send_command_and_notify dispatch has completed,
// whether or not it succeeded. correlationID
// identifies this particular dispatch, letting a producer match the
// notification back to the request it issued when several are in flight.
type Notifier func(correlationID string)

// SendCommandAndNotify dispatches method[, content] and, once that
// completes, invokes notify with a fresh correlation id. notify is called
// even when the dispatch fails; the dispatch error is returned.
func (b *Broker) SendCommandAndNotify(number uint16, method wire.Method, content *wire.Content, notify Notifier) error {
	correlationID := uuid.New().String()
	err := b.SendCommand(number, method, content)
	if notify != nil {
		notify(correlationID)
	}
	return err
}

func (b *Broker) lookup(number uint16) ChannelRoutine {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.routines[number]
}

// ErrNoRoutine is returned when a channel number has no registered
// in-process routine (the broker-side channel never started, or already
// terminated).
var ErrNoRoutine = errNoRoutine{}

type errNoRoutine struct{}

func (errNoRoutine) Error() string { return "directbroker: no routine registered for channel" }
