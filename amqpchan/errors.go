package amqpchan

import (
	"errors"
	"fmt"

	"github.com/corvid-labs/amqpchannel/wire"
)

// Application-misuse errors. Reported synchronously; state is left
// unchanged.
var (
	ErrUseConnectionOpener   = errors.New("amqpchan: channel.open must be issued by the connection actor, not the application")
	ErrUseCloseOp            = errors.New("amqpchan: channel.close must be issued via Close, not Call/Cast")
	ErrConnectionClassMethod = errors.New("amqpchan: connection-class methods belong to the connection actor, not a channel")
)

// ErrChannelTerminated is delivered to any caller still waiting on a reply
// when the channel actor exits for a reason that carries no more specific
// error of its own (e.g. a graceful local close).
var ErrChannelTerminated = errors.New("amqpchan: channel terminated")

// AmqpError is a server-pushed AMQP protocol exception delivered out of
// band via a channel_exit event on the direct transport path. Hard
// exceptions mandate connection closure; soft ones only this channel's
// closure.
type AmqpError struct {
	Name        string
	Code        uint16
	Explanation string
	Hard        bool
	Method      wire.Method
}

func (e *AmqpError) Error() string {
	if e.Method != nil {
		return fmt.Sprintf("amqp exception %s (%d): %s (on %s)", e.Name, e.Code, e.Explanation, e.Method.MethodName())
	}
	return fmt.Sprintf("amqp exception %s (%d): %s", e.Name, e.Code, e.Explanation)
}

// NewAmqpError builds an AmqpError from a reply code via the wire
// exception table.
func NewAmqpError(code uint16, method wire.Method) *AmqpError {
	exc := wire.LookupException(code)
	return &AmqpError{Name: exc.Name, Code: exc.Code, Explanation: exc.Explanation, Hard: exc.Hard, Method: method}
}

// ServerInitiatedClose is the exit reason when the server sends
// channel.close.
type ServerInitiatedClose struct {
	Code uint16
	Text string
}

func (e ServerInitiatedClose) Error() string {
	return fmt.Sprintf("server initiated channel close: %d %s", e.Code, e.Text)
}

// ServerInitiatedHardClose is nested inside ConnectionClosing when a
// server-pushed hard AMQP exception is observed on the direct path.
type ServerInitiatedHardClose struct {
	Code uint16
	Text string
}

func (e ServerInitiatedHardClose) Error() string {
	return fmt.Sprintf("server initiated hard close: %d %s", e.Code, e.Text)
}

// ConnectionClosing wraps a reason propagated because the connection
// actor is closing. Exit reasons that are ConnectionClosing are expected
// to be observed and acted on by the connection actor.
type ConnectionClosing struct {
	Inner error
}

func (e ConnectionClosing) Error() string { return fmt.Sprintf("connection closing: %v", e.Inner) }
func (e ConnectionClosing) Unwrap() error { return e.Inner }

// InfrastructureDied is the exit reason for any non-AmqpError
// channel_exit — the transport itself failed rather than the protocol
// raising an exception.
type InfrastructureDied struct {
	Inner error
}

func (e InfrastructureDied) Error() string { return fmt.Sprintf("infrastructure died: %v", e.Inner) }
func (e InfrastructureDied) Unwrap() error { return e.Inner }

// ServerMisbehaved is the exit reason when the server sends a
// connection-class method on a non-zero channel and the mapped exception
// is hard.
type ServerMisbehaved struct {
	Inner error
}

func (e ServerMisbehaved) Error() string { return fmt.Sprintf("server misbehaved: %v", e.Inner) }
func (e ServerMisbehaved) Unwrap() error { return e.Inner }

// Fatal timeout sentinels for the closing handshake.
var (
	ErrTimedOutFlushingChannel = errors.New("timed_out_flushing_channel")
	ErrTimedOutWaitingCloseOk  = errors.New("timed_out_waiting_close_ok")
)

// normalizeShutdownReason normalizes a graceful exit: a graceful AMQP
// reply code, or a ConnectionClosing wrapping a nil inner reason,
// normalizes to nil (the Go idiom for "normal exit"). Only a close-reply's
// own code is treated as graceful, never an unrelated reply-code triple.
func normalizeShutdownReason(reason error) error {
	switch r := reason.(type) {
	case nil:
		return nil
	case ServerInitiatedClose:
		if wire.IsGracefulReply(r.Code) {
			return nil
		}
		return reason
	case ConnectionClosing:
		if r.Inner == nil {
			return nil
		}
		return reason
	default:
		return reason
	}
}
