package amqpchan

// closingKind enumerates a channel's three closing states.
type closingKind int

const (
	closingOpen closingKind = iota
	closingJustChannel
	closingConnection
)

// closingState is a channel's closing field: one of Open, JustChannel, or
// Connection(reason).
type closingState struct {
	kind   closingKind
	reason error // only meaningful when kind == closingConnection
}

func (c closingState) isOpen() bool { return c.kind == closingOpen }

// handleConnectionClosing reacts to the connection actor announcing it is
// closing: either let in-flight RPCs flush under a bounded timeout, or
// shut down immediately.
func (ch *channelActor) handleConnectionClosing(closeType CloseType, reason error) {
	switch {
	case closeType == CloseFlush && ch.closing.kind == closingOpen && ch.rpc.Len() > 0:
		ch.closing = closingState{kind: closingConnection, reason: reason}
		ch.armFlushTimer()
	case closeType == CloseFlush && ch.closing.kind == closingJustChannel && ch.rpc.Len() > 0:
		ch.closing = closingState{kind: closingConnection, reason: reason}
		ch.armCloseOkTimer()
	default:
		ch.closing = closingState{kind: closingConnection, reason: reason}
		ch.shutdown(ConnectionClosing{Inner: reason})
	}
}
