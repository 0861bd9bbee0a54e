package amqpchan

import "github.com/corvid-labs/amqpchannel/wire"

// validateApplicationMethod rejects application attempts to bypass the
// dedicated Open/Close operations or to send a connection-class method on
// a channel.
func validateApplicationMethod(method wire.Method) error {
	switch method.(type) {
	case wire.ChannelOpen:
		return ErrUseConnectionOpener
	case wire.ChannelClose:
		return ErrUseCloseOp
	}
	if wire.IsConnectionClass(method) {
		return ErrConnectionClassMethod
	}
	return nil
}

// admit is the flow/closing admission gate, checked in order: closing
// takes precedence over flow. Returns the zero ReplyKind (ReplyOk) when
// the method is admissible.
func (ch *channelActor) admit(method wire.Method) ReplyKind {
	if !ch.closing.isOpen() {
		return ReplyClosing
	}
	if wire.HasContent(method) && !ch.flowActive {
		return ReplyBlocked
	}
	return ReplyOk
}

// updateConfirmCounters applies the publisher-confirm sequence number
// bookkeeping, once a method has been admitted but before it is enqueued.
func (ch *channelActor) updateConfirmCounters(method wire.Method) {
	switch method.(type) {
	case wire.ConfirmSelect:
		if ch.nextPubSeqno == 0 {
			ch.nextPubSeqno = 1
		}
	case wire.BasicPublish:
		if ch.nextPubSeqno > 0 {
			ch.nextPubSeqno++
		}
	}
}
