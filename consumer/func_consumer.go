package consumer

import (
	"github.com/google/uuid"

	"github.com/corvid-labs/amqpchannel/wire"
)

// FuncConsumer adapts plain functions into a Strategy, for callers that
// don't need to carry their own state type. Every field is optional; a
// nil callback is a no-op.
type FuncConsumer struct {
	OnInit      func(args any) any
	OnConsumeOk func(consumeOk wire.BasicConsumeOk, original wire.BasicConsume, state any) any
	OnCancelOk  func(cancelOk wire.BasicCancelOk, original wire.BasicCancel, state any) any
	OnCancel    func(cancel wire.BasicCancel, state any) any
	OnDeliver   func(delivery Delivery, state any) any
	OnCall      func(msg any, state any) (any, any)
	OnTerminate func(reason error, state any)
}

var _ Strategy = (*FuncConsumer)(nil)

func (f *FuncConsumer) Init(args any) any {
	if f.OnInit != nil {
		return f.OnInit(args)
	}
	return args
}

func (f *FuncConsumer) HandleConsumeOk(consumeOk wire.BasicConsumeOk, original wire.BasicConsume, state any) any {
	if f.OnConsumeOk != nil {
		return f.OnConsumeOk(consumeOk, original, state)
	}
	return state
}

func (f *FuncConsumer) HandleCancelOk(cancelOk wire.BasicCancelOk, original wire.BasicCancel, state any) any {
	if f.OnCancelOk != nil {
		return f.OnCancelOk(cancelOk, original, state)
	}
	return state
}

func (f *FuncConsumer) HandleCancel(cancel wire.BasicCancel, state any) any {
	if f.OnCancel != nil {
		return f.OnCancel(cancel, state)
	}
	return state
}

func (f *FuncConsumer) HandleDeliver(delivery Delivery, state any) any {
	if f.OnDeliver != nil {
		return f.OnDeliver(delivery, state)
	}
	return state
}

func (f *FuncConsumer) HandleCall(msg any, state any) (any, any) {
	if f.OnCall != nil {
		return f.OnCall(msg, state)
	}
	return nil, state
}

func (f *FuncConsumer) Terminate(reason error, state any) {
	if f.OnTerminate != nil {
		f.OnTerminate(reason, state)
	}
}

// NewConsumerTag generates a default consumer tag for when the application
// leaves one unset, using a random uuid rather than a wall-clock timestamp
// so tags stay unique even when several consumers start within the same
// clock tick.
func NewConsumerTag(queue string) string {
	return "ctag-" + queue + "-" + uuid.New().String()
}
