package consumer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvid-labs/amqpchannel/wire"
)

func TestFuncConsumerDefaultsAreNoOps(t *testing.T) {
	fc := &FuncConsumer{}
	assert.Equal(t, "state", fc.Init("state"))
	assert.Equal(t, "state", fc.HandleConsumeOk(wire.BasicConsumeOk{}, wire.BasicConsume{}, "state"))
	assert.Equal(t, "state", fc.HandleCancelOk(wire.BasicCancelOk{}, wire.BasicCancel{}, "state"))
	assert.Equal(t, "state", fc.HandleCancel(wire.BasicCancel{}, "state"))
	assert.Equal(t, "state", fc.HandleDeliver(Delivery{}, "state"))

	reply, state := fc.HandleCall("ping", "state")
	assert.Nil(t, reply)
	assert.Equal(t, "state", state)

	fc.Terminate(nil, "state") // must not panic
}

func TestFuncConsumerDelegates(t *testing.T) {
	var delivered []string
	fc := &FuncConsumer{
		OnDeliver: func(d Delivery, state any) any {
			delivered = append(delivered, d.Method.ConsumerTag)
			return state
		},
	}

	fc.HandleDeliver(Delivery{Method: wire.BasicDeliver{ConsumerTag: "ctag-1"}}, nil)
	assert.Equal(t, []string{"ctag-1"}, delivered)
}

func TestNewConsumerTag(t *testing.T) {
	a := NewConsumerTag("orders")
	b := NewConsumerTag("orders")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "ctag-orders-"))
}
