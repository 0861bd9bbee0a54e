package amqpconn

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/amqpchannel/amqpchan"
	"github.com/corvid-labs/amqpchannel/consumer"
	"github.com/corvid-labs/amqpchannel/directbroker"
	"github.com/corvid-labs/amqpchannel/wire"
)

// echoOpenOk simulates the minimum a server needs to do to let
// channel.open complete over the direct transport.
func echoOpenOk(ch *amqpchan.Channel) directbroker.ChannelRoutine {
	return func(method wire.Method, content *wire.Content) error {
		if _, ok := method.(wire.ChannelOpen); ok {
			ch.DeliverServerMethod(wire.ChannelOpenOk{}, nil)
		}
		return nil
	}
}

func TestConnectionOpenChannelRoundTrip(t *testing.T) {
	conn := NewConnection(16, zerolog.Nop())

	ch, err := conn.OpenChannel(&consumer.FuncConsumer{}, amqpchan.DefaultConfig(), echoOpenOk)
	require.NoError(t, err)
	require.NotNil(t, ch)

	got, ok := conn.Get(ch.Number())
	assert.True(t, ok)
	assert.Same(t, ch, got)
}

func TestConnectionOpenChannelExhaustsAllocator(t *testing.T) {
	conn := NewConnection(1, zerolog.Nop())

	ch, err := conn.OpenChannel(&consumer.FuncConsumer{}, amqpchan.DefaultConfig(), echoOpenOk)
	require.NoError(t, err)
	require.NotNil(t, ch)

	_, err = conn.OpenChannel(&consumer.FuncConsumer{}, amqpchan.DefaultConfig(), echoOpenOk)
	assert.ErrorIs(t, err, ErrNoChannelsAvailable)
}

func TestConnectionForgetFreesNumber(t *testing.T) {
	conn := NewConnection(1, zerolog.Nop())

	ch, err := conn.OpenChannel(&consumer.FuncConsumer{}, amqpchan.DefaultConfig(), echoOpenOk)
	require.NoError(t, err)

	conn.Forget(ch.Number())
	_, ok := conn.Get(ch.Number())
	assert.False(t, ok)

	_, err = conn.OpenChannel(&consumer.FuncConsumer{}, amqpchan.DefaultConfig(), echoOpenOk)
	assert.NoError(t, err)
}

func TestConnectionNotifyClosingReachesEveryChannel(t *testing.T) {
	conn := NewConnection(4, zerolog.Nop())

	var channels []*amqpchan.Channel
	for i := 0; i < 3; i++ {
		ch, err := conn.OpenChannel(&consumer.FuncConsumer{}, amqpchan.DefaultConfig(), echoOpenOk)
		require.NoError(t, err)
		channels = append(channels, ch)
	}

	conn.NotifyClosing(amqpchan.CloseAbrupt, nil)

	for _, ch := range channels {
		select {
		case <-ch.Done():
		case <-time.After(time.Second):
			t.Fatalf("channel %d never exited after connection_closing", ch.Number())
		}
	}
}

func TestConnectionRouteExitDeliversToChannel(t *testing.T) {
	conn := NewConnection(4, zerolog.Nop())

	ch, err := conn.OpenChannel(&consumer.FuncConsumer{}, amqpchan.DefaultConfig(), echoOpenOk)
	require.NoError(t, err)

	conn.RouteExit(ch.Number(), amqpchan.NewAmqpError(504, wire.BasicPublish{}))

	select {
	case <-ch.Done():
	case <-time.After(time.Second):
		t.Fatal("channel never exited after RouteExit with a hard AMQP error")
	}
}
