package transport

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/amqpchannel/directbroker"
	"github.com/corvid-labs/amqpchannel/wire"
)

type fakeWriter struct {
	sent   []wire.Method
	failOn error
	closed bool
}

func (f *fakeWriter) WriteMethod(method wire.Method, content *wire.Content) error {
	if f.failOn != nil {
		return f.failOn
	}
	f.sent = append(f.sent, method)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestNetworkSendSuccess(t *testing.T) {
	w := &fakeWriter{}
	n := NewNetwork(w, zerolog.Nop())

	require.NoError(t, n.Send(wire.ChannelOpen{}, nil))
	assert.Len(t, w.sent, 1)
}

func TestNetworkSendReturnsWrappedError(t *testing.T) {
	boom := errors.New("boom")
	w := &fakeWriter{failOn: boom}
	n := NewNetwork(w, zerolog.Nop())

	err := n.Send(wire.ChannelOpen{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestNetworkClose(t *testing.T) {
	w := &fakeWriter{}
	n := NewNetwork(w, zerolog.Nop())
	require.NoError(t, n.Close())
	assert.True(t, w.closed)
}

func TestDirectSendRoutesToBroker(t *testing.T) {
	b := directbroker.New()
	var got wire.Method
	b.Register(7, func(method wire.Method, content *wire.Content) error {
		got = method
		return nil
	})

	d := NewDirect(b, 7, zerolog.Nop())
	require.NoError(t, d.Send(wire.BasicQos{PrefetchCount: 10}, nil))
	assert.Equal(t, wire.BasicQos{PrefetchCount: 10}, got)
}

func TestDirectSendNoRoutine(t *testing.T) {
	b := directbroker.New()
	d := NewDirect(b, 7, zerolog.Nop())
	err := d.Send(wire.ChannelOpen{}, nil)
	assert.ErrorIs(t, err, directbroker.ErrNoRoutine)
}

func TestDirectClose(t *testing.T) {
	b := directbroker.New()
	b.Register(7, func(wire.Method, *wire.Content) error { return nil })
	d := NewDirect(b, 7, zerolog.Nop())
	require.NoError(t, d.Close())
	err := b.SendCommand(7, wire.ChannelOpen{}, nil)
	assert.ErrorIs(t, err, directbroker.ErrNoRoutine)
}
