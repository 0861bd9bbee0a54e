package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyMethod(t *testing.T) {
	info, ok := ClassifyMethod(ChannelOpen{})
	require.True(t, ok)
	assert.Equal(t, ClassChannel, info.Class)
	assert.True(t, info.Synchronous)
	assert.False(t, info.HasContent)

	info, ok = ClassifyMethod(BasicPublish{})
	require.True(t, ok)
	assert.False(t, info.Synchronous)
	assert.True(t, info.HasContent)

	info, ok = ClassifyMethod(BasicDeliver{})
	require.True(t, ok)
	assert.False(t, info.Synchronous)
	assert.True(t, info.HasContent)
}

func TestIsConnectionClass(t *testing.T) {
	assert.True(t, IsConnectionClass(connectionOpenStub{}))
	assert.False(t, IsConnectionClass(ChannelOpen{}))
}

// connectionOpenStub exercises the classifier for a connection.open-shaped
// method; this package defines no connection-class method types.
type connectionOpenStub struct{}

func (connectionOpenStub) ClassID() ClassID   { return ClassConnection }
func (connectionOpenStub) MethodID() MethodID { return 40 }
func (connectionOpenStub) MethodName() string { return "connection.open" }

func TestIsSynchronous(t *testing.T) {
	assert.True(t, IsSynchronous(ChannelClose{}))
	assert.False(t, IsSynchronous(BasicAck{}))
}

func TestLookupException(t *testing.T) {
	exc := LookupException(404)
	assert.Equal(t, "not-found", exc.Name)
	assert.False(t, exc.Hard)

	exc = LookupException(504)
	assert.Equal(t, "channel-error", exc.Name)
	assert.True(t, exc.Hard)

	exc = LookupException(9999)
	assert.True(t, exc.Hard)
}

func TestIsGracefulReply(t *testing.T) {
	assert.True(t, IsGracefulReply(200))
	assert.False(t, IsGracefulReply(404))
}

func TestHasContent(t *testing.T) {
	assert.True(t, HasContent(BasicPublish{}))
	assert.False(t, HasContent(BasicQos{}))
}
