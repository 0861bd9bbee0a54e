package amqpconn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelAllocatorBasic(t *testing.T) {
	alloc := NewChannelAllocator(10)

	id1, ok := alloc.Allocate()
	require.True(t, ok)
	assert.GreaterOrEqual(t, id1, uint16(1))
	assert.LessOrEqual(t, id1, uint16(10))

	id2, ok := alloc.Allocate()
	require.True(t, ok)
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 8, alloc.Available())
}

func TestChannelAllocatorNeverHandsOutZero(t *testing.T) {
	alloc := NewChannelAllocator(3)
	seen := map[uint16]bool{}
	for i := 0; i < 3; i++ {
		id, ok := alloc.Allocate()
		require.True(t, ok)
		assert.NotZero(t, id)
		seen[id] = true
	}
	assert.Len(t, seen, 3)

	_, ok := alloc.Allocate()
	assert.False(t, ok)
}

func TestChannelAllocatorFreeReuse(t *testing.T) {
	alloc := NewChannelAllocator(1)

	id, ok := alloc.Allocate()
	require.True(t, ok)

	assert.True(t, alloc.Free(id))
	assert.False(t, alloc.Free(id), "double free should report false")

	again, ok := alloc.Allocate()
	require.True(t, ok)
	assert.Equal(t, id, again)
}

func TestChannelAllocatorFreeOutOfRange(t *testing.T) {
	alloc := NewChannelAllocator(5)
	assert.False(t, alloc.Free(0))
	assert.False(t, alloc.Free(6))
}
