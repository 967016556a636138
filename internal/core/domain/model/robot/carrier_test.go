package robot_test

import (
	"testing"

	"automail/internal/core/domain/model/mail"
	"automail/internal/core/domain/model/robot"
	"automail/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(t *testing.T, id string, dest int, weight int, fragile bool) *mail.Item {
	t.Helper()
	item, err := mail.NewItem(id, kernelFloor(dest), 0, weight, fragile)
	require.NoError(t, err)
	return item
}

func TestNewCarrier(t *testing.T) {
	t.Run("should create an empty carrier", func(t *testing.T) {
		c, err := robot.NewCarrier(3)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, 3, c.Capacity())
		assert.Equal(t, 3, c.Free())
		assert.True(t, c.IsEmpty())
		assert.False(t, c.IsFull())
		assert.Nil(t, c.Peek())
	})

	t.Run("should reject a non-positive capacity", func(t *testing.T) {
		c, err := robot.NewCarrier(0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, c)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var c robot.Carrier

		assert.Equal(t, robot.ErrCarrierIsNotConstructed, c.Validate())
	})
}

func TestCarrier_PushPop(t *testing.T) {
	t.Run("should pop in last-in-first-out order", func(t *testing.T) {
		c, _ := robot.NewCarrier(3)
		a := newItem(t, "A", 1, 100, false)
		b := newItem(t, "B", 2, 100, false)

		require.NoError(t, c.Push(a))
		require.NoError(t, c.Push(b))
		assert.Equal(t, b, c.Peek())
		assert.Equal(t, []*mail.Item{a, b}, c.Items())

		first, err := c.Pop()
		require.NoError(t, err)
		second, err := c.Pop()
		require.NoError(t, err)

		assert.Equal(t, b, first)
		assert.Equal(t, a, second)
		assert.True(t, c.IsEmpty())
	})

	t.Run("should refuse to exceed capacity", func(t *testing.T) {
		c, _ := robot.NewCarrier(1)
		require.NoError(t, c.Push(newItem(t, "A", 1, 100, false)))

		err := c.Push(newItem(t, "B", 1, 100, false))

		require.ErrorIs(t, err, robot.ErrCapacityExceeded)
		assert.Equal(t, 1, c.Len())
		assert.True(t, c.IsFull())
		assert.Equal(t, 0, c.Free())
	})

	t.Run("should fail to pop from an empty carrier", func(t *testing.T) {
		c, _ := robot.NewCarrier(1)

		item, err := c.Pop()

		require.ErrorIs(t, err, robot.ErrCarrierEmpty)
		assert.Nil(t, item)
	})

	t.Run("should reject an unconstructed item", func(t *testing.T) {
		c, _ := robot.NewCarrier(1)

		err := c.Push(&mail.Item{})

		require.ErrorIs(t, err, mail.ErrItemIsNotConstructed)
		assert.True(t, c.IsEmpty())
	})
}

func TestCarrier_FragileCount(t *testing.T) {
	c, _ := robot.NewCarrier(3)
	require.NoError(t, c.Push(newItem(t, "F1", 1, 100, true)))
	require.NoError(t, c.Push(newItem(t, "A", 1, 100, false)))
	require.NoError(t, c.Push(newItem(t, "F2", 1, 100, true)))

	assert.Equal(t, 2, c.FragileCount())
	assert.True(t, c.PeekFragile())

	_, _ = c.Pop()
	assert.Equal(t, 1, c.FragileCount())
	assert.False(t, c.PeekFragile())

	_, _ = c.Pop()
	_, _ = c.Pop()
	assert.Equal(t, 0, c.FragileCount())
	assert.False(t, c.PeekFragile())
}
