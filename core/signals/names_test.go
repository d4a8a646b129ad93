package signals_test

import (
	"testing"

	"github.com/dmitrymomot/signals/core/signals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	t.Parallel()

	t.Run("seeded with wildcard", func(t *testing.T) {
		t.Parallel()
		n := signals.NewNames("simple signal", "key args")

		assert.True(t, n.Contains(signals.Wildcard))
		assert.True(t, n.Contains("simple signal"))
		assert.False(t, n.Contains("pos args"))
		assert.Equal(t, 3, n.Len())
		assert.Equal(t, []signals.Key{
			signals.Wildcard,
			signals.KeyOf("simple signal"),
			signals.KeyOf("key args"),
		}, n.List())
	})

	t.Run("add ignores duplicates", func(t *testing.T) {
		t.Parallel()
		n := signals.NewNames()
		require.NoError(t, n.Add("a", "b", "a"))
		assert.Equal(t, 3, n.Len())
	})

	t.Run("add reports invalid names and keeps valid ones", func(t *testing.T) {
		t.Parallel()
		n := signals.NewNames()
		err := n.Add("a", nil, []int{1}, "b")
		require.ErrorIs(t, err, signals.ErrInvalidArgument)
		assert.True(t, n.Contains("a"))
		assert.True(t, n.Contains("b"))
		assert.False(t, n.Contains([]int{1}))
	})

	t.Run("remove reports unknown names and removes the rest", func(t *testing.T) {
		t.Parallel()
		n := signals.NewNames("a", "b", "c")
		err := n.Remove("b", "missing")
		require.ErrorIs(t, err, signals.ErrUnknownName)
		assert.Contains(t, err.Error(), "missing")
		assert.False(t, n.Contains("b"))
		assert.Equal(t, []signals.Key{signals.Wildcard, signals.KeyOf("a"), signals.KeyOf("c")}, n.List())

		require.NoError(t, n.Remove("a"))
		assert.Equal(t, 2, n.Len())
	})

	t.Run("nil set contains everything", func(t *testing.T) {
		t.Parallel()
		var n *signals.Names
		assert.True(t, n.Contains("anything"))
	})
}
