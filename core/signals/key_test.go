package signals_test

import (
	"testing"

	"github.com/dmitrymomot/signals/core/signals"
	"github.com/stretchr/testify/assert"
)

func TestKeyOf(t *testing.T) {
	t.Parallel()

	t.Run("nil is none", func(t *testing.T) {
		t.Parallel()
		k := signals.KeyOf(nil)
		assert.True(t, k.IsNone())
		assert.Equal(t, signals.KindNone, k.Kind())
		assert.Equal(t, "<none>", k.String())
	})

	t.Run("plain value is concrete", func(t *testing.T) {
		t.Parallel()
		k := signals.KeyOf("user created")
		assert.True(t, k.IsConcrete())
		assert.Equal(t, "user created", k.Value())
		assert.Equal(t, "user created", k.String())
	})

	t.Run("keys pass through", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, signals.Wildcard, signals.KeyOf(signals.Wildcard))
		assert.Equal(t, signals.Anonymous, signals.KeyOf(signals.Anonymous))

		k := signals.KeyOf("x")
		assert.Equal(t, k, signals.KeyOf(&k))

		var nilKey *signals.Key
		assert.True(t, signals.KeyOf(nilKey).IsNone())
	})

	t.Run("concrete keys compare by value", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, signals.KeyOf("a"), signals.KeyOf("a"))
		assert.NotEqual(t, signals.KeyOf("a"), signals.KeyOf("b"))
		assert.NotEqual(t, signals.KeyOf(1), signals.KeyOf("1"))
	})

	t.Run("pointer senders compare by identity", func(t *testing.T) {
		t.Parallel()
		a, b := &sender{name: "s"}, &sender{name: "s"}
		assert.True(t, signals.KeyOf(a) == signals.KeyOf(a))
		assert.False(t, signals.KeyOf(a) == signals.KeyOf(b))
	})
}

func TestKey_Sentinels(t *testing.T) {
	t.Parallel()

	assert.True(t, signals.Wildcard.IsWildcard())
	assert.False(t, signals.Wildcard.IsAnonymous())
	assert.True(t, signals.Anonymous.IsAnonymous())
	assert.False(t, signals.Anonymous.IsConcrete())
	assert.NotEqual(t, signals.Wildcard, signals.Anonymous)

	assert.Equal(t, "<any>", signals.Wildcard.String())
	assert.Equal(t, "<anonymous>", signals.Anonymous.String())
	assert.Nil(t, signals.Wildcard.Value())
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", signals.KindNone.String())
	assert.Equal(t, "concrete", signals.KindConcrete.String())
	assert.Equal(t, "any", signals.KindWildcard.String())
	assert.Equal(t, "anonymous", signals.KindAnonymous.String())
	assert.Equal(t, "kind(9)", signals.Kind(9).String())
}
