package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := New(10, time.Minute)

	c.Set("a", 1)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestGetMiss(t *testing.T) {
	c := New(10, time.Minute)

	_, ok := c.Get("missing")

	assert.False(t, ok)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // refresh a
	c.Set("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestExpiredEntryIsGone(t *testing.T) {
	c := New(10, -time.Second)

	c.Set("a", 1)

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestCleanExpired(t *testing.T) {
	c := New(10, -time.Second)
	c.Set("a", 1)
	c.Set("b", 2)

	c.CleanExpired()

	assert.Empty(t, c.items)
}

func TestDelete(t *testing.T) {
	c := New(10, time.Minute)
	c.Set("a", 1)

	c.Delete("a")

	_, ok := c.Get("a")
	assert.False(t, ok)
}
