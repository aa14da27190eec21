package tmdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetSet(t *testing.T) {
	c := newCache(time.Hour)

	_, ok := c.get("movie:1")
	assert.False(t, ok, "empty cache should miss")

	c.set("movie:1", []byte(`{"id":1}`))

	got, ok := c.get("movie:1")
	require.True(t, ok, "should hit after set")
	assert.JSONEq(t, `{"id":1}`, string(got))

	_, ok = c.get("movie:2")
	assert.False(t, ok, "different key should miss")
}

func TestCache_Expiry(t *testing.T) {
	c := newCache(time.Millisecond)
	c.set("k", []byte("v"))

	time.Sleep(5 * time.Millisecond)

	_, ok := c.get("k")
	assert.False(t, ok, "expired entry should miss")
	assert.Equal(t, 1, c.purge())
	assert.Equal(t, 0, c.purge())
}
