package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoCache_SetGet(t *testing.T) {
	c := NewGoCache(time.Minute, time.Minute)

	c.Set("key", []byte("value"), time.Minute)

	payload, found := c.Get("key")
	assert.True(t, found)
	assert.Equal(t, []byte("value"), payload)
}

func TestGoCache_Miss(t *testing.T) {
	c := NewGoCache(time.Minute, time.Minute)

	payload, found := c.Get("missing")
	assert.False(t, found)
	assert.Nil(t, payload)
}

func TestGoCache_Delete(t *testing.T) {
	c := NewGoCache(time.Minute, time.Minute)

	c.Set("key", []byte("value"), time.Minute)
	c.Delete("key")

	_, found := c.Get("key")
	assert.False(t, found)
	assert.Equal(t, 0, c.ItemCount())
}

func TestGoCache_Expiration(t *testing.T) {
	c := NewGoCache(time.Minute, time.Minute)

	c.Set("key", []byte("value"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, found := c.Get("key")
	assert.False(t, found)
}
