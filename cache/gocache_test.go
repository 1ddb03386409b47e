package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoCache_SetAndGet(t *testing.T) {
	gc := NewGoCache(time.Minute, time.Minute)

	gc.Set(map[string][]byte{
		"a": []byte("alpha"),
		"b": []byte("beta"),
	}, 0)

	result := gc.Get([]string{"a", "b", "c"})
	assert.Equal(t, []byte("alpha"), result.Found["a"])
	assert.Equal(t, []byte("beta"), result.Found["b"])
	assert.Equal(t, []string{"c"}, result.MissingKeys)
}

func TestGoCache_Expiration(t *testing.T) {
	gc := NewGoCache(time.Minute, time.Minute)

	gc.Set(map[string][]byte{"k": []byte("v")}, 30*time.Millisecond)
	assert.Len(t, gc.Get([]string{"k"}).Found, 1)

	time.Sleep(60 * time.Millisecond)
	result := gc.Get([]string{"k"})
	assert.Empty(t, result.Found)
	assert.Equal(t, []string{"k"}, result.MissingKeys)
}

func TestGoCache_Delete(t *testing.T) {
	gc := NewGoCache(time.Minute, time.Minute)

	gc.Set(map[string][]byte{"k": []byte("v")}, 0)
	gc.Delete([]string{"k", "unknown"})

	assert.Equal(t, []string{"k"}, gc.Get([]string{"k"}).MissingKeys)
}

func TestGoCache_Clear(t *testing.T) {
	gc := NewGoCache(time.Minute, time.Minute)

	gc.Set(map[string][]byte{"a": []byte("1"), "b": []byte("2")}, 0)
	assert.Equal(t, 2, gc.ItemCount())

	gc.Clear()
	assert.Equal(t, 0, gc.ItemCount())
}
