package dav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitterMarkRewind(t *testing.T) {
	e := NewEmitter()
	e.Emit("int x = ")

	mark := e.Mark()
	e.Emit("1 + 2")
	assert.Equal(t, "1 + 2", e.Since(mark))

	e.Rewind(mark)
	assert.Equal(t, "int x = ", e.String())
}

// TestEmitterPeekIdempotence is spec's "Peek idempotence" property: marking,
// emitting, capturing, and rewinding leaves the buffer exactly as it was
// before the speculative emission, no matter how many times it's repeated.
func TestEmitterPeekIdempotence(t *testing.T) {
	e := NewEmitter()
	e.Emit("printf(")

	before := e.String()
	for i := 0; i < 5; i++ {
		mark := e.Mark()
		e.Emit("strcmp(a, b) == 0")
		captured := e.Since(mark)
		assert.Equal(t, "strcmp(a, b) == 0", captured)
		e.Rewind(mark)
		assert.Equal(t, before, e.String())
	}

	e.Emit("strcmp(a, b) == 0")
	assert.Equal(t, "printf(strcmp(a, b) == 0", e.String())
}

func TestEmitterSinceReturnsPrivateCopy(t *testing.T) {
	e := NewEmitter()
	mark := e.Mark()
	e.Emit("abc")
	since := e.Since(mark)

	e.Rewind(mark)
	e.Emit("xyz")

	assert.Equal(t, "abc", since, "Since copy must survive a later Rewind+Emit reusing the backing array")
	assert.Equal(t, "xyz", e.String())
}
