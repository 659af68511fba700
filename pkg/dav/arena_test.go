package dav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArenaPutAndText(t *testing.T) {
	a := NewArena()

	r1 := a.Put("hello")
	r2 := a.Put("world")

	assert.Equal(t, "hello", a.Text(r1))
	assert.Equal(t, "world", a.Text(r2))
	assert.Equal(t, 10, a.Len())
}

func TestArenaGrowsPastInitialCapacity(t *testing.T) {
	a := NewArena()

	var refs []StringRef
	for i := 0; i < 2000; i++ {
		refs = append(refs, a.Put("xyzzy"))
	}

	for _, r := range refs {
		assert.Equal(t, "xyzzy", a.Text(r))
	}
}
