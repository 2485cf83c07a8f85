package column

import (
	"math/rand"

	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Context carries the two capabilities every primitive needs: an allocator
// for arrow buffers and a random source. It is passed explicitly into every
// call so generators stay stateless and composable; nothing in this package
// keeps state between calls.
type Context struct {
	Mem memory.Allocator
	Rng *rand.Rand
}

func NewContext(mem memory.Allocator, seed int64) *Context {
	return &Context{
		Mem: mem,
		Rng: rand.New(rand.NewSource(seed)),
	}
}
