package shape

import (
	"fmt"
	"math/bits"
)

// Arity describes a sector tree: Base children per node in each base tree,
// Sub base trees per sub-tree node, and Top sub-trees per top-tree node.
// Sub == 0 means there is no sub-tree level and Top == 0 means there is no
// top-tree level.
type Arity struct {
	Base int
	Sub  int
	Top  int
}

// HasSub reports whether the shape has a sub-tree level.
func (a Arity) HasSub() bool { return a.Sub > 0 }

// HasTop reports whether the shape has a top-tree level.
func (a Arity) HasTop() bool { return a.Top > 0 }

// Valid reports whether a is a well-formed shape: a positive base, every
// present level a power of two, and no top level without a sub level.
func (a Arity) Valid() bool {
	if !isPow2(a.Base) {
		return false
	}
	if a.Sub < 0 || a.Top < 0 {
		return false
	}
	if a.Sub > 0 && !isPow2(a.Sub) {
		return false
	}
	if a.Top > 0 && (!isPow2(a.Top) || a.Sub == 0) {
		return false
	}
	return true
}

// BaseTrees returns how many base trees a sector of this shape is split
// into.
func (a Arity) BaseTrees() int {
	n := 1
	if a.Sub > 0 {
		n *= a.Sub
	}
	if a.Top > 0 {
		n *= a.Top
	}
	return n
}

func (a Arity) String() string {
	return fmt.Sprintf("(%d, %d, %d)", a.Base, a.Sub, a.Top)
}

func isPow2(n int) bool {
	return n > 0 && bits.OnesCount(uint(n)) == 1
}
