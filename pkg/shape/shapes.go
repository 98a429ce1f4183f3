// Package shape maps sector sizes to the multi-level tree shapes the proof
// system builds over them, and runs shape-generic code specialised for the
// shape of a runtime sector size.
package shape

import "github.com/MuriData/muri-sectorshape/pkg/treehash"

// Shape is the capability a shape-generic operation is instantiated with:
// the tree arities plus the hash the tree is built with. The implementations
// are the zero-size types Base, Sub2, Sub8 and Top2, so an operation written
// as
//
//	func op[S shape.Shape](arg A) (R, error) {
//		var s S
//		arity := s.Arity()
//		...
//	}
//
// is specialised per shape at compile time.
type Shape interface {
	treehash.Hasher
	Category() Category
	Arity() Arity
}

// Base is the (8, 0, 0) shape.
type Base struct{ treehash.Poseidon2 }

// Sub2 is the (8, 2, 0) shape.
type Sub2 struct{ treehash.Poseidon2 }

// Sub8 is the (8, 8, 0) shape.
type Sub8 struct{ treehash.Poseidon2 }

// Top2 is the (8, 8, 2) shape.
type Top2 struct{ treehash.Poseidon2 }

func (Base) Category() Category { return CategoryBase }
func (Sub2) Category() Category { return CategorySub2 }
func (Sub8) Category() Category { return CategorySub8 }
func (Top2) Category() Category { return CategoryTop2 }

func (Base) Arity() Arity { return CategoryBase.Arity() }
func (Sub2) Arity() Arity { return CategorySub2.Arity() }
func (Sub8) Arity() Arity { return CategorySub8.Arity() }
func (Top2) Arity() Arity { return CategoryTop2.Arity() }

// Shapes by sector size.
type (
	Shape2KiB   = Base
	Shape8MiB   = Base
	Shape512MiB = Base

	Shape4KiB  = Sub2
	Shape16MiB = Sub2
	Shape1GiB  = Sub2

	Shape16KiB = Sub8
	Shape32GiB = Sub8

	Shape32KiB = Top2
	Shape64GiB = Top2
)

var (
	_ Shape = Base{}
	_ Shape = Sub2{}
	_ Shape = Sub8{}
	_ Shape = Top2{}
)
