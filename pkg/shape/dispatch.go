package shape

import (
	"errors"
	"fmt"

	"github.com/MuriData/muri-sectorshape/pkg/sector"
)

// ErrMissingInstantiation is returned when Funcs has no function for the
// shape a sector size selects.
var ErrMissingInstantiation = errors.New("no instantiation for shape")

// Funcs carries the per-shape instantiations of a shape-generic operation.
// Go cannot pass a generic function uninstantiated, so a caller with
//
//	func op[S shape.Shape](arg A) (R, error)
//
// dispatches it as
//
//	shape.WithShape(size, shape.Funcs[A, R]{
//		Base: op[shape.Base],
//		Sub2: op[shape.Sub2],
//		Sub8: op[shape.Sub8],
//		Top2: op[shape.Top2],
//	}, arg)
//
// Several arguments are forwarded by making A a struct.
type Funcs[A, R any] struct {
	Base func(A) (R, error)
	Sub2 func(A) (R, error)
	Sub8 func(A) (R, error)
	Top2 func(A) (R, error)
}

// WithShape runs the instantiation of fns that matches the shape of a
// sector of size bytes and returns its result unchanged. Sizes outside the
// supported set fail with sector.ErrUnsupportedSectorSize before any
// function is called.
func WithShape[A, R any](size uint64, fns Funcs[A, R], arg A) (R, error) {
	s, err := sector.FromBytes(size)
	if err != nil {
		var zero R
		return zero, err
	}
	return WithShapeEnum(s, fns, arg)
}

// WithShapeEnum is WithShape for an already converted sector size.
func WithShapeEnum[A, R any](size sector.Size, fns Funcs[A, R], arg A) (R, error) {
	switch size {
	case sector.Size2KiB:
		return run[Shape2KiB](fns.Base, arg)
	case sector.Size4KiB:
		return run[Shape4KiB](fns.Sub2, arg)
	case sector.Size16KiB:
		return run[Shape16KiB](fns.Sub8, arg)
	case sector.Size32KiB:
		return run[Shape32KiB](fns.Top2, arg)
	case sector.Size8MiB:
		return run[Shape8MiB](fns.Base, arg)
	case sector.Size16MiB:
		return run[Shape16MiB](fns.Sub2, arg)
	case sector.Size512MiB:
		return run[Shape512MiB](fns.Base, arg)
	case sector.Size1GiB:
		return run[Shape1GiB](fns.Sub2, arg)
	case sector.Size32GiB:
		return run[Shape32GiB](fns.Sub8, arg)
	case sector.Size64GiB:
		return run[Shape64GiB](fns.Top2, arg)
	default:
		var zero R
		return zero, fmt.Errorf("%w: %d bytes", sector.ErrUnsupportedSectorSize, uint64(size))
	}
}

func run[S Shape, A, R any](f func(A) (R, error), arg A) (R, error) {
	if f == nil {
		var s S
		var zero R
		return zero, fmt.Errorf("%w: %s", ErrMissingInstantiation, s.Category())
	}
	return f(arg)
}

// Resolve returns the shape of a sector of size bytes as a value, for
// callers that need its arity or hasher but no specialised code.
func Resolve(size uint64) (Shape, error) {
	return WithShape(size, Funcs[struct{}, Shape]{
		Base: valueOf[Base],
		Sub2: valueOf[Sub2],
		Sub8: valueOf[Sub8],
		Top2: valueOf[Top2],
	}, struct{}{})
}

func valueOf[S Shape](struct{}) (Shape, error) {
	var s S
	return s, nil
}
