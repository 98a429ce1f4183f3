package shape

import (
	"errors"
	"fmt"

	"github.com/MuriData/muri-sectorshape/config"
)

// Category is one of the four tree shapes used by the supported sector
// sizes.
type Category uint8

const (
	CategoryBase Category = iota // (8, 0, 0)
	CategorySub2                 // (8, 2, 0)
	CategorySub8                 // (8, 8, 0)
	CategoryTop2                 // (8, 8, 2)
)

var categoryArities = [...]Arity{
	CategoryBase: {Base: 8},
	CategorySub2: {Base: 8, Sub: 2},
	CategorySub8: {Base: 8, Sub: 8},
	CategoryTop2: {Base: 8, Sub: 8, Top: 2},
}

var categoryNames = [...]string{
	CategoryBase: "base",
	CategorySub2: "sub2",
	CategorySub8: "sub8",
	CategoryTop2: "top2",
}

// Categories returns all shape categories in declaration order.
func Categories() []Category {
	return []Category{CategoryBase, CategorySub2, CategorySub8, CategoryTop2}
}

// Arity returns the tree shape of c. It is the zero Arity for values outside
// the four declared categories.
func (c Category) Arity() Arity {
	if int(c) >= len(categoryArities) {
		return Arity{}
	}
	return categoryArities[c]
}

func (c Category) String() string {
	if int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
	return categoryNames[c]
}

// ArityOf returns the tree shape of c.
func ArityOf(c Category) Arity {
	return c.Arity()
}

// IsBase reports whether size uses the (8, 0, 0) shape.
func IsBase(size uint64) bool {
	switch size {
	case config.SectorSize2KiB, config.SectorSize8MiB, config.SectorSize512MiB:
		return true
	}
	return false
}

// IsSub2 reports whether size uses the (8, 2, 0) shape.
func IsSub2(size uint64) bool {
	switch size {
	case config.SectorSize4KiB, config.SectorSize16MiB, config.SectorSize1GiB:
		return true
	}
	return false
}

// IsSub8 reports whether size uses the (8, 8, 0) shape.
func IsSub8(size uint64) bool {
	switch size {
	case config.SectorSize16KiB, config.SectorSize32GiB:
		return true
	}
	return false
}

// IsTop2 reports whether size uses the (8, 8, 2) shape.
func IsTop2(size uint64) bool {
	switch size {
	case config.SectorSize32KiB, config.SectorSize64GiB:
		return true
	}
	return false
}

// Classify returns the shape category of a supported sector size. ok is
// false for any other size.
func Classify(size uint64) (c Category, ok bool) {
	switch {
	case IsBase(size):
		return CategoryBase, true
	case IsSub2(size):
		return CategorySub2, true
	case IsSub8(size):
		return CategorySub8, true
	case IsTop2(size):
		return CategoryTop2, true
	}
	return 0, false
}

// IsCanonical reports whether the registered shape of size is the one
// CanonicalShape computes. The 16KiB and 32KiB test sizes are registered
// with the sub8 and top2 shapes so that small sectors exercise every
// category; they are the only supported sizes that are not canonical.
func IsCanonical(size uint64) bool {
	switch size {
	case config.SectorSize16KiB, config.SectorSize32KiB:
		return false
	}
	_, ok := Classify(size)
	return ok
}

// canonicalExceptions records what CanonicalShape yields for the sizes that
// are registered with a different shape.
var canonicalExceptions = map[uint64]Arity{
	config.SectorSize16KiB: {Base: 8},
	config.SectorSize32KiB: {Base: 8, Sub: 2},
}

// supportedSizes lists every supported size in ascending order.
var supportedSizes = []uint64{
	config.SectorSize2KiB,
	config.SectorSize4KiB,
	config.SectorSize16KiB,
	config.SectorSize32KiB,
	config.SectorSize8MiB,
	config.SectorSize16MiB,
	config.SectorSize512MiB,
	config.SectorSize1GiB,
	config.SectorSize32GiB,
	config.SectorSize64GiB,
}

// VerifyRegistry checks the hard-coded registry against CanonicalShape.
// Canonical sizes must match the computed shape exactly; the test sizes
// must still compute to their recorded canonical shape, so a change to
// either the formula or the table is caught.
func VerifyRegistry() error {
	var errs []error
	for _, size := range supportedSizes {
		c, ok := Classify(size)
		if !ok {
			errs = append(errs, fmt.Errorf("size %d: not classified", size))
			continue
		}
		computed, err := CanonicalShape(size)
		if err != nil {
			errs = append(errs, fmt.Errorf("size %d: %w", size, err))
			continue
		}

		want := c.Arity()
		if !IsCanonical(size) {
			want = canonicalExceptions[size]
		}
		if computed != want {
			errs = append(errs, fmt.Errorf("size %d: canonical shape %s, registry expects %s", size, computed, want))
		}
	}
	return errors.Join(errs...)
}
