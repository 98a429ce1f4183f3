package shape

import (
	"errors"
	"fmt"
	"math/bits"
	"testing"

	"github.com/MuriData/muri-sectorshape/config"
)

func TestCanonicalShape(t *testing.T) {
	tests := []struct {
		size uint64
		want Arity
	}{
		{config.SectorSize2KiB, Arity{8, 0, 0}},
		{config.SectorSize4KiB, Arity{8, 2, 0}},
		{config.SectorSize8MiB, Arity{8, 0, 0}},
		{config.SectorSize16MiB, Arity{8, 2, 0}},
		{config.SectorSize512MiB, Arity{8, 0, 0}},
		{config.SectorSize1GiB, Arity{8, 2, 0}},
		{config.SectorSize32GiB, Arity{8, 8, 0}},
		{config.SectorSize64GiB, Arity{8, 8, 2}},

		// Unsupported powers of two still have a canonical shape.
		{32, Arity{8, 0, 0}},
		{64, Arity{8, 2, 0}},
		{128, Arity{8, 4, 0}},
		{4 << 30, Arity{8, 0, 0}},
		{8 << 30, Arity{8, 2, 0}},
		{16 << 30, Arity{8, 4, 0}},
		{128 << 30, Arity{8, 8, 4}},
		// Past 128GiB the upper levels no longer hold every node bit.
		{256 << 30, Arity{8, 8, 0}},
		{512 << 30, Arity{8, 8, 2}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("size=%d", tt.size), func(t *testing.T) {
			got, err := CanonicalShape(tt.size)
			if err != nil {
				t.Fatalf("CanonicalShape(%d): %v", tt.size, err)
			}
			if got != tt.want {
				t.Fatalf("CanonicalShape(%d) = %s, want %s", tt.size, got, tt.want)
			}
		})
	}
}

func TestCanonicalShapeInvalidSize(t *testing.T) {
	for _, size := range []uint64{0, 1, 3, 16, 3_000_000, 2049, ^uint64(0)} {
		if _, err := CanonicalShape(size); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("CanonicalShape(%d) error = %v, want ErrInvalidSize", size, err)
		}
	}
}

// TestCanonicalShapeDecomposition checks, for every power of two from one
// node up to 128GiB, that the shape is well formed and that the node count
// splits into whole 8-ary base levels (at most 2^27 nodes) times the sub and
// top arities.
func TestCanonicalShapeDecomposition(t *testing.T) {
	const maxLog = 37 // 128GiB
	for log := config.LogNodeSize; log <= maxLog; log++ {
		size := uint64(1) << log
		a, err := CanonicalShape(size)
		if err != nil {
			t.Fatalf("CanonicalShape(2^%d): %v", log, err)
		}
		if !a.Valid() {
			t.Fatalf("CanonicalShape(2^%d) = %s is not valid", log, a)
		}
		if a.Base != 8 {
			t.Fatalf("CanonicalShape(2^%d) base = %d, want 8", log, a.Base)
		}

		logNodes := log - config.LogNodeSize
		logInBase := logNodes - log2(a.Sub) - log2(a.Top)
		if logInBase < 0 || logInBase%config.MaxTreeLog != 0 || logInBase > config.LogMaxBase {
			t.Fatalf("CanonicalShape(2^%d) = %s leaves %d node bits in the base tree", log, a, logInBase)
		}
		if a.Sub > 1<<config.MaxTreeLog || a.Top > 1<<config.MaxTreeLog {
			t.Fatalf("CanonicalShape(2^%d) = %s exceeds the maximum arity", log, a)
		}
	}
}

func TestCanonicalShapeIdempotent(t *testing.T) {
	for _, size := range supportedSizes {
		first, err := CanonicalShape(size)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 3; i++ {
			again, err := CanonicalShape(size)
			if err != nil {
				t.Fatal(err)
			}
			if again != first {
				t.Fatalf("CanonicalShape(%d) changed from %s to %s", size, first, again)
			}
		}
	}
}

func log2(n int) int {
	if n == 0 {
		return 0
	}
	return bits.TrailingZeros(uint(n))
}
