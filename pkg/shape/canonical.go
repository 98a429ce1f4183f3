package shape

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/MuriData/muri-sectorshape/config"
)

// ErrInvalidSize is returned by CanonicalShape for sizes that are not a
// power of two of at least one node.
var ErrInvalidSize = errors.New("invalid sector size")

// CanonicalShape computes the tree shape a sector of size bytes must use.
//
// Nodes are 32 bytes. The base tree is always 8-ary and holds as many whole
// octree levels as fit, capped at 2^27 nodes. Whatever remains goes into a
// sub-tree level, and when that is more than one full octree level the
// remainder spills into a top-tree level.
func CanonicalShape(size uint64) (Arity, error) {
	if bits.OnesCount64(size) != 1 {
		return Arity{}, fmt.Errorf("%w: %d is not a power of two", ErrInvalidSize, size)
	}
	if size < config.NodeSize {
		return Arity{}, fmt.Errorf("%w: %d is smaller than one %d-byte node", ErrInvalidSize, size, config.NodeSize)
	}

	logNodes := bits.TrailingZeros64(size) - config.LogNodeSize

	logInBase := min(config.LogMaxBase, (logNodes/config.MaxTreeLog)*config.MaxTreeLog)
	logUpper := logNodes - logInBase
	logRem := logUpper % config.MaxTreeLog

	// -1 marks an absent level.
	logSub, logTop := -1, -1
	switch {
	case logUpper == 0:
	case logRem == 0:
		logSub = config.MaxTreeLog
	case logUpper > config.MaxTreeLog:
		logSub, logTop = config.MaxTreeLog, logRem
	default:
		logSub = logRem
	}

	return Arity{
		Base: 1 << config.MaxTreeLog,
		Sub:  pow2OrZero(logSub),
		Top:  pow2OrZero(logTop),
	}, nil
}

func pow2OrZero(log int) int {
	if log < 0 {
		return 0
	}
	return 1 << log
}
