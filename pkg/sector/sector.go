package sector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MuriData/muri-sectorshape/config"
	"github.com/dustin/go-humanize"
)

// ErrUnsupportedSectorSize is returned for any byte size outside the
// supported set.
var ErrUnsupportedSectorSize = errors.New("unsupported sector size")

// Size is the capacity of a sector in bytes. Only the constants below are
// valid values; use FromBytes or Parse to obtain one from untrusted input.
type Size uint64

const (
	Size2KiB   Size = config.SectorSize2KiB
	Size4KiB   Size = config.SectorSize4KiB
	Size16KiB  Size = config.SectorSize16KiB
	Size32KiB  Size = config.SectorSize32KiB
	Size8MiB   Size = config.SectorSize8MiB
	Size16MiB  Size = config.SectorSize16MiB
	Size512MiB Size = config.SectorSize512MiB
	Size1GiB   Size = config.SectorSize1GiB
	Size32GiB  Size = config.SectorSize32GiB
	Size64GiB  Size = config.SectorSize64GiB
)

var names = map[Size]string{
	Size2KiB:   "2KiB",
	Size4KiB:   "4KiB",
	Size16KiB:  "16KiB",
	Size32KiB:  "32KiB",
	Size8MiB:   "8MiB",
	Size16MiB:  "16MiB",
	Size512MiB: "512MiB",
	Size1GiB:   "1GiB",
	Size32GiB:  "32GiB",
	Size64GiB:  "64GiB",
}

// Sizes returns every supported sector size in ascending order.
func Sizes() []Size {
	return []Size{
		Size2KiB, Size4KiB, Size16KiB, Size32KiB,
		Size8MiB, Size16MiB, Size512MiB,
		Size1GiB, Size32GiB, Size64GiB,
	}
}

// FromBytes converts a raw byte count into a Size.
func FromBytes(n uint64) (Size, error) {
	s := Size(n)
	if _, ok := names[s]; !ok {
		return 0, fmt.Errorf("%w: %d bytes", ErrUnsupportedSectorSize, n)
	}
	return s, nil
}

// Parse accepts either a plain byte count ("34359738368") or a size with a
// unit ("32GiB", "32 GiB"). Decimal units are honoured as such, so "32GB"
// does not name a supported size.
func Parse(s string) (Size, error) {
	n, err := humanize.ParseBytes(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse sector size %q: %w", s, err)
	}
	size, err := FromBytes(n)
	if err != nil {
		return 0, fmt.Errorf("parse sector size %q: %w", s, err)
	}
	return size, nil
}

// Bytes returns the sector size as a byte count.
func (s Size) Bytes() uint64 {
	return uint64(s)
}

func (s Size) String() string {
	if name, ok := names[s]; ok {
		return name
	}
	return fmt.Sprintf("Size(%d)", uint64(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Size) MarshalText() ([]byte, error) {
	if _, ok := names[s]; !ok {
		return nil, fmt.Errorf("%w: %d bytes", ErrUnsupportedSectorSize, uint64(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Size) UnmarshalText(text []byte) error {
	size, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = size
	return nil
}
