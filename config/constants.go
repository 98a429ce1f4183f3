package config

// Supported sector sizes in bytes.
const (
	SectorSize2KiB   = 2 << 10
	SectorSize4KiB   = 4 << 10
	SectorSize16KiB  = 16 << 10
	SectorSize32KiB  = 32 << 10
	SectorSize8MiB   = 8 << 20
	SectorSize16MiB  = 16 << 20
	SectorSize512MiB = 512 << 20
	SectorSize1GiB   = 1 << 30
	SectorSize32GiB  = 32 << 30
	SectorSize64GiB  = 64 << 30
)

const (
	NodeSize    = 32 // bytes per tree node
	LogNodeSize = 5

	MaxTreeLog = 3  // log2 of the largest (and optimal) arity
	LogMaxBase = 27 // a base tree holds at most 2^27 nodes (4 GiB)
)
