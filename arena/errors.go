package arena

import "errors"

var (
	// ErrSlotSize indicates a non-positive slot size.
	ErrSlotSize = errors.New("arena: slot size must be positive")

	// ErrCapacity indicates a negative requested capacity.
	ErrCapacity = errors.New("arena: capacity must be non-negative")

	// ErrRegionSize indicates the rounded region size overflows.
	ErrRegionSize = errors.New("arena: region size overflows")

	// ErrReserve wraps a failed backing-memory reservation. There is no
	// degraded mode; an Arena without its region is unusable.
	ErrReserve = errors.New("arena: reserve backing memory")
)
