package arena

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/joshuapare/framekit/internal/anonmem"
	"github.com/joshuapare/framekit/internal/buf"
	"github.com/joshuapare/framekit/slotmap"
)

// Options configures Arena construction. A nil *Options selects defaults.
type Options struct {
	// Discipline selects how the slot map serializes concurrent claims.
	// Default: slotmap.LockFreeHint.
	Discipline slotmap.Discipline
}

// Arena owns one reserved memory region divided into fixed-size slots.
type Arena struct {
	region   []byte
	release  func() error
	slotSize int64
	slots    slotmap.Map

	// inUse approximates the number of allocated slots. Updated with
	// relaxed semantics on every successful allocate/free; only eventually
	// consistent with the slot map under concurrency.
	inUse atomic.Int64

	closeOnce sync.Once
	closeErr  error
}

// Slot is an opaque handle to one slot: a validated byte offset into the
// region. The zero value is not a valid handle; use NilSlot.
type Slot struct {
	off int64
}

// NilSlot is the "no slot" handle, returned by a missed Allocate.
var NilSlot = Slot{off: -1}

// Offset returns the slot's byte offset from the region start, or -1 for
// NilSlot.
func (s Slot) Offset() int64 { return s.off }

// SlotAt rebuilds a handle from a persisted offset. The handle is validated
// on every use, so an offset that is out of range or misaligned yields
// no-ops rather than faults.
func SlotAt(off int64) Slot { return Slot{off: off} }

// New reserves a region large enough for capacity bytes divided into
// slotSize-byte slots and returns an Arena with every slot free. The slot
// count is ceil(capacity/slotSize) rounded up to the next multiple of 64,
// minimum 64, so the region may exceed the requested capacity.
//
// Construction failure (the OS cannot satisfy the reservation, or the
// rounded size overflows) is the only error path out of an Arena; every
// per-call condition afterwards is reported by value.
func New(capacity, slotSize int64, opts *Options) (*Arena, error) {
	if slotSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSlotSize, slotSize)
	}
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrCapacity, capacity)
	}
	discipline := slotmap.LockFreeHint
	if opts != nil {
		discipline = opts.Discipline
	}

	sum, ok := buf.AddInt64(capacity, slotSize-1)
	if !ok {
		return nil, fmt.Errorf("%w: capacity %d slot size %d", ErrRegionSize, capacity, slotSize)
	}
	slotCount := sum / slotSize
	if slotCount < 64 {
		slotCount = 64
	} else {
		// Next multiple of 64: add 63, clear the low six bits.
		slotCount = (slotCount + 63) &^ 63
	}
	regionSize, ok := buf.MulInt64(slotCount, slotSize)
	if !ok || regionSize > int64(maxInt) {
		return nil, fmt.Errorf("%w: %d slots of %d bytes", ErrRegionSize, slotCount, slotSize)
	}

	region, release, err := anonmem.Reserve(int(regionSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReserve, err)
	}
	slots, err := slotmap.New(int(slotCount), discipline)
	if err != nil {
		_ = release()
		return nil, err
	}
	return &Arena{
		region:   region,
		release:  release,
		slotSize: slotSize,
		slots:    slots,
	}, nil
}

// Allocate checks out one slot and returns its handle. ok is false for a
// zero or negative size, a request spanning more than one slot, or a full
// arena - all expected outcomes the caller must handle, not errors.
func (a *Arena) Allocate(size int64) (Slot, bool) {
	if size <= 0 {
		return NilSlot, false
	}
	// Single-slot only: larger requests miss rather than truncate.
	if ceilDiv(size, a.slotSize) != 1 {
		return NilSlot, false
	}
	idx, ok := a.slots.ClaimOne()
	if !ok {
		return NilSlot, false
	}
	a.inUse.Add(1)
	return Slot{off: int64(idx) * a.slotSize}, true
}

// Free returns a slot to the arena. It degrades to a no-op - never a fault -
// for NilSlot, a zero or negative size, an offset outside the region, a
// misaligned offset, a request spanning more than one slot, or a slot that
// is already free. The occupancy count only moves when the underlying
// release succeeds, so a double free decrements it at most once.
func (a *Arena) Free(s Slot, size int64) {
	if size <= 0 {
		return
	}
	if s.off < 0 || s.off >= a.RegionSize() {
		return
	}
	if s.off%a.slotSize != 0 {
		return
	}
	if ceilDiv(size, a.slotSize) != 1 {
		return
	}
	if err := a.slots.Release(int(s.off / a.slotSize)); err != nil {
		return
	}
	a.inUse.Add(-1)
}

// Bytes returns the slot's backing bytes as a view exactly one slot long,
// or nil for an invalid handle. The view is only safe to use while the
// caller holds the slot.
func (a *Arena) Bytes(s Slot) []byte {
	if s.off < 0 || s.off%a.slotSize != 0 {
		return nil
	}
	view, ok := buf.Slice(a.region, int(s.off), int(a.slotSize))
	if !ok {
		return nil
	}
	return view
}

// SlotCount returns the number of slots, always a multiple of 64.
func (a *Arena) SlotCount() int64 { return int64(a.slots.SlotCount()) }

// SlotSize returns the fixed size of every slot in bytes.
func (a *Arena) SlotSize() int64 { return a.slotSize }

// RegionSize returns the reserved byte length, exactly SlotCount*SlotSize.
func (a *Arena) RegionSize() int64 { return int64(len(a.region)) }

// InUse returns the approximate number of allocated slots. Eventually
// consistent under concurrency; a monitoring aid only.
func (a *Arena) InUse() int64 { return a.inUse.Load() }

// CASRetries returns the slot map's failed compare-and-swap count. Zero
// for the locked disciplines.
func (a *Arena) CASRetries() uint64 { return a.slots.CASRetries() }

// Close releases the backing region. Safe to call more than once; only the
// first call releases.
func (a *Arena) Close() error {
	a.closeOnce.Do(func() {
		a.closeErr = a.release()
	})
	return a.closeErr
}

// ceilDiv returns ceil(n / d) for positive d.
func ceilDiv(n, d int64) int64 {
	return (n + d - 1) / d
}

const maxInt = int(^uint(0) >> 1)
