// Package arena reserves one large memory region at startup, divides it
// into equal fixed-size slots, and checks slots out and in concurrently.
// It is the backing store a database buffer pool draws its page frames
// from.
//
// # Overview
//
// An Arena owns a zero-initialized, process-private region reserved once at
// construction (anonymous mmap on unix) and released exactly once by Close.
// Per-slot free/allocated bookkeeping is delegated to a slotmap.Map; the
// Arena translates byte-addressed requests into slot indices and enforces
// region-bounds and alignment safety.
//
// # Handles, Not Pointers
//
// Allocate returns an opaque Slot handle - a validated byte offset - rather
// than raw memory. The slot's bytes are reached through Bytes, which
// returns a bounds-checked view exactly one slot long, so an out-of-bounds
// or misaligned access is unrepresentable. Consumers that persist offsets
// (a page table, for instance) can rebuild handles with SlotAt; a stale or
// forged handle degrades to a no-op, never a fault.
//
// # Usage
//
//	a, err := arena.New(200<<20, 4096, nil) // 200 MB of 4 KiB frames
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	slot, ok := a.Allocate(4096)
//	if !ok {
//	    // arena full: expected backpressure, retry later
//	}
//	page := a.Bytes(slot)
//	// ... fill the page ...
//	a.Free(slot, 4096)
//
// # Sizing
//
// New rounds the slot count up to the next multiple of 64 (minimum 64), so
// the region can be larger than the requested capacity; RegionSize is
// always exactly SlotCount * SlotSize.
//
// # Concurrency
//
// All methods are safe for concurrent use. The synchronization discipline
// of the underlying slot map is chosen with Options.Discipline; see
// github.com/joshuapare/framekit/slotmap for the four disciplines and
// their trade-offs. InUse is an approximate, eventually-consistent
// occupancy count maintained with relaxed atomics - a monitoring aid, never
// a correctness input.
//
// # Limits
//
// Only single-slot allocation is supported. Requests that would span more
// than one slot miss (Allocate returns ok == false) rather than silently
// truncating; contiguous multi-slot allocation is deliberately out of
// scope.
package arena
