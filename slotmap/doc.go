// Package slotmap tracks the free/allocated state of fixed-size slots with
// one bit per slot, packed into 64-bit words.
//
// # Overview
//
// A slot map answers one question under concurrency: which of N fixed slots
// are free, and which single slot should the next caller get. Bit value 1
// means free and 0 means allocated - with that polarity "find a free slot"
// reduces to "find a set bit", which math/bits answers in one instruction.
//
// # Disciplines
//
// One claim/release algorithm is offered under four synchronization
// disciplines, selectable at construction:
//
//   - Exclusive: scan-and-clear under a sync.Mutex
//   - Spin: the same critical section behind a busy-wait CAS lock
//   - LockFree: per-word compare-and-swap, scanning from word 0
//   - LockFreeHint: per-word compare-and-swap, scanning from a round-robin
//     hint so concurrent claimers start in different words
//
// All four share the bit-selection policy: within the first word holding a
// set bit, the highest-numbered set bit is claimed (63 minus the leading
// zero count). The policy is deterministic so single-threaded claim order
// is testable.
//
// # Claim/Release Contract
//
//	m, err := slotmap.New(4096, slotmap.LockFreeHint)
//	if err != nil {
//	    return err
//	}
//	slot, ok := m.ClaimOne()
//	if !ok {
//	    // every slot is allocated
//	}
//	// ... use the slot ...
//	if err := m.Release(slot); err != nil {
//	    // out of range, or the slot was already free
//	}
//
// Release is checked in every discipline: out-of-range indices and
// double-release are rejected and leave the map unchanged. A successful
// Release publishes with release ordering and ClaimOne observes with
// acquire ordering, so payload writes by a slot's previous holder are
// visible to its next holder.
//
// # Diagnostics
//
// The lock-free disciplines count failed compare-and-swap attempts.
// CASRetries is monotonically increasing, relaxed, and never consulted for
// correctness; the locked disciplines always report zero.
package slotmap
