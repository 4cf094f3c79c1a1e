package slotmap

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// lockedMap serializes the scan-and-clear sequence through a sync.Locker.
// Exclusive uses a sync.Mutex; Spin swaps in spinLock. The lock provides
// the happens-before edge from Release to the next ClaimOne.
type lockedMap struct {
	mu    sync.Locker
	words []uint64
}

func newLockedMap(numWords int, spin bool) *lockedMap {
	m := &lockedMap{words: make([]uint64, numWords)}
	for i := range m.words {
		m.words[i] = fullyFree
	}
	if spin {
		m.mu = new(spinLock)
	} else {
		m.mu = new(sync.Mutex)
	}
	return m
}

func (m *lockedMap) ClaimOne() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for wi, w := range m.words {
		if w == fullyAllocated {
			continue
		}
		bit := highestFreeBit(w)
		m.words[wi] = w &^ (1 << uint(bit))
		return joinIndex(wi, bit), true
	}
	return 0, false
}

func (m *lockedMap) Release(slot int) error {
	if slot < 0 || slot >= m.SlotCount() {
		return fmt.Errorf("%w: %d", ErrSlotRange, slot)
	}
	wi, bit := splitIndex(slot)
	mask := uint64(1) << bit

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.words[wi]&mask != 0 {
		return fmt.Errorf("%w: %d", ErrDoubleRelease, slot)
	}
	m.words[wi] |= mask
	return nil
}

func (m *lockedMap) SlotCount() int { return len(m.words) * wordBits }

func (m *lockedMap) CASRetries() uint64 { return 0 }

// spinLock is a test-and-set lock that busy-waits, yielding the processor
// between attempts rather than parking the goroutine. The critical section
// it guards is a handful of word reads, so the spin is short in practice;
// there is no back-off ceiling.
type spinLock struct {
	state atomic.Uint32
}

func (l *spinLock) Lock() {
	for !l.state.CompareAndSwap(0, 1) {
		runtime.Gosched()
	}
}

func (l *spinLock) Unlock() {
	l.state.Store(0)
}
