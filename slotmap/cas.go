package slotmap

import (
	"fmt"
	"sync/atomic"
)

// casMap claims bits with per-word compare-and-swap. Different words can be
// mutated fully in parallel; contention is only at the bit level within one
// word. With a hint, each scan starts at a round-robin word so concurrent
// claimers tend to collide less.
type casMap struct {
	words   []atomic.Uint64
	hint    *atomic.Uint64 // nil: always scan from word 0
	retries atomic.Uint64
}

func newCASMap(numWords int, withHint bool) *casMap {
	m := &casMap{words: make([]atomic.Uint64, numWords)}
	for i := range m.words {
		m.words[i].Store(fullyFree)
	}
	if withHint {
		m.hint = new(atomic.Uint64)
	}
	return m
}

func (m *casMap) ClaimOne() (int, bool) {
	numWords := len(m.words)
	start := 0
	if m.hint != nil {
		start = int((m.hint.Add(1) - 1) % uint64(numWords))
	}
	for i := 0; i < numWords; i++ {
		wi := start + i
		if wi >= numWords {
			wi -= numWords
		}
		slot, ok := m.claimInWord(wi)
		if !ok {
			continue
		}
		// Leave the hint near the word that had room so the next scan
		// resumes here instead of re-walking exhausted words.
		if m.hint != nil && wi != start {
			m.hint.Store(uint64(wi))
		}
		return slot, true
	}
	return 0, false
}

// claimInWord attempts to claim the highest free bit of word wi. On a lost
// CAS the freshly observed value is retried without advancing to the next
// word, until the word reads fully allocated. At least one of any set of
// contending claimers succeeds per round, which is what makes the map
// lock-free rather than wait-free.
func (m *casMap) claimInWord(wi int) (int, bool) {
	w := &m.words[wi]
	observed := w.Load()
	for observed != fullyAllocated {
		bit := highestFreeBit(observed)
		if w.CompareAndSwap(observed, observed&^(1<<uint(bit))) {
			return joinIndex(wi, bit), true
		}
		m.retries.Add(1)
		observed = w.Load()
	}
	return 0, false
}

func (m *casMap) Release(slot int) error {
	if slot < 0 || slot >= m.SlotCount() {
		return fmt.Errorf("%w: %d", ErrSlotRange, slot)
	}
	wi, bit := splitIndex(slot)
	mask := uint64(1) << bit
	// Or returns the previous value: if the bit was already set this call
	// changed nothing and the release is a rejected double-free.
	if old := m.words[wi].Or(mask); old&mask != 0 {
		return fmt.Errorf("%w: %d", ErrDoubleRelease, slot)
	}
	return nil
}

func (m *casMap) SlotCount() int { return len(m.words) * wordBits }

func (m *casMap) CASRetries() uint64 { return m.retries.Load() }
