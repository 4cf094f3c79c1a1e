package slotmap

import (
	"math/rand"
	"sync/atomic"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/stretchr/testify/require"
)

// TestConcurrentClaimRelease hammers every discipline from multiple
// goroutines and verifies that no slot is ever held by two claimers at
// once, using a shared claimed-flag per slot.
func TestConcurrentClaimRelease(t *testing.T) {
	const (
		slots      = 256
		workers    = 8
		opsPerGoro = 5000
	)
	for _, d := range Disciplines() {
		d := d
		t.Run(d.String(), func(t *testing.T) {
			t.Parallel()
			m, err := New(slots, d)
			require.NoError(t, err)

			claimed := make([]atomic.Int32, slots)
			var g errgroup.Group
			for w := 0; w < workers; w++ {
				seed := int64(w)
				g.Go(func() error {
					rng := rand.New(rand.NewSource(seed))
					held := make([]int, 0, 32)
					for i := 0; i < opsPerGoro; i++ {
						if len(held) == 0 || (len(held) < 32 && rng.Intn(2) == 0) {
							slot, ok := m.ClaimOne()
							if !ok {
								continue
							}
							if !claimed[slot].CompareAndSwap(0, 1) {
								t.Errorf("slot %d handed to two claimers", slot)
								return nil
							}
							held = append(held, slot)
						} else {
							n := rng.Intn(len(held))
							slot := held[n]
							held[n] = held[len(held)-1]
							held = held[:len(held)-1]
							if !claimed[slot].CompareAndSwap(1, 0) {
								t.Errorf("slot %d released while not claimed", slot)
								return nil
							}
							if err := m.Release(slot); err != nil {
								t.Errorf("release slot %d: %v", slot, err)
								return nil
							}
						}
					}
					for _, slot := range held {
						claimed[slot].Store(0)
						if err := m.Release(slot); err != nil {
							t.Errorf("final release slot %d: %v", slot, err)
						}
					}
					return nil
				})
			}
			require.NoError(t, g.Wait())

			// Every slot handed back: the map must be claimable to capacity again.
			for i := 0; i < slots; i++ {
				_, ok := m.ClaimOne()
				require.True(t, ok, "slot map should be fully free after balanced run")
			}
			_, ok := m.ClaimOne()
			require.False(t, ok)
		})
	}
}

// TestConcurrentFill races workers to drain the map completely, the
// fill-to-capacity shape a buffer pool sees at startup.
func TestConcurrentFill(t *testing.T) {
	const (
		slots   = 1024
		workers = 8
	)
	for _, d := range Disciplines() {
		d := d
		t.Run(d.String(), func(t *testing.T) {
			t.Parallel()
			m, err := New(slots, d)
			require.NoError(t, err)

			claimed := make([]atomic.Int32, slots)
			var total atomic.Int64
			var g errgroup.Group
			for w := 0; w < workers; w++ {
				g.Go(func() error {
					for {
						slot, ok := m.ClaimOne()
						if !ok {
							return nil
						}
						if !claimed[slot].CompareAndSwap(0, 1) {
							t.Errorf("slot %d handed to two claimers", slot)
							return nil
						}
						total.Add(1)
					}
				})
			}
			require.NoError(t, g.Wait())
			require.EqualValues(t, slots, total.Load())
		})
	}
}

// TestConcurrentRetryCounterMonotonic checks the diagnostic counter only
// ever grows under contention on the lock-free disciplines.
func TestConcurrentRetryCounterMonotonic(t *testing.T) {
	for _, d := range []Discipline{LockFree, LockFreeHint} {
		m, err := New(64, d)
		require.NoError(t, err)

		var g errgroup.Group
		for w := 0; w < 4; w++ {
			g.Go(func() error {
				for i := 0; i < 2000; i++ {
					if slot, ok := m.ClaimOne(); ok {
						_ = m.Release(slot)
					}
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())

		first := m.CASRetries()
		second := m.CASRetries()
		require.LessOrEqual(t, first, second, "discipline %s", d)
	}
}
