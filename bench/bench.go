// Package bench drives randomized concurrent allocate/free workloads
// against a shared arena and reports throughput and contention metrics per
// synchronization discipline.
package bench

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/framekit/arena"
	"github.com/joshuapare/framekit/slotmap"
)

// Config describes one benchmark run.
type Config struct {
	// Capacity is the requested arena size in bytes. Default: 200 MB.
	Capacity int64

	// SlotSize is the frame size in bytes. Default: 4096.
	SlotSize int64

	// Discipline selects the slot map's synchronization discipline.
	Discipline slotmap.Discipline

	// Workers is the number of concurrent goroutines. Default: 4.
	Workers int

	// OpsPerWorker bounds each worker's operations in churn mode.
	// Default: 100000. Ignored in fill mode.
	OpsPerWorker int

	// Churn alternates allocate and free per worker. When false the run is
	// a fill: workers race to claim slots until the arena is exhausted.
	Churn bool

	// TouchPayload writes a stamp into each claimed slot's first and last
	// byte, pulling the frame's pages into the working set the way a real
	// buffer pool would.
	TouchPayload bool
}

func (c *Config) applyDefaults() {
	if c.Capacity == 0 {
		c.Capacity = 200 << 20
	}
	if c.SlotSize == 0 {
		c.SlotSize = 4096
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.OpsPerWorker == 0 {
		c.OpsPerWorker = 100000
	}
}

func (c *Config) validate() error {
	if c.Capacity < 0 {
		return errors.New("bench: capacity must be non-negative")
	}
	if c.SlotSize < 0 {
		return errors.New("bench: slot size must be non-negative")
	}
	if c.Workers < 0 {
		return errors.New("bench: workers must be non-negative")
	}
	if c.OpsPerWorker < 0 {
		return errors.New("bench: ops per worker must be non-negative")
	}
	return nil
}

// Runner executes one configured workload.
type Runner struct {
	cfg Config
}

// NewRunner validates cfg, fills in defaults, and returns a Runner.
func NewRunner(cfg Config) (*Runner, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &Runner{cfg: cfg}, nil
}

// Run constructs a fresh arena and drives the configured workload against
// it. Cancellation of ctx stops the workers between operations.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	cfg := r.cfg
	a, err := arena.New(cfg.Capacity, cfg.SlotSize, &arena.Options{Discipline: cfg.Discipline})
	if err != nil {
		return Report{}, fmt.Errorf("bench: %w", err)
	}
	defer a.Close()

	var ops atomic.Int64
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		stamp := byte(w + 1)
		g.Go(func() error {
			if cfg.Churn {
				return r.churnWorker(ctx, a, stamp, &ops)
			}
			return r.fillWorker(ctx, a, stamp, &ops)
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	elapsed := time.Since(start)

	rep := Report{
		Discipline: cfg.Discipline,
		Workers:    cfg.Workers,
		SlotCount:  a.SlotCount(),
		Ops:        ops.Load(),
		Duration:   elapsed,
		CASRetries: a.CASRetries(),
		FinalInUse: a.InUse(),
	}
	if elapsed > 0 {
		rep.OpsPerSec = float64(rep.Ops) / elapsed.Seconds()
	}
	return rep, nil
}

// fillWorker claims slots until the arena misses, mirroring the phase
// structure of a buffer pool warming up: every worker races to exhaustion.
func (r *Runner) fillWorker(ctx context.Context, a *arena.Arena, stamp byte, ops *atomic.Int64) error {
	size := r.cfg.SlotSize
	for i := 0; ; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		s, ok := a.Allocate(size)
		if !ok {
			return nil
		}
		if r.cfg.TouchPayload {
			r.touch(a, s, stamp)
		}
		ops.Add(1)
	}
}

// churnWorker alternates allocate and free, ending balanced so the arena's
// occupancy returns to zero.
func (r *Runner) churnWorker(ctx context.Context, a *arena.Arena, stamp byte, ops *atomic.Int64) error {
	size := r.cfg.SlotSize
	held := make([]arena.Slot, 0, 64)
	for i := 0; i < r.cfg.OpsPerWorker; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if len(held) < 64 && i%2 == 0 {
			if s, ok := a.Allocate(size); ok {
				if r.cfg.TouchPayload {
					r.touch(a, s, stamp)
				}
				held = append(held, s)
			}
		} else if len(held) > 0 {
			s := held[len(held)-1]
			held = held[:len(held)-1]
			a.Free(s, size)
		}
		ops.Add(1)
	}
	for _, s := range held {
		a.Free(s, size)
	}
	return nil
}

func (r *Runner) touch(a *arena.Arena, s arena.Slot, stamp byte) {
	view := a.Bytes(s)
	view[0] = stamp
	view[len(view)-1] = stamp
}
