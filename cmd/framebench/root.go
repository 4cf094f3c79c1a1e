package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/framekit/bench"
	"github.com/joshuapare/framekit/slotmap"
)

var (
	// Global flags
	capacityMB  int64
	slotSize    int64
	workers     int
	ops         int
	disciplines []string
	churn       bool
	touch       bool
	verbose     bool
)

// logger discards by default; --verbose routes it to stderr.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

var rootCmd = &cobra.Command{
	Use:   "framebench",
	Short: "Benchmark the framekit slot arena across synchronization disciplines",
	Long: `framebench constructs a fixed-size slot arena and drives concurrent
allocate/free workloads against it, one run per requested discipline.

A fill run (the default) races workers to claim every slot once; a churn
run (--churn) has each worker alternate allocate and free for a fixed
number of operations. Throughput, CAS retry counts, and relative speed
are reported per discipline.

Examples:
  framebench
  framebench --workers 16 --churn --ops 500000
  framebench --discipline exclusive --discipline lockfree-hint --touch`,
	Version: "0.1.0",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBench(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.Flags().Int64Var(&capacityMB, "capacity-mb", 200, "Arena capacity in MiB")
	rootCmd.Flags().Int64Var(&slotSize, "slot-size", 4096, "Slot size in bytes")
	rootCmd.Flags().IntVar(&workers, "workers", 4, "Concurrent workers")
	rootCmd.Flags().IntVar(&ops, "ops", 100000, "Operations per worker (churn mode)")
	rootCmd.Flags().StringArrayVar(&disciplines, "discipline", nil,
		"Discipline to run: exclusive, spin, lockfree, lockfree-hint (repeatable; default all)")
	rootCmd.Flags().BoolVar(&churn, "churn", false, "Alternate allocate/free instead of filling")
	rootCmd.Flags().BoolVar(&touch, "touch", false, "Write payload bytes into every claimed slot")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBench(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	selected, err := selectedDisciplines()
	if err != nil {
		return err
	}

	baseline := 0.0
	for i, d := range selected {
		logger.Debug("starting run",
			"discipline", d.String(),
			"workers", workers,
			"capacity_mb", capacityMB,
			"slot_size", slotSize,
			"churn", churn)

		r, err := bench.NewRunner(bench.Config{
			Capacity:     capacityMB << 20,
			SlotSize:     slotSize,
			Discipline:   d,
			Workers:      workers,
			OpsPerWorker: ops,
			Churn:        churn,
			TouchPayload: touch,
		})
		if err != nil {
			return err
		}
		rep, err := r.Run(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", d, err)
		}

		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, rep.Format())
		if i == 0 {
			baseline = rep.OpsPerSec
		} else if baseline > 0 {
			fmt.Fprintf(out, "vs %s:      %.2fx\n", selected[0], rep.OpsPerSec/baseline)
		}
	}
	return nil
}

func selectedDisciplines() ([]slotmap.Discipline, error) {
	if len(disciplines) == 0 {
		return slotmap.Disciplines(), nil
	}
	out := make([]slotmap.Discipline, 0, len(disciplines))
	for _, name := range disciplines {
		d, err := slotmap.ParseDiscipline(name)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
