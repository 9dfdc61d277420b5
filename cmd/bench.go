package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	cache "github.com/krisalay/object-cache"
	"github.com/krisalay/object-cache/config"
	"github.com/krisalay/object-cache/types"
)

type benchObject string

func (b benchObject) ID() string { return string(b) }

var _ types.Object = benchObject("")

func newBenchCmd(f *rootFlags) *cobra.Command {
	var (
		preload    int
		goroutines int
		opsPerG    int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure concurrent read throughput",
		RunE: func(cmd *cobra.Command, _ []string) error {
			base := config.Default()
			base.Capacity = 200000
			cfg, err := f.resolveConfig(base)
			if err != nil {
				return err
			}
			return runBench(cmd, cfg, preload, goroutines, opsPerG)
		},
	}

	cmd.Flags().IntVar(&preload, "preload", 100000, "entries written before the run")
	cmd.Flags().IntVar(&goroutines, "goroutines", 200, "concurrent readers")
	cmd.Flags().IntVar(&opsPerG, "ops", 5000, "reads per goroutine")
	return cmd
}

func runBench(cmd *cobra.Command, cfg config.Config, preload, goroutines, opsPerG int) error {
	out := cmd.OutOrStdout()
	const contextKey = "bench"

	fmt.Fprintln(out, "\n================ CACHE LOAD BENCHMARK =================")
	fmt.Fprintln(out, "Capacity     :", cfg.Capacity)
	fmt.Fprintln(out, "TTL          :", cfg.TTL)
	fmt.Fprintln(out, "Preload Keys :", preload)
	fmt.Fprintln(out, "Goroutines   :", goroutines)
	fmt.Fprintln(out, "Ops/Goroutine:", opsPerG)

	if preload <= 0 {
		return fmt.Errorf("preload must be positive, got %d", preload)
	}

	c, err := cache.New[benchObject](cfg)
	if err != nil {
		return err
	}

	ids := make([]string, preload)
	for i := range ids {
		ids[i] = fmt.Sprintf("obj-%d", i)
		if err := c.Put(ids[i], contextKey, benchObject(ids[i])); err != nil {
			return err
		}
	}

	start := time.Now()

	var g errgroup.Group
	for i := 0; i < goroutines; i++ {
		g.Go(func() error {
			for j := 0; j < opsPerG; j++ {
				c.GetByID(ids[(i+j)%len(ids)], contextKey)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	duration := time.Since(start)
	totalOps := goroutines * opsPerG

	fmt.Fprintln(out, "\n================ RESULTS =================")
	fmt.Fprintf(out, "Total Operations : %d\n", totalOps)
	fmt.Fprintf(out, "Total Time       : %v\n", duration)
	fmt.Fprintf(out, "Throughput       : %.2f ops/sec\n", float64(totalOps)/duration.Seconds())
	fmt.Fprintln(out, "=========================================")
	return nil
}
