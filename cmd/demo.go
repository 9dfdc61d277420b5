package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	cache "github.com/krisalay/object-cache"
	"github.com/krisalay/object-cache/config"
	"github.com/krisalay/object-cache/metrics"
	"github.com/krisalay/object-cache/object"
	"github.com/krisalay/object-cache/session"
)

func newDemoCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through misses, hits, expiry, coalesced fetches and eviction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			base := config.Default()
			base.Capacity = 20
			base.TTL = time.Second
			cfg, err := f.resolveConfig(base)
			if err != nil {
				return err
			}
			return runDemo(cmd.Context(), cmd, cfg, f.logLevel)
		},
	}
}

func runDemo(ctx context.Context, cmd *cobra.Command, cfg config.Config, logLevel string) error {
	out := cmd.OutOrStdout()
	logger := newLogger(logLevel)

	fmt.Fprintln(out, "\n==================== SYSTEM BOOT ====================")
	fmt.Fprintln(out, "EVICTION POLICY :", cfg.Eviction)
	fmt.Fprintln(out, "CAPACITY        :", cfg.Capacity)
	fmt.Fprintln(out, "TTL             :", cfg.TTL)

	// ---------------- Repository ----------------
	repo := session.NewMemoryRepository()
	repo.Latency = 20 * time.Millisecond
	folderPath, ids, err := seedRepository(repo, cfg.Capacity+5)
	if err != nil {
		return err
	}

	// ---------------- Cache + Session ----------------
	counters := &metrics.Counters{}
	reg := prometheus.NewRegistry()
	c, err := cache.New[*object.Object](cfg,
		cache.WithMetrics(metrics.Multi{counters, metrics.NewPrometheus(reg, "demo")}),
		cache.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	s := session.New(c, repo, object.NewFactory(object.DefaultTypes()), session.WithLogger(logger))

	full := object.DefaultOperationContext()
	names := object.DefaultOperationContext()
	names.Filter = []string{object.PropName}

	// ====================================================
	fmt.Fprintln(out, "\n==================== 1) CACHE MISS ====================")
	doc, err := s.GetObject(ctx, ids[0], full)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "SESSION → GET %s = %s (fetches: %d)\n", short(doc.ID()), doc.Name(), repo.Fetches())

	// ====================================================
	fmt.Fprintln(out, "\n==================== 2) CACHE HIT ====================")
	doc, err = s.GetObject(ctx, ids[0], full)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "SESSION → GET %s = %s (fetches: %d)\n", short(doc.ID()), doc.Name(), repo.Fetches())

	// ====================================================
	fmt.Fprintln(out, "\n==================== 3) OTHER FETCH CONTEXT ====================")
	doc, err = s.GetObject(ctx, ids[0], names)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "SESSION → GET %s [name only] = %d properties (fetches: %d)\n",
		short(doc.ID()), doc.PropertyCount(), repo.Fetches())

	// ====================================================
	fmt.Fprintln(out, "\n==================== 4) PATH LOOKUP ====================")
	for range 2 {
		folder, err := s.GetObjectByPath(ctx, folderPath, full)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "SESSION → GET %s = %s folder=%t (fetches: %d)\n",
			folderPath, short(folder.ID()), folder.IsFolder(), repo.Fetches())
	}

	// ====================================================
	if cfg.TTL > 0 {
		fmt.Fprintln(out, "\n==================== 5) TTL EXPIRATION ====================")
		time.Sleep(cfg.TTL + 50*time.Millisecond)
		doc, err = s.GetObject(ctx, ids[0], full)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "SESSION → GET %s after TTL (fetches: %d)\n", short(doc.ID()), repo.Fetches())
	}

	// ====================================================
	fmt.Fprintln(out, "\n==================== 6) COALESCED FETCH ====================")
	before := repo.Fetches()
	lines := make([]string, 5)
	wg := sync.WaitGroup{}
	for i := range lines {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			d, err := s.GetObject(ctx, ids[1], full)
			if err != nil {
				lines[id] = fmt.Sprintf("GOROUTINE-%d → error: %v", id, err)
				return
			}
			lines[id] = fmt.Sprintf("GOROUTINE-%d → GET %s = %s", id, short(d.ID()), d.Name())
		}(i)
	}
	wg.Wait()
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
	fmt.Fprintf(out, "ROUND TRIPS for 5 callers: %d\n", repo.Fetches()-before)

	// ====================================================
	fmt.Fprintln(out, "\n==================== 7) EVICTION ====================")
	for _, id := range ids {
		if _, err := s.GetObject(ctx, id, full); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "CACHE → %d entries after reading %d documents\n", c.Len(), len(ids))

	// ====================================================
	fmt.Fprintln(out, "\n==================== 8) INVALIDATE ====================")
	n := s.Invalidate(ids[len(ids)-1])
	fmt.Fprintf(out, "SESSION → INVALIDATE %s removed %d snapshot(s)\n", short(ids[len(ids)-1]), n)

	// ====================================================
	snap := counters.Snapshot()
	fmt.Fprintln(out, "\n==================== METRICS ====================")
	fmt.Fprintf(out, "HITS      : %d\n", snap.Hits)
	fmt.Fprintf(out, "MISSES    : %d\n", snap.Misses)
	fmt.Fprintf(out, "EVICTIONS : %d\n", snap.Evictions)
	fmt.Fprintf(out, "EXPIRED   : %d\n", snap.Expirations)
	fmt.Fprintf(out, "ENTRIES   : %d\n", snap.Entries)
	fmt.Fprintf(out, "HIT RATIO : %.2f\n", snap.HitRatio())

	families, err := reg.Gather()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\n==================== PROMETHEUS ====================")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			v := m.GetCounter().GetValue()
			if g := m.GetGauge(); g != nil {
				v = g.GetValue()
			}
			fmt.Fprintf(out, "%-40s %g\n", mf.GetName(), v)
		}
	}
	return nil
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
