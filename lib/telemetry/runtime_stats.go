package telemetry

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
	otelmetric "go.opentelemetry.io/otel/metric"
)

type runtimeGauges struct {
	cpu        otelmetric.Float64Gauge
	heapMb     otelmetric.Int64Gauge
	goroutines otelmetric.Int64Gauge
}

func newRuntimeGauges() (runtimeGauges, error) {
	meter := otel.Meter("frsmenu/runtime")
	var g runtimeGauges
	var err error
	g.cpu, err = meter.Float64Gauge("process.cpu_percent")
	if err != nil {
		return g, err
	}
	g.heapMb, err = meter.Int64Gauge("process.heap_mb")
	if err != nil {
		return g, err
	}
	g.goroutines, err = meter.Int64Gauge("process.goroutines")
	return g, err
}

func (g runtimeGauges) record(ctx context.Context, sample time.Duration) {
	// blocks for `sample`, returns early with ctx.Err() on cancel
	usage, err := cpu.PercentWithContext(ctx, sample, false)
	if ctx.Err() != nil {
		return
	}
	if err == nil && len(usage) > 0 {
		g.cpu.Record(ctx, usage[0])
	} else {
		slog.DebugContext(ctx, "failed to read cpu usage", "err", err)
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	g.heapMb.Record(ctx, int64(mem.HeapAlloc/1_000_000))
	g.goroutines.Record(ctx, int64(runtime.NumGoroutine()))
}

// RecordRuntimeStats samples cpu, heap and goroutine gauges every `interval`
// until ctx is done. The returned channel is closed once the sampler exits.
func RecordRuntimeStats(ctx context.Context, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	gauges, err := newRuntimeGauges()
	if err != nil {
		slog.WarnContext(ctx, "runtime gauges unavailable", "err", err)
		close(done)
		return done
	}

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				gauges.record(ctx, interval/2)
			}
		}
	}()
	return done
}
