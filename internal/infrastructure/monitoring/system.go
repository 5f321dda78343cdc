package monitoring

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/openshelf/shelfd/pkg/logger"
	"github.com/openshelf/shelfd/pkg/metrics"
)

// Gauge names refreshed on each scrape.
const (
	MetricProcessCPUUsage = "process_cpu_usage"
	MetricMemoryUsedBytes = "memory_used_bytes"
	MetricGoroutinesLive  = "goroutines_live"
)

// SystemCollector refreshes host-level gauges in the registry. It runs right
// before a snapshot is taken, so scrapes always see current values.
type SystemCollector struct {
	registry *metrics.Registry
	log      logger.Logger
}

// NewSystemCollector creates a collector writing into registry.
func NewSystemCollector(registry *metrics.Registry, log logger.Logger) *SystemCollector {
	return &SystemCollector{registry: registry, log: log}
}

// Refresh samples load average, used memory and live goroutines. Sampling
// failures are logged and skipped; a scrape never fails because the host
// stats were unavailable.
func (c *SystemCollector) Refresh(ctx context.Context) {
	if avg, err := load.AvgWithContext(ctx); err == nil {
		c.registry.GaugeSet(MetricProcessCPUUsage, nil, avg.Load1)
	} else {
		c.log.Debug(ctx, "load average unavailable", logger.Fields{"error": err.Error()})
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		c.registry.GaugeSet(MetricMemoryUsedBytes, nil, float64(vm.Used))
	} else {
		c.log.Debug(ctx, "memory stats unavailable", logger.Fields{"error": err.Error()})
	}

	c.registry.GaugeSet(MetricGoroutinesLive, nil, float64(runtime.NumGoroutine()))
}
