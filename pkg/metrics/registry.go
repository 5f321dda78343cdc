package metrics

import (
	"context"
	"sort"
	"sync"

	"github.com/openshelf/shelfd/pkg/logger"
)

// Registry is the process-wide instrument store. It is created once at
// startup and shared by reference with the instrumentation middleware and the
// scrape handler. Updates are safe from arbitrarily many goroutines.
type Registry struct {
	mu          sync.RWMutex
	instruments map[string]*instrument
	buckets     map[string][]float64
	log         logger.Logger
}

// NewRegistry creates an empty registry. Instrument misuse (negative counter
// deltas, negative observations, kind conflicts) is logged through log and
// dropped, never propagated.
func NewRegistry(log logger.Logger) *Registry {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &Registry{
		instruments: make(map[string]*instrument),
		buckets:     make(map[string][]float64),
		log:         log,
	}
}

// SetHistogramBuckets fixes the upper bounds used when the named histogram is
// first observed. Call during wiring, before traffic; histograms without an
// entry use DefBuckets. Existing instruments are not rebucketed.
func (r *Registry) SetHistogramBuckets(name string, bounds []float64) {
	r.mu.Lock()
	r.buckets[name] = append([]float64(nil), bounds...)
	r.mu.Unlock()
}

// CounterAdd adds delta to the counter identified by (name, labels), creating
// it at zero on first use. Negative deltas are dropped.
func (r *Registry) CounterAdd(name string, labels Labels, delta float64) {
	if delta < 0 {
		r.log.Warn(context.Background(), "dropped negative counter delta",
			logger.Fields{"metric": name, "delta": delta})
		return
	}
	in := r.getOrCreate(name, labels, KindCounter)
	if in == nil {
		return
	}
	in.add(delta)
}

// CounterInc adds 1 to the counter identified by (name, labels).
func (r *Registry) CounterInc(name string, labels Labels) {
	r.CounterAdd(name, labels, 1)
}

// GaugeSet overwrites the gauge identified by (name, labels).
func (r *Registry) GaugeSet(name string, labels Labels, value float64) {
	in := r.getOrCreate(name, labels, KindGauge)
	if in == nil {
		return
	}
	in.set(value)
}

// GaugeAdd adds delta (which may be negative) to the gauge.
func (r *Registry) GaugeAdd(name string, labels Labels, delta float64) {
	in := r.getOrCreate(name, labels, KindGauge)
	if in == nil {
		return
	}
	in.add(delta)
}

// HistogramObserve records value into the histogram identified by
// (name, labels), creating it with the fixed bounds for that name on first
// use. Negative observations are dropped.
func (r *Registry) HistogramObserve(name string, labels Labels, value float64) {
	if value < 0 {
		r.log.Warn(context.Background(), "dropped negative histogram observation",
			logger.Fields{"metric": name, "value": value})
		return
	}
	in := r.getOrCreate(name, labels, KindHistogram)
	if in == nil {
		return
	}
	in.observe(value)
}

// getOrCreate resolves the instrument for (name, labels), creating it
// atomically on first use. Two concurrent first uses of the same series
// always converge on a single instrument. A kind conflict with an existing
// series is logged and yields nil.
func (r *Registry) getOrCreate(name string, labels Labels, kind Kind) *instrument {
	signature := labelSignature(labels)
	key := name + "{" + signature + "}"

	r.mu.RLock()
	in, ok := r.instruments[key]
	r.mu.RUnlock()
	if !ok {
		r.mu.Lock()
		// Re-check: another goroutine may have created it between the
		// read unlock and here.
		in, ok = r.instruments[key]
		if !ok {
			in = &instrument{
				kind:      kind,
				name:      name,
				labels:    copyLabels(labels),
				signature: signature,
			}
			if kind == KindHistogram {
				bounds, ok := r.buckets[name]
				if !ok {
					bounds = DefBuckets
				}
				in.bounds = append([]float64(nil), bounds...)
				in.bucketCounts = make([]uint64, len(in.bounds))
			}
			r.instruments[key] = in
		}
		r.mu.Unlock()
	}

	if in.kind != kind {
		r.log.Warn(context.Background(), "metric kind conflict, update dropped",
			logger.Fields{"metric": name, "want": string(kind), "have": string(in.kind)})
		return nil
	}
	return in
}

// Snapshot returns an immutable point-in-time copy of every instrument.
// Each series is copied under its own lock, so no series is ever half
// updated; consistency across different series is not guaranteed. Families
// and series come back in a stable order so successive scrapes are
// diff-friendly.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	instruments := make([]*instrument, 0, len(r.instruments))
	for _, in := range r.instruments {
		instruments = append(instruments, in)
	}
	r.mu.RUnlock()

	families := make(map[string]*FamilySnapshot)
	for _, in := range instruments {
		fam, ok := families[in.name]
		if !ok {
			fam = &FamilySnapshot{Name: in.name, Kind: in.kind}
			families[in.name] = fam
		}
		series := in.snapshot()
		series.signature = in.signature
		fam.Series = append(fam.Series, series)
	}

	snap := make(Snapshot, 0, len(families))
	for _, fam := range families {
		sort.Slice(fam.Series, func(i, j int) bool {
			return fam.Series[i].signature < fam.Series[j].signature
		})
		snap = append(snap, *fam)
	}
	sort.Slice(snap, func(i, j int) bool { return snap[i].Name < snap[j].Name })
	return snap
}
