// Package metrics keeps rolling statistics about book construction.
package metrics

import (
	"slices"
	"sync"
	"time"
)

type sample struct {
	timestamp time.Time
	micros    int64
	bytes     int64
	failed    bool
}

// Distribution summarises one measured quantity.
type Distribution struct {
	Min int64   `json:"min"`
	Max int64   `json:"max"`
	Avg float64 `json:"avg"`
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

// Snapshot is a point-in-time aggregate of construction samples.
type Snapshot struct {
	Count      int          `json:"count"`
	Failures   int          `json:"failures"`
	TotalBytes int64        `json:"total_bytes"`
	LatencyUs  Distribution `json:"latency_us"`
	SizeBytes  Distribution `json:"size_bytes"`
}

// BuildStats tracks recent book constructions within a rolling window.
type BuildStats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
	now     func() time.Time
}

func NewBuildStats(maxAge time.Duration) *BuildStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &BuildStats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// Record adds one construction attempt of size bytes that took d.
func (s *BuildStats) Record(d time.Duration, size int, err error) {
	micros := d.Microseconds()
	if micros < 0 {
		micros = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		timestamp: now,
		micros:    micros,
		bytes:     int64(size),
		failed:    err != nil,
	})
}

func (s *BuildStats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(s.now())
	if len(s.samples) == 0 {
		return Snapshot{}
	}

	latency := make([]int64, 0, len(s.samples))
	sizes := make([]int64, 0, len(s.samples))
	snap := Snapshot{Count: len(s.samples)}
	for _, sm := range s.samples {
		latency = append(latency, sm.micros)
		sizes = append(sizes, sm.bytes)
		snap.TotalBytes += sm.bytes
		if sm.failed {
			snap.Failures++
		}
	}
	snap.LatencyUs = distribution(latency)
	snap.SizeBytes = distribution(sizes)
	return snap
}

func (s *BuildStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func distribution(values []int64) Distribution {
	slices.Sort(values)
	var sum int64
	for _, v := range values {
		sum += v
	}
	return Distribution{
		Min: values[0],
		Max: values[len(values)-1],
		Avg: float64(sum) / float64(len(values)),
		P50: percentile(values, 50),
		P95: percentile(values, 95),
		P99: percentile(values, 99),
	}
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
