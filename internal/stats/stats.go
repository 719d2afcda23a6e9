// Package stats implements a lock-free running accumulator — sample count,
// min, max, sum and sum-of-squares — plus a process-wide named registry,
// grounded on original_source/src/lib/statistic.c's
// lagopus_statistic_create/record/min/max/average/sd family.
package stats

import (
	"math"

	"go.uber.org/atomic"

	"github.com/lagopus-go/dsinterp/internal/result"
)

// Accumulator records int64 samples and derives running statistics from
// them, using only atomic operations — no mutex is held while recording,
// matching the original's __sync_add_and_fetch/lagopus_atomic_update_min/max
// approach to avoid taking a lock on every sample.
type Accumulator struct {
	name string
	n    atomic.Int64
	min  atomic.Int64
	max  atomic.Int64
	sum  atomic.Int64
	sum2 atomic.Int64
}

// New constructs a reset Accumulator with the given name.
func New(name string) *Accumulator {
	a := &Accumulator{name: name}
	a.Reset()
	return a
}

// Name returns the accumulator's name.
func (a *Accumulator) Name() string { return a.name }

// Reset zeroes the accumulator, matching s_reset_stat.
func (a *Accumulator) Reset() {
	a.n.Store(0)
	a.min.Store(math.MaxInt64)
	a.max.Store(math.MinInt64)
	a.sum.Store(0)
	a.sum2.Store(0)
}

// Record adds a sample, updating count, sum, sum-of-squares, min and max.
func (a *Accumulator) Record(val int64) {
	a.n.Add(1)
	a.sum.Add(val)
	a.sum2.Add(val * val)
	updateMin(&a.min, val)
	updateMax(&a.max, val)
}

func updateMin(cur *atomic.Int64, val int64) {
	for {
		old := cur.Load()
		if val >= old {
			return
		}
		if cur.CompareAndSwap(old, val) {
			return
		}
	}
}

func updateMax(cur *atomic.Int64, val int64) {
	for {
		old := cur.Load()
		if val <= old {
			return
		}
		if cur.CompareAndSwap(old, val) {
			return
		}
	}
}

// SampleN returns the number of samples recorded.
func (a *Accumulator) SampleN() int64 { return a.n.Load() }

// Min returns the smallest recorded sample, or an OutOfRange error if no
// sample has been recorded yet.
func (a *Accumulator) Min() (int64, error) {
	if a.n.Load() == 0 {
		return 0, result.New(result.OutOfRange)
	}
	return a.min.Load(), nil
}

// Max returns the largest recorded sample, or an OutOfRange error if no
// sample has been recorded yet.
func (a *Accumulator) Max() (int64, error) {
	if a.n.Load() == 0 {
		return 0, result.New(result.OutOfRange)
	}
	return a.max.Load(), nil
}

// Average returns the arithmetic mean of recorded samples, or 0 if none.
func (a *Accumulator) Average() float64 {
	n := a.n.Load()
	if n == 0 {
		return 0
	}
	return float64(a.sum.Load()) / float64(n)
}

// StdDev returns the standard deviation of recorded samples, computed via
// the identity sum((x-avg)^2) = sum(x^2) - 2*avg*sum(x) + n*avg^2. When ssd
// is true it returns the sample (unbiased, n-1 denominator) standard
// deviation instead, matching lagopus_statistic_sd's is_ssd flag.
func (a *Accumulator) StdDev(ssd bool) float64 {
	n := a.n.Load()
	if n == 0 {
		return 0
	}
	sum := float64(a.sum.Load())
	sum2 := float64(a.sum2.Load())
	avg := sum / float64(n)
	variance := sum2 - 2.0*avg*sum + avg*avg*float64(n)

	if ssd {
		if n < 2 {
			return 0
		}
		return math.Sqrt(variance / float64(n-1))
	}
	return math.Sqrt(variance / float64(n))
}
