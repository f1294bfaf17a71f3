// Package usage samples CPU and memory consumption of the running process.
package usage

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/procfs"
)

const bytesPerMB = 1024 * 1024

// Usage is one sample of process resource consumption.
type Usage struct {
	// CPU is the share of one core used since the previous sample, in percent.
	CPU float64
	// RAM is the resident set size in megabytes.
	RAM float64
}

// Source reads cumulative CPU time and current resident memory.
type Source interface {
	Read() (cpuSeconds float64, rssBytes int, err error)
}

type procSource struct {
	proc procfs.Proc
}

// NewProcSource returns a Source backed by /proc/self.
func NewProcSource() (Source, error) {
	p, err := procfs.Self()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open /proc/self")
	}
	return &procSource{proc: p}, nil
}

func (s *procSource) Read() (float64, int, error) {
	st, err := s.proc.Stat()
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to read process stat")
	}
	return st.CPUTime(), st.ResidentMemory(), nil
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithSource replaces the /proc backed source.
func WithSource(src Source) Option {
	return func(s *Sampler) {
		s.source = src
	}
}

// Sampler takes a Usage sample every interval.
type Sampler struct {
	interval time.Duration
	source   Source
	now      func() time.Time
}

// NewSampler returns a sampler for the current process.
func NewSampler(interval time.Duration, opts ...Option) (*Sampler, error) {
	if interval <= 0 {
		return nil, errors.Errorf("sample interval must be positive, got %s", interval)
	}
	s := &Sampler{interval: interval, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.source == nil {
		src, err := NewProcSource()
		if err != nil {
			return nil, err
		}
		s.source = src
	}
	return s, nil
}

// Run samples until ctx is done and returns the samples in order.
// A failing read stops sampling and is returned with the samples taken so far.
func (s *Sampler) Run(ctx context.Context) ([]Usage, error) {
	lastCPU, _, err := s.source.Read()
	if err != nil {
		return nil, err
	}
	lastAt := s.now()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var samples []Usage
	for {
		select {
		case <-ctx.Done():
			return samples, nil
		case <-ticker.C:
			cpu, rss, err := s.source.Read()
			if err != nil {
				return samples, err
			}
			at := s.now()
			samples = append(samples, Usage{
				CPU: cpuPercent(cpu-lastCPU, at.Sub(lastAt)),
				RAM: float64(rss) / bytesPerMB,
			})
			lastCPU, lastAt = cpu, at
		}
	}
}

func cpuPercent(cpuSeconds float64, wall time.Duration) float64 {
	if wall <= 0 {
		return 0
	}
	return cpuSeconds / wall.Seconds() * 100
}
