// Package stats accumulates numeric samples into sums and averages.
package stats

// Collector accumulates samples. The zero value is ready to use.
// A Collector is not safe for concurrent use.
type Collector struct {
	sum   float64
	count int
}

// New returns an empty collector.
func New() *Collector {
	return &Collector{}
}

// Record adds a sample.
func (c *Collector) Record(sample float64) {
	c.sum += sample
	c.count++
}

// Sum returns the sum of all samples, 0 when there are none.
func (c *Collector) Sum() float64 {
	return c.sum
}

// Count returns the number of recorded samples.
func (c *Collector) Count() int {
	return c.count
}

// Average returns the mean of all samples. ok is false when nothing has
// been recorded: the average of no samples is undefined, not zero.
func (c *Collector) Average() (avg float64, ok bool) {
	if c.count == 0 {
		return 0, false
	}
	return c.sum / float64(c.count), true
}
