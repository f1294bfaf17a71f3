// Package generate builds synthetic trees of a configurable shape for
// benchmarking searches.
package generate

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/pkg/errors"

	"github.com/njchilds90/go-treesearch"
)

const (
	// MaxLetters is the size of the full alphabet.
	MaxLetters = 26

	defaultMaxNodes = 10_000_000
)

// Option configures Generate.
type Option func(*generator)

// WithSeed makes the generated leaves depend on seed. The default seed is 1.
func WithSeed(seed int64) Option {
	return func(g *generator) {
		g.seed = seed
	}
}

// WithMaxNodes caps the total number of nodes Generate may build.
// Default is 10,000,000.
func WithMaxNodes(n int) Option {
	return func(g *generator) {
		g.maxNodes = n
	}
}

type generator struct {
	letters  int
	seed     int64
	maxNodes int
	rnd      *rand.Rand
}

// Generate builds a tree that is depth levels deep below the root, where
// every container holds children entries. Containers on even levels
// (the root is level 0) are objects keyed by letters of an alphabet of
// the given size; containers on odd levels are arrays. Leaves cycle
// through integers, floats, strings, booleans and null.
//
// A depth of 0 yields a single scalar leaf.
func Generate(letters, depth, children int, opts ...Option) (treesearch.Value, error) {
	if letters < 1 || letters > MaxLetters {
		return treesearch.Value{}, errors.Errorf("letters must be between 1 and %d, got %d", MaxLetters, letters)
	}
	if depth < 0 {
		return treesearch.Value{}, errors.Errorf("depth must not be negative, got %d", depth)
	}
	if children < 0 {
		return treesearch.Value{}, errors.Errorf("children must not be negative, got %d", children)
	}

	g := &generator{letters: letters, seed: 1, maxNodes: defaultMaxNodes}
	for _, opt := range opts {
		opt(g)
	}
	g.rnd = rand.New(rand.NewSource(g.seed))

	if n, ok := NodeCount(depth, children); !ok || (g.maxNodes > 0 && n > g.maxNodes) {
		return treesearch.Value{}, errors.Errorf("tree with depth %d and %d children exceeds the limit of %d nodes", depth, children, g.maxNodes)
	}

	if depth > 0 && children == 0 {
		return g.container(0, nil), nil
	}

	// Build bottom-up: each pass groups the level below into parents.
	width := pow(children, depth)
	level := make([]treesearch.Value, width)
	for i := range level {
		level[i] = g.leaf(i)
	}
	for l := depth - 1; l >= 0; l-- {
		parents := make([]treesearch.Value, len(level)/children)
		for i := range parents {
			parents[i] = g.container(l, level[i*children:(i+1)*children])
		}
		level = parents
	}
	return level[0], nil
}

// NodeCount returns the number of nodes Generate builds for the given
// shape. ok is false when the count overflows an int.
func NodeCount(depth, children int) (n int, ok bool) {
	if children == 0 {
		return 1, true
	}
	total, width := 1, 1
	for l := 0; l < depth; l++ {
		if width > math.MaxInt/children {
			return 0, false
		}
		width *= children
		if total > math.MaxInt-width {
			return 0, false
		}
		total += width
	}
	return total, true
}

// Key returns the i-th object key for an alphabet of the given size:
// "a", "b", ... then "a1", "b1", ... once the alphabet is used up.
func Key(letters, i int) string {
	k := string(rune('a' + i%letters))
	if i >= letters {
		k += strconv.Itoa(i / letters)
	}
	return k
}

func (g *generator) container(level int, items []treesearch.Value) treesearch.Value {
	if level%2 == 1 {
		return treesearch.Array(append([]treesearch.Value(nil), items...)...)
	}
	members := make([]treesearch.Member, len(items))
	for i, item := range items {
		members[i] = treesearch.M(Key(g.letters, i), item)
	}
	return treesearch.Object(members...)
}

func (g *generator) leaf(i int) treesearch.Value {
	switch i % 5 {
	case 0:
		return treesearch.Int(int64(g.rnd.Intn(1000)))
	case 1:
		return treesearch.Float(float64(g.rnd.Intn(100000)) / 100)
	case 2:
		return treesearch.String(g.word())
	case 3:
		return treesearch.Bool(g.rnd.Intn(2) == 1)
	default:
		return treesearch.Null()
	}
}

func (g *generator) word() string {
	n := 1 + g.rnd.Intn(8)
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + g.rnd.Intn(g.letters))
	}
	return string(b)
}

func pow(base, exp int) int {
	r := 1
	for ; exp > 0; exp-- {
		r *= base
	}
	return r
}
