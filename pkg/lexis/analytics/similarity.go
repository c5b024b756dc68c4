package analytics

import "math"

// Jaccard returns |A∩B| / |A∪B|, or 0 when both sets are empty.
func Jaccard(a, b TokenSet) float64 {
	inter := SharedCount(a, b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// SharedCount returns |A∩B|.
func SharedCount(a, b TokenSet) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			n++
		}
	}
	return n
}

// Cosine returns the cosine similarity of two frequency vectors, or 0 when
// either vector has zero norm.
func Cosine(f, g map[string]int) float64 {
	return cosineWithNorms(f, g, norm(f), norm(g))
}

func cosineWithNorms(f, g map[string]int, nf, ng float64) float64 {
	if nf == 0 || ng == 0 {
		return 0
	}
	if len(f) > len(g) {
		f, g = g, f
	}
	var dot float64
	for tok, c := range f {
		if other, ok := g[tok]; ok {
			dot += float64(c) * float64(other)
		}
	}
	return dot / (nf * ng)
}

func norm(f map[string]int) float64 {
	var sum float64
	for _, c := range f {
		sum += float64(c) * float64(c)
	}
	return math.Sqrt(sum)
}

// Metric selects one of the pair scores.
type Metric int

const (
	MetricJaccard Metric = iota
	MetricCosine
	MetricShared
)

// String returns the metric name.
func (m Metric) String() string {
	switch m {
	case MetricJaccard:
		return "jaccard"
	case MetricCosine:
		return "cosine"
	case MetricShared:
		return "shared"
	default:
		return "unknown"
	}
}

// PairScore holds the three scores of one unordered document pair. A is the
// document that came first in corpus order.
type PairScore struct {
	A       string
	B       string
	Jaccard float64
	Cosine  float64
	Shared  int
}

// Score returns the value of the given metric.
func (p PairScore) Score(m Metric) float64 {
	switch m {
	case MetricCosine:
		return p.Cosine
	case MetricShared:
		return float64(p.Shared)
	default:
		return p.Jaccard
	}
}

type pair struct {
	A string
	B string
}

func newPair(a, b string) pair {
	if a > b {
		a, b = b, a
	}
	return pair{A: a, B: b}
}

// Matrix holds pair scores in the order they were computed.
type Matrix struct {
	pairs []PairScore
	index map[pair]int
}

func newMatrix(capacity int) *Matrix {
	return &Matrix{
		pairs: make([]PairScore, 0, capacity),
		index: make(map[pair]int, capacity),
	}
}

func (m *Matrix) add(p PairScore) {
	m.index[newPair(p.A, p.B)] = len(m.pairs)
	m.pairs = append(m.pairs, p)
}

// Len returns the number of scored pairs.
func (m *Matrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// Pairs returns a copy of all pair scores.
func (m *Matrix) Pairs() []PairScore {
	if m == nil {
		return nil
	}
	return append([]PairScore(nil), m.pairs...)
}

// Get looks up a pair in either order.
func (m *Matrix) Get(a, b string) (PairScore, bool) {
	if m == nil {
		return PairScore{}, false
	}
	i, ok := m.index[newPair(a, b)]
	if !ok {
		return PairScore{}, false
	}
	return m.pairs[i], true
}

// Most returns the highest-scoring pair under metric; the first computed
// pair wins ties. ok is false for an empty matrix.
func (m *Matrix) Most(metric Metric) (PairScore, bool) {
	return m.extreme(metric, func(a, b float64) bool { return a > b })
}

// Least returns the lowest-scoring pair under metric; the first computed
// pair wins ties.
func (m *Matrix) Least(metric Metric) (PairScore, bool) {
	return m.extreme(metric, func(a, b float64) bool { return a < b })
}

func (m *Matrix) extreme(metric Metric, better func(a, b float64) bool) (PairScore, bool) {
	if m.Len() == 0 {
		return PairScore{}, false
	}
	best := m.pairs[0]
	for _, p := range m.pairs[1:] {
		if better(p.Score(metric), best.Score(metric)) {
			best = p
		}
	}
	return best, true
}
