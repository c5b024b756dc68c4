package analytics

import (
	"math/rand/v2"
	"slices"
)

// Strategy decides which document pairs get scored. Swapping it changes
// the cost of the similarity stage without touching per-document analysis.
type Strategy interface {
	Compute(docs []DocumentStats) *Matrix
}

// PairCount returns C(n,2).
func PairCount(n int) int64 {
	if n < 2 {
		return 0
	}
	return int64(n) * int64(n-1) / 2
}

// AllPairs scores every unordered pair, in combination order
// (0,1), (0,2), ..., (1,2), ...
type AllPairs struct{}

// Compute implements Strategy.
func (AllPairs) Compute(docs []DocumentStats) *Matrix {
	norms := docNorms(docs)
	m := newMatrix(int(PairCount(len(docs))))
	for i := 0; i < len(docs); i++ {
		for j := i + 1; j < len(docs); j++ {
			m.add(scorePair(docs, norms, i, j))
		}
	}
	return m
}

// SampledPairs scores a uniform random sample of at most MaxPairs distinct
// pairs. The sample depends only on Seed and the document count, and the
// chosen pairs are emitted in combination order. MaxPairs <= 0 scores all
// pairs.
type SampledPairs struct {
	MaxPairs int
	Seed     uint64
}

// Compute implements Strategy.
func (s SampledPairs) Compute(docs []DocumentStats) *Matrix {
	total := PairCount(len(docs))
	if s.MaxPairs <= 0 || total <= int64(s.MaxPairs) {
		return AllPairs{}.Compute(docs)
	}

	ranks := samplePairRanks(total, s.MaxPairs, rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15)))
	norms := docNorms(docs)
	m := newMatrix(len(ranks))

	n := len(docs)
	i, offset, rowLen := 0, int64(0), int64(n-1)
	for _, k := range ranks {
		for k >= offset+rowLen {
			offset += rowLen
			i++
			rowLen--
		}
		j := i + 1 + int(k-offset)
		m.add(scorePair(docs, norms, i, j))
	}
	return m
}

// samplePairRanks picks k distinct ranks from [0,total) with Floyd's
// algorithm and returns them sorted.
func samplePairRanks(total int64, k int, rng *rand.Rand) []int64 {
	chosen := make(map[int64]struct{}, k)
	for j := total - int64(k); j < total; j++ {
		t := rng.Int64N(j + 1)
		if _, dup := chosen[t]; dup {
			t = j
		}
		chosen[t] = struct{}{}
	}
	ranks := make([]int64, 0, k)
	for r := range chosen {
		ranks = append(ranks, r)
	}
	slices.Sort(ranks)
	return ranks
}

func docNorms(docs []DocumentStats) []float64 {
	norms := make([]float64, len(docs))
	for i, d := range docs {
		norms[i] = norm(d.Frequencies)
	}
	return norms
}

func scorePair(docs []DocumentStats, norms []float64, i, j int) PairScore {
	a, b := docs[i], docs[j]
	shared := SharedCount(a.Unique, b.Unique)
	union := len(a.Unique) + len(b.Unique) - shared
	var jac float64
	if union > 0 {
		jac = float64(shared) / float64(union)
	}
	return PairScore{
		A:       a.Name,
		B:       b.Name,
		Jaccard: jac,
		Cosine:  cosineWithNorms(a.Frequencies, b.Frequencies, norms[i], norms[j]),
		Shared:  shared,
	}
}
