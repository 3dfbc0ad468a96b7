package feature

import (
	"math"
	"sort"
	"sync"
)

// TFIDF is a simplified term-weight index. Fit selects the top terms by
// document frequency as the fixed vector axes; Vector projects a text onto
// those axes. Ordering is fully deterministic (frequency desc, then term).
type TFIDF struct {
	mu     sync.RWMutex
	dim    int
	fitted bool
	terms  []string
	index  map[string]int
	idf    map[string]float64
}

// NewTFIDF creates an unfitted index producing dim-wide vectors
func NewTFIDF(dim int) *TFIDF {
	if dim <= 0 {
		dim = 1
	}
	return &TFIDF{dim: dim}
}

// Fitted reports whether Fit has been called with a non-empty corpus
func (t *TFIDF) Fitted() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.fitted
}

// Fit tokenizes all documents, removes stop-words (inside Tokenize), and
// builds the term index. Refitting replaces the previous index.
func (t *TFIDF) Fit(docs []string) {
	df := make(map[string]int)
	n := 0
	for _, doc := range docs {
		toks := Tokenize(doc)
		if len(toks) == 0 {
			continue
		}
		n++
		seen := make(map[string]struct{}, len(toks))
		for _, tok := range toks {
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if n == 0 {
		return
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > t.dim {
		terms = terms[:t.dim]
	}

	index := make(map[string]int, len(terms))
	idf := make(map[string]float64, len(terms))
	for i, term := range terms {
		index[term] = i
		idf[term] = math.Log(float64(n)/(1.0+float64(df[term]))) + 1.0
	}

	t.mu.Lock()
	t.terms = terms
	t.index = index
	t.idf = idf
	t.fitted = true
	t.mu.Unlock()
}

// Vector projects text onto the fitted axes, truncated/zero-padded to the
// fixed width. Returns all zeros when unfitted or the text has no terms.
func (t *TFIDF) Vector(text string) []float64 {
	v := make([]float64, t.dim)

	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.fitted {
		return v
	}

	toks := Tokenize(text)
	if len(toks) == 0 {
		return v
	}
	tf := make(map[string]int, len(toks))
	for _, tok := range toks {
		tf[tok]++
	}
	total := float64(len(toks))
	for term, count := range tf {
		i, ok := t.index[term]
		if !ok {
			continue
		}
		v[i] = (float64(count) / total) * t.idf[term]
	}
	return v
}

// Terms returns the fitted vector axes in order
func (t *TFIDF) Terms() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, len(t.terms))
	copy(out, t.terms)
	return out
}
