package topics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"reviewtopics/lib/textutil"

	"github.com/james-bowman/nlp"
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmptyVocabulary = errors.New("empty vocabulary")
	ErrDFBounds        = errors.New("max_df corresponds to fewer documents than min_df")
)

type VectoriserOptions struct {
	// MaxDF drops terms that appear in more than this fraction of documents.
	MaxDF float64
	// MinDF drops terms that appear in fewer than this many documents.
	MinDF     int
	StopWords []string
}

// Vectoriser turns documents into tf-idf weighted term vectors. It
// implements nlp.Vectoriser, with the vocabulary learned by Fit.
//
// The output matrix has one row per vocabulary term and one column per
// document.
type Vectoriser struct {
	opts  VectoriserOptions
	stops map[string]struct{}

	Vocabulary []string
	index      map[string]int
	idf        []float64
	err        error
}

var _ nlp.Vectoriser = (*Vectoriser)(nil)

func NewVectoriser(opts VectoriserOptions) *Vectoriser {
	stops := make(map[string]struct{}, len(opts.StopWords))
	for _, w := range opts.StopWords {
		stops[w] = struct{}{}
	}
	return &Vectoriser{opts: opts, stops: stops}
}

func (v *Vectoriser) tokens(doc string) []string {
	var out []string
	for _, tok := range textutil.Tokenize(doc) {
		if _, stop := v.stops[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Fit learns the vocabulary and inverse document frequencies of docs. A
// failure is reported by the next call to Transform.
func (v *Vectoriser) Fit(docs ...string) nlp.Vectoriser {
	v.Vocabulary = nil
	v.index = nil
	v.idf = nil
	v.err = v.fit(docs)
	return v
}

func (v *Vectoriser) fit(docs []string) error {
	if len(docs) == 0 {
		return ErrEmptyVocabulary
	}

	df := map[string]int{}
	for _, doc := range docs {
		seen := map[string]struct{}{}
		for _, tok := range v.tokens(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	n := len(docs)
	maxCount := v.opts.MaxDF * float64(n)
	if maxCount < float64(v.opts.MinDF) {
		return fmt.Errorf("%w: max_df=%v over %d documents, min_df=%d", ErrDFBounds, v.opts.MaxDF, n, v.opts.MinDF)
	}

	var vocab []string
	for term, count := range df {
		if count < v.opts.MinDF || float64(count) > maxCount {
			continue
		}
		vocab = append(vocab, term)
	}
	if len(vocab) == 0 {
		return fmt.Errorf("%w: no terms remain after pruning %d documents", ErrEmptyVocabulary, n)
	}
	sort.Strings(vocab)

	v.Vocabulary = vocab
	v.index = make(map[string]int, len(vocab))
	v.idf = make([]float64, len(vocab))
	for i, term := range vocab {
		v.index[term] = i
		v.idf[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}
	return nil
}

// Transform weights docs against the fitted vocabulary. Every document
// vector with at least one known term has unit length.
func (v *Vectoriser) Transform(docs ...string) (mat.Matrix, error) {
	if v.err != nil {
		return nil, v.err
	}
	if v.index == nil {
		return nil, errors.New("vectoriser has not been fitted")
	}

	// nonzeros are stored column by column in ascending term order, the
	// lda fit visits them in storage order
	indptr := make([]int, 1, len(docs)+1)
	var ind []int
	var data []float64
	for _, doc := range docs {
		counts := map[int]float64{}
		for _, tok := range v.tokens(doc) {
			i, ok := v.index[tok]
			if !ok {
				continue
			}
			counts[i]++
		}

		terms := make([]int, 0, len(counts))
		for i := range counts {
			terms = append(terms, i)
		}
		sort.Ints(terms)

		var norm float64
		weights := make([]float64, len(terms))
		for k, i := range terms {
			weights[k] = counts[i] * v.idf[i]
			norm += weights[k] * weights[k]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for k, i := range terms {
				ind = append(ind, i)
				data = append(data, weights[k]/norm)
			}
		}
		indptr = append(indptr, len(ind))
	}
	return sparse.NewCSC(len(v.Vocabulary), len(docs), indptr, ind, data), nil
}

func (v *Vectoriser) FitTransform(docs ...string) (mat.Matrix, error) {
	return v.Fit(docs...).Transform(docs...)
}
