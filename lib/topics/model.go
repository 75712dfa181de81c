package topics

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"reviewtopics/lib/telemetry"
	"reviewtopics/lib/textutil"

	"github.com/james-bowman/nlp"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

var tracer = telemetry.Tracer("reviewtopics/topics")

var ErrTooManyTerms = errors.New("more terms requested than the vocabulary holds")

// domain words that show up in nearly every review
var domainStopWords = []string{
	"food", "service", "atmosphere", "yes", "la", "madeleine", "5recommended",
}

// DefaultStopWords is the english stop word list, the restaurant's own
// vocabulary and any extra words.
func DefaultStopWords(extra ...string) []string {
	out := textutil.EnglishStopWords()
	out = append(out, domainStopWords...)
	for _, w := range extra {
		out = append(out, textutil.NormalizeName(w))
	}
	return out
}

type Options struct {
	VectoriserOptions
	Topics int
	Seed   uint64
	// Iterations overrides the LDA default when positive.
	Iterations int
}

type Model struct {
	Vocabulary []string
	// Components holds one row per topic and one column per vocabulary term.
	Components *mat.Dense
}

// Fit vectorises corpus and fits an LDA topic model over it. The same
// corpus, options and seed always give the same model.
func Fit(ctx context.Context, corpus []string, opts Options) (Model, error) {
	_, span := tracer.Start(ctx, "Fit")
	defer span.End()
	span.SetAttributes(
		attribute.Int("documents", len(corpus)),
		attribute.Int("topics", opts.Topics),
	)

	if opts.Topics <= 0 {
		return Model{}, fmt.Errorf("topic count must be positive, got %d", opts.Topics)
	}

	vectoriser := NewVectoriser(opts.VectoriserOptions)

	lda := nlp.NewLatentDirichletAllocation(opts.Topics)
	lda.Rnd = rand.New(rand.NewSource(opts.Seed))
	// parallel fitting changes the order random numbers are drawn in
	lda.Processes = 1
	if opts.Iterations > 0 {
		lda.Iterations = opts.Iterations
	}

	pipeline := nlp.NewPipeline(vectoriser, lda)
	_, err := pipeline.FitTransform(corpus...)
	if err != nil {
		return Model{}, err
	}

	span.SetAttributes(attribute.Int("vocabulary", len(vectoriser.Vocabulary)))
	return Model{
		Vocabulary: slices.Clone(vectoriser.Vocabulary),
		Components: mat.DenseCopyOf(lda.Components()),
	}, nil
}

func (m Model) Topics() int {
	rows, _ := m.Components.Dims()
	return rows
}

// TopTerms returns the vocabulary indices of the n heaviest terms of topic,
// heaviest first. Equal weights keep vocabulary order.
func (m Model) TopTerms(topic, n int) ([]int, error) {
	if topic < 0 || topic >= m.Topics() {
		return nil, fmt.Errorf("topic %d out of range [0, %d)", topic, m.Topics())
	}
	if n <= 0 {
		return nil, fmt.Errorf("term count must be positive, got %d", n)
	}
	if n > len(m.Vocabulary) {
		return nil, fmt.Errorf("%w: %d requested, vocabulary has %d", ErrTooManyTerms, n, len(m.Vocabulary))
	}

	row := m.Components.RawRowView(topic)
	indices := make([]int, len(row))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return row[indices[a]] > row[indices[b]]
	})
	return indices[:n], nil
}

func (m Model) Weight(topic, term int) float64 {
	return m.Components.At(topic, term)
}
