package topics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var reviews = []string{
	"The croissant was flaky and the coffee was hot.",
	"Fresh croissant, strong coffee, friendly cashier.",
	"Coffee refills were quick and the croissant warm.",
	"Friendly cashier and a warm croissant with coffee.",
	"Tomato basil soup is the best soup in town.",
	"The soup was cold and the bread stale.",
	"Bread and soup combo, tomato basil soup again.",
	"Stale bread, cold soup, slow line.",
	"Slow line at lunch but the cashier was friendly.",
	"Long slow line, cold coffee, rude cashier.",
	"Rude staff and a long line.",
	"The line was long and the staff rude.",
}

func testOptions() Options {
	return Options{
		VectoriserOptions: VectoriserOptions{
			MaxDF:     0.95,
			MinDF:     2,
			StopWords: DefaultStopWords(),
		},
		Topics:     3,
		Seed:       42,
		Iterations: 100,
	}
}

func TestFitDeterministic(t *testing.T) {
	first, err := Fit(context.Background(), reviews, testOptions())
	require.NoError(t, err)

	rows, cols := first.Components.Dims()
	require.Equal(t, 3, rows)
	require.Equal(t, len(first.Vocabulary), cols)
	require.Equal(t, 3, first.Topics())
	require.Contains(t, first.Vocabulary, "croissant")
	require.NotContains(t, first.Vocabulary, "the")

	for i := 0; i < 3; i++ {
		again, err := Fit(context.Background(), reviews, testOptions())
		require.NoError(t, err)
		require.Equal(t, first.Vocabulary, again.Vocabulary)
		require.True(t, mat.Equal(first.Components, again.Components))
	}
}

func TestFitErrors(t *testing.T) {
	_, err := Fit(context.Background(), nil, testOptions())
	require.ErrorIs(t, err, ErrEmptyVocabulary)

	opts := testOptions()
	opts.Topics = 0
	_, err = Fit(context.Background(), reviews, opts)
	require.Error(t, err)

	opts = testOptions()
	opts.MaxDF = 0.1
	_, err = Fit(context.Background(), reviews, opts)
	require.ErrorIs(t, err, ErrDFBounds)
}

func TestTopTerms(t *testing.T) {
	model := Model{
		Vocabulary: []string{"bread", "coffee", "rude", "soup"},
		Components: mat.NewDense(2, 4, []float64{
			0.1, 0.5, 0.5, 0.2,
			0.4, 0.3, 0.2, 0.1,
		}),
	}

	terms, err := model.TopTerms(0, 3)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, terms)

	terms, err = model.TopTerms(1, 4)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 3}, terms)
	require.Equal(t, 0.4, model.Weight(1, terms[0]))

	_, err = model.TopTerms(0, 5)
	require.ErrorIs(t, err, ErrTooManyTerms)
	_, err = model.TopTerms(0, 0)
	require.Error(t, err)
	_, err = model.TopTerms(2, 1)
	require.Error(t, err)
}

func TestDefaultStopWords(t *testing.T) {
	words := DefaultStopWords("Latte ")
	require.Contains(t, words, "the")
	require.Contains(t, words, "madeleine")
	require.Contains(t, words, "5recommended")
	require.Contains(t, words, "latte")
}
