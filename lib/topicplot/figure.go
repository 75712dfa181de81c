// Package topicplot turns fitted topic models into stacked horizontal bar
// charts of each topic's heaviest terms.
package topicplot

import (
	"errors"
	"fmt"

	"reviewtopics/lib/textutil"
	"reviewtopics/lib/topics"

	"github.com/antzucaro/matchr"
)

var ErrNoPanels = errors.New("model has no topics to plot")

type Options struct {
	TopWords int
	// Flagged terms are drawn in the highlight color.
	Flagged []string
	// FlagSimilarity also flags terms whose Jaro-Winkler similarity to a
	// flagged word reaches it. Zero only flags exact matches.
	FlagSimilarity float64
}

type Panel struct {
	Title string
	// Terms are ordered by weight, heaviest first.
	Terms   []string
	Weights []float64
	Flagged []bool
}

type Figure struct {
	Panels []Panel
}

type flagger struct {
	words      map[string]struct{}
	similarity float64
}

func (f flagger) flagged(term string) bool {
	term = textutil.NormalizeName(term)
	if _, ok := f.words[term]; ok {
		return true
	}
	if f.similarity <= 0 {
		return false
	}
	for word := range f.words {
		if matchr.JaroWinkler(term, word, false) >= f.similarity {
			return true
		}
	}
	return false
}

// Build collects the top terms of every topic except the first, which
// tends to hold the words shared by all reviews.
func Build(model topics.Model, opts Options) (Figure, error) {
	flags := flagger{
		words:      textutil.WordSet(opts.Flagged...),
		similarity: opts.FlagSimilarity,
	}

	var fig Figure
	for topic := 1; topic < model.Topics(); topic++ {
		indices, err := model.TopTerms(topic, opts.TopWords)
		if err != nil {
			return Figure{}, fmt.Errorf("topic %d: %w", topic, err)
		}

		panel := Panel{
			Title:   fmt.Sprintf("Topic %d", topic),
			Terms:   make([]string, len(indices)),
			Weights: make([]float64, len(indices)),
			Flagged: make([]bool, len(indices)),
		}
		for i, idx := range indices {
			term := model.Vocabulary[idx]
			panel.Terms[i] = term
			panel.Weights[i] = model.Weight(topic, idx)
			panel.Flagged[i] = flags.flagged(term)
		}
		fig.Panels = append(fig.Panels, panel)
	}
	if len(fig.Panels) == 0 {
		return Figure{}, ErrNoPanels
	}
	return fig, nil
}
