package topicplot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"reviewtopics/lib/topics"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testModel() topics.Model {
	vocab := []string{"bad", "bread", "coffee", "croissant", "line", "rude", "rudely", "soup"}
	return topics.Model{
		Vocabulary: vocab,
		Components: mat.NewDense(3, len(vocab), []float64{
			9, 9, 9, 9, 9, 9, 9, 9,
			0.1, 0.8, 0.7, 0.9, 0.2, 0.3, 0.05, 0.6,
			0.9, 0.1, 0.2, 0.1, 0.8, 0.7, 0.6, 0.3,
		}),
	}
}

func TestBuild(t *testing.T) {
	fig, err := Build(testModel(), Options{TopWords: 3, Flagged: []string{"Rude", "bad"}})
	require.NoError(t, err)

	expected := Figure{
		Panels: []Panel{
			{
				Title:   "Topic 1",
				Terms:   []string{"croissant", "bread", "coffee"},
				Weights: []float64{0.9, 0.8, 0.7},
				Flagged: []bool{false, false, false},
			},
			{
				Title:   "Topic 2",
				Terms:   []string{"bad", "line", "rude"},
				Weights: []float64{0.9, 0.8, 0.7},
				Flagged: []bool{true, false, true},
			},
		},
	}
	if diff := cmp.Diff(expected, fig); diff != "" {
		t.Fatal(diff)
	}
}

func TestBuildSimilarity(t *testing.T) {
	fig, err := Build(testModel(), Options{TopWords: 4, Flagged: []string{"rude"}})
	require.NoError(t, err)
	require.Equal(t, []string{"bad", "line", "rude", "rudely"}, fig.Panels[1].Terms)
	require.Equal(t, []bool{false, false, true, false}, fig.Panels[1].Flagged)

	fig, err = Build(testModel(), Options{TopWords: 4, Flagged: []string{"rude"}, FlagSimilarity: 0.9})
	require.NoError(t, err)
	require.Equal(t, []bool{false, false, true, true}, fig.Panels[1].Flagged)
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(testModel(), Options{TopWords: 9})
	require.ErrorIs(t, err, topics.ErrTooManyTerms)

	single := topics.Model{
		Vocabulary: []string{"soup"},
		Components: mat.NewDense(1, 1, []float64{1}),
	}
	_, err = Build(single, Options{TopWords: 1})
	require.ErrorIs(t, err, ErrNoPanels)
}

func TestRender(t *testing.T) {
	fig, err := Build(testModel(), Options{TopWords: 5, Flagged: []string{"rude"}})
	require.NoError(t, err)

	buf := bytes.NewBuffer(nil)
	require.NoError(t, Render(fig, buf, "pdf"))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	buf.Reset()
	require.NoError(t, Render(fig, buf, "svg"))
	require.Contains(t, buf.String(), "Topic 1")
	require.Contains(t, buf.String(), "Topic 2")
	require.Contains(t, buf.String(), "Weight")

	require.Error(t, Render(fig, buf, "docx"))
	require.ErrorIs(t, Render(Figure{}, buf, "pdf"), ErrNoPanels)
}

func TestSave(t *testing.T) {
	fig, err := Build(testModel(), Options{TopWords: 5})
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "top_5_LDA.pdf")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0600))

	written, err := Save(fig, dir, "top_5_LDA.pdf")
	require.NoError(t, err)
	require.Equal(t, path, written)
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(contents, []byte("%PDF")))

	_, err = Save(fig, filepath.Join(dir, "missing"), "plot.pdf")
	require.ErrorIs(t, err, os.ErrNotExist)
}
