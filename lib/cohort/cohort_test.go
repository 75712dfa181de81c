package cohort

import (
	"database/sql"
	"fmt"
	"testing"

	"reviewtopics/lib/reviewstore"

	"github.com/stretchr/testify/require"
)

func agg(name string, mean float64, count int64) reviewstore.Aggregate {
	return reviewstore.Aggregate{
		LocationName: name,
		MeanRating:   sql.NullFloat64{Float64: mean, Valid: true},
		ReviewCount:  count,
	}
}

func names(aggs []reviewstore.Aggregate) []string {
	out := make([]string, len(aggs))
	for i, a := range aggs {
		out[i] = a.LocationName
	}
	return out
}

func TestRank(t *testing.T) {
	ranked := Rank([]reviewstore.Aggregate{
		agg("a", 3, 20),
		{LocationName: "null", ReviewCount: 20},
		agg("b", 4.5, 20),
		agg("c", 3, 20),
		agg("d", 5, 20),
	})
	require.Equal(t, []string{"d", "b", "a", "c", "null"}, names(ranked))
}

func TestSelect(t *testing.T) {
	var aggs []reviewstore.Aggregate
	for i := 0; i < 12; i++ {
		aggs = append(aggs, agg(fmt.Sprintf("loc%02d", i), float64(12-i)/3, 11))
	}
	// not enough reviews
	aggs = append(aggs, agg("sparse", 5, 10))

	cohorts, err := Select(Rank(aggs), Options{Size: 5, MinReviews: 10})
	require.NoError(t, err)
	require.Equal(t, []string{"loc00", "loc01", "loc02", "loc03", "loc04"}, cohorts.Top)
	require.Equal(t, []string{"loc07", "loc08", "loc09", "loc10", "loc11"}, cohorts.Bottom)
	require.Len(t, cohorts.Eligible, 12)
	require.Empty(t, cohorts.Overlap)
}

func TestSelectDeterministic(t *testing.T) {
	aggs := []reviewstore.Aggregate{
		agg("a", 4, 11), agg("b", 4, 11), agg("c", 4, 11),
		agg("d", 2, 11), agg("e", 2, 11), agg("f", 2, 11),
		agg("g", 3, 11), agg("h", 3, 11), agg("i", 3, 11),
		agg("j", 1, 11), agg("k", 5, 11),
	}
	first, err := Select(Rank(aggs), Options{Size: 5, MinReviews: 10})
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Select(Rank(aggs), Options{Size: 5, MinReviews: 10})
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
	require.Equal(t, []string{"k", "a", "b", "c", "g"}, first.Top)
	require.Equal(t, []string{"i", "d", "e", "f", "j"}, first.Bottom)
}

func TestSelectFewEligible(t *testing.T) {
	for k := 0; k < 10; k++ {
		t.Run(fmt.Sprintf("eligible=%d", k), func(t *testing.T) {
			var aggs []reviewstore.Aggregate
			for i := 0; i < k; i++ {
				aggs = append(aggs, agg(fmt.Sprintf("loc%d", i), float64(i), 11))
			}
			cohorts, err := Select(Rank(aggs), Options{Size: 5, MinReviews: 10})
			require.NoError(t, err)

			union := map[string]struct{}{}
			for _, n := range cohorts.Top {
				union[n] = struct{}{}
			}
			for _, n := range cohorts.Bottom {
				union[n] = struct{}{}
			}
			require.LessOrEqual(t, len(union), k)
			require.Len(t, cohorts.Top, min(k, 5))
			require.Len(t, cohorts.Bottom, min(k, 5))
			require.Len(t, cohorts.Overlap, max(0, 2*min(k, 5)-k))

			_, err = Select(Rank(aggs), Options{Size: 5, MinReviews: 10, Strict: true})
			require.ErrorIs(t, err, ErrTooFewEligible)
		})
	}
}

func TestSelectInvalidSize(t *testing.T) {
	_, err := Select(nil, Options{Size: 0})
	require.Error(t, err)
}
