package cohort

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"reviewtopics/lib/reviewstore"
)

var ErrTooFewEligible = errors.New("too few eligible locations")

// Rank sorts aggregates by mean rating, highest first. Locations without a
// mean rating go last. Equal means keep their input order.
func Rank(aggs []reviewstore.Aggregate) []reviewstore.Aggregate {
	out := slices.Clone(aggs)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].MeanRating, out[j].MeanRating
		if !a.Valid {
			return false
		}
		if !b.Valid {
			return true
		}
		return a.Float64 > b.Float64
	})
	return out
}

type Options struct {
	// Size is the number of locations in each cohort.
	Size int
	// Locations need strictly more than MinReviews dated reviews.
	MinReviews int64
	// Strict fails instead of warning when the cohorts cannot be disjoint.
	Strict bool
}

type Cohorts struct {
	Top    []string
	Bottom []string
	// Eligible is the ranked list after filtering by review count.
	Eligible []reviewstore.Aggregate
	// Overlap lists names that ended up in both cohorts.
	Overlap []string
}

// Select picks the best and worst rated locations out of ranked, which
// must already be sorted by Rank.
func Select(ranked []reviewstore.Aggregate, opts Options) (Cohorts, error) {
	if opts.Size <= 0 {
		return Cohorts{}, fmt.Errorf("cohort size must be positive, got %d", opts.Size)
	}

	var eligible []reviewstore.Aggregate
	for _, agg := range ranked {
		if agg.ReviewCount > opts.MinReviews {
			eligible = append(eligible, agg)
		}
	}

	names := make([]string, len(eligible))
	for i, agg := range eligible {
		names[i] = agg.LocationName
	}

	top := names[:min(opts.Size, len(names))]
	bottom := names[max(len(names)-opts.Size, 0):]

	inTop := make(map[string]struct{}, len(top))
	for _, name := range top {
		inTop[name] = struct{}{}
	}
	var overlap []string
	for _, name := range bottom {
		if _, ok := inTop[name]; ok {
			overlap = append(overlap, name)
		}
	}

	if len(eligible) < opts.Size {
		if opts.Strict {
			return Cohorts{}, fmt.Errorf("%w: %d eligible, want at least %d per cohort", ErrTooFewEligible, len(eligible), opts.Size)
		}
		slog.Warn(
			"fewer eligible locations than the cohort size",
			"eligible", len(eligible),
			"size", opts.Size,
		)
	}
	if len(overlap) > 0 {
		if opts.Strict {
			return Cohorts{}, fmt.Errorf("%w: %d eligible, top and bottom cohorts share %v", ErrTooFewEligible, len(eligible), overlap)
		}
		slog.Warn(
			"top and bottom cohorts overlap",
			"eligible", len(eligible),
			"overlap", overlap,
		)
	}

	return Cohorts{
		Top:      slices.Clone(top),
		Bottom:   slices.Clone(bottom),
		Eligible: eligible,
		Overlap:  overlap,
	}, nil
}
