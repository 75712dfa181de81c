package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"reviewtopics/lib/cohort"
	"reviewtopics/lib/dataset"
	"reviewtopics/lib/reviewstore"
	"reviewtopics/lib/telemetry"
	"reviewtopics/lib/topicplot"
	"reviewtopics/lib/topics"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("reviewtopics/pipeline")

type PlotResult struct {
	Cohort    string
	Path      string
	Locations []string
	Documents int
	Figure    topicplot.Figure
}

type Result struct {
	// Ranked holds every location's aggregate, best rated first.
	Ranked  []reviewstore.Aggregate
	Cohorts cohort.Cohorts
	Plots   []PlotResult
}

func readLocations(path string) ([]dataset.Location, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	locs, err := dataset.ReadLocations(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return locs, nil
}

func readReviews(path string) ([]dataset.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	reviews, err := dataset.ReadReviews(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reviews, nil
}

// Analyze ranks the locations in cfg.Locations by the ratings in
// cfg.Reviews and plots the review topics of the best and worst rated
// cohorts.
func Analyze(ctx context.Context, cfg AnalyzeConfig) (Result, error) {
	ctx, span := tracer.Start(ctx, "Analyze")
	defer span.End()

	result, err := analyze(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return result, err
}

func analyze(ctx context.Context, cfg AnalyzeConfig) (Result, error) {
	locs, err := readLocations(cfg.Locations)
	if err != nil {
		return Result{}, fmt.Errorf("read locations: %w", err)
	}
	reviews, err := readReviews(cfg.Reviews)
	if err != nil {
		return Result{}, fmt.Errorf("read reviews: %w", err)
	}

	db, err := cfg.Store.OpenDB()
	if err != nil {
		return Result{}, fmt.Errorf("open store: %w", err)
	}
	defer db.Close()
	store, err := reviewstore.NewStore(ctx, db)
	if err != nil {
		return Result{}, err
	}

	err = store.Load(ctx, locs, reviews)
	if err != nil {
		return Result{}, fmt.Errorf("load store: %w", err)
	}
	slog.InfoContext(ctx, "loaded reviews", "locations", len(locs), "reviews", len(reviews))

	unmatched, err := store.Unmatched(ctx)
	if err != nil {
		return Result{}, err
	}
	if unmatched > 0 {
		slog.WarnContext(ctx, "reviews without a matching location are ignored", "count", unmatched)
	}

	aggs, err := store.Aggregates(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("aggregate reviews: %w", err)
	}
	ranked := cohort.Rank(aggs)
	cohorts, err := cohort.Select(ranked, cfg.cohortOptions())
	if err != nil {
		return Result{}, err
	}

	result := Result{Ranked: ranked, Cohorts: cohorts}
	for _, c := range []struct {
		name  string
		names []string
		file  string
	}{
		{name: "top", names: cohorts.Top, file: cfg.TopFile},
		{name: "bottom", names: cohorts.Bottom, file: cfg.BottomFile},
	} {
		plot, err := plotCohort(ctx, store, cfg, c.name, c.names, c.file)
		if err != nil {
			return Result{}, fmt.Errorf("%s cohort: %w", c.name, err)
		}
		result.Plots = append(result.Plots, plot)
	}
	return result, nil
}

func plotCohort(ctx context.Context, store reviewstore.Store, cfg AnalyzeConfig, name string, names []string, file string) (PlotResult, error) {
	ctx, span := tracer.Start(ctx, "plotCohort")
	defer span.End()
	span.SetAttributes(
		attribute.String("cohort", name),
		attribute.StringSlice("locations", names),
	)

	corpus, err := store.Corpus(ctx, names)
	if err != nil {
		return PlotResult{}, err
	}
	slog.InfoContext(ctx, "fitting topic model", "cohort", name, "documents", len(corpus))

	model, err := topics.Fit(ctx, corpus, cfg.topicOptions())
	if err != nil {
		return PlotResult{}, err
	}
	fig, err := topicplot.Build(model, cfg.plotOptions())
	if err != nil {
		return PlotResult{}, err
	}
	path, err := topicplot.Save(fig, cfg.PlotDir, file)
	if err != nil {
		return PlotResult{}, err
	}

	slog.InfoContext(ctx, "wrote topic plot", "cohort", name, "path", path)
	return PlotResult{
		Cohort:    name,
		Path:      path,
		Locations: names,
		Documents: len(corpus),
		Figure:    fig,
	}, nil
}
