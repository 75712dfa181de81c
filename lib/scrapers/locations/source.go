package locations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"reviewtopics/lib/dataset"
)

// Source fetches the raw body of the locations endpoint.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

// FallbackSource tries each source in order and returns the first body
// that parses into locations. A source that answers with something else,
// like a bot challenge page, counts as a failure.
type FallbackSource struct {
	Sources []Source
}

func (f FallbackSource) Name() string {
	return "fallback"
}

func (f FallbackSource) Fetch(ctx context.Context) ([]byte, error) {
	body, _, err := f.fetchLocations(ctx)
	return body, err
}

func (f FallbackSource) fetchLocations(ctx context.Context) ([]byte, []dataset.Location, error) {
	if len(f.Sources) == 0 {
		return nil, nil, fmt.Errorf("no sources configured")
	}

	var errlist []error
	for _, src := range f.Sources {
		body, locations, err := fetchLocations(ctx, src)
		if err == nil {
			return body, locations, nil
		}
		slog.WarnContext(ctx, "location source failed", "source", src.Name(), "err", err)
		errlist = append(errlist, fmt.Errorf("%s: %w", src.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	return nil, nil, errors.Join(errlist...)
}

// fetchLocations fetches src and parses its body.
func fetchLocations(ctx context.Context, src Source) ([]byte, []dataset.Location, error) {
	if fallback, ok := src.(FallbackSource); ok {
		return fallback.fetchLocations(ctx)
	}

	body, err := src.Fetch(ctx)
	if err != nil {
		return nil, nil, err
	}
	payload, err := ExtractPayload(body)
	if err != nil {
		return nil, nil, err
	}
	locations, err := Parse(payload)
	if err != nil {
		return nil, nil, err
	}
	return body, locations, nil
}
