package locations

import (
	"context"

	"reviewtopics/lib/dataset"
	"reviewtopics/lib/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var tracer = telemetry.Tracer("reviewtopics/scrapers/locations")

var harvestedCounter, _ = telemetry.Meter("reviewtopics/scrapers/locations").Int64Counter(
	"locations.harvested",
	metric.WithDescription("Locations parsed from the locations endpoint."),
)

// Scrape fetches the endpoint through src and returns its locations. With a
// FallbackSource, the next source is tried whenever a body fails to parse.
func Scrape(ctx context.Context, src Source) ([]dataset.Location, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()
	span.SetAttributes(attribute.String("source", src.Name()))

	_, locations, err := fetchLocations(ctx, src)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to scrape locations")
		return nil, err
	}

	span.SetAttributes(attribute.Int("locations", len(locations)))
	harvestedCounter.Add(ctx, int64(len(locations)))
	return locations, nil
}
