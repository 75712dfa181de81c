package reviewstore

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	"reviewtopics/lib/dataset"
	"reviewtopics/lib/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

//go:embed schema.sql
var Schema string

var tracer = telemetry.Tracer("reviewtopics/reviewstore")

var loadedCounter, _ = telemetry.Meter("reviewtopics/reviewstore").Int64Counter(
	"reviews.loaded",
	metric.WithDescription("Review rows loaded into the store."),
)

// Store joins reviews against locations.
type Store struct {
	db *sql.DB
}

// NewStore creates the schema if it does not exist yet.
func NewStore(ctx context.Context, database *sql.DB) (Store, error) {
	_, err := database.ExecContext(ctx, Schema)
	if err != nil {
		return Store{}, fmt.Errorf("create schema: %w", err)
	}
	return Store{db: database}, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Load replaces the contents of the store.
func (s Store) Load(ctx context.Context, locations []dataset.Location, reviews []dataset.Review) error {
	ctx, span := tracer.Start(ctx, "Load")
	defer span.End()
	span.SetAttributes(
		attribute.Int("locations", len(locations)),
		attribute.Int("reviews", len(reviews)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, "delete from locations; delete from reviews;")
	if err != nil {
		return err
	}

	insertLocation, err := tx.PrepareContext(ctx, `insert into locations (
		store_id, location_name, street_address, city, state, postal_code, phone_number
	) values (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insertLocation.Close()
	for _, l := range locations {
		_, err = insertLocation.ExecContext(
			ctx,
			l.StoreID,
			nullIfEmpty(l.LocationName),
			l.StreetAddress,
			l.City,
			l.State,
			l.PostalCode,
			l.PhoneNumber,
		)
		if err != nil {
			return err
		}
	}

	insertReview, err := tx.PrepareContext(ctx, `insert into reviews (
		idx, store_id, overall_rating, review_date, review_text
	) values (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insertReview.Close()
	for i, r := range reviews {
		_, err = insertReview.ExecContext(
			ctx,
			i,
			r.StoreID,
			r.OverallRating,
			r.ReviewDate,
			r.ReviewText,
		)
		if err != nil {
			return err
		}
	}

	err = tx.Commit()
	if err != nil {
		return err
	}
	loadedCounter.Add(ctx, int64(len(reviews)))
	return nil
}

// Aggregate holds the rating statistics of one location.
type Aggregate struct {
	LocationName string
	// MeanRating is null when none of the location's reviews has a rating.
	MeanRating  sql.NullFloat64
	ReviewCount int64
}

// Aggregates groups the joined reviews by location name. ReviewCount counts
// reviews that have a review date. Results are ordered by location name.
func (s Store) Aggregates(ctx context.Context) ([]Aggregate, error) {
	ctx, span := tracer.Start(ctx, "Aggregates")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `
		select l.location_name, avg(r.overall_rating), count(r.review_date)
		from reviews r
		join locations l on l.store_id = r.store_id
		where l.location_name is not null
		group by l.location_name
		order by l.location_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Aggregate
	for rows.Next() {
		var agg Aggregate
		err = rows.Scan(&agg.LocationName, &agg.MeanRating, &agg.ReviewCount)
		if err != nil {
			return nil, err
		}
		out = append(out, agg)
	}
	return out, rows.Err()
}

// Corpus returns the non-null review texts of every joined row whose
// location is one of names, in review file order.
func (s Store) Corpus(ctx context.Context, names []string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Corpus")
	defer span.End()

	if len(names) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		select r.review_text
		from reviews r
		join locations l on l.store_id = r.store_id
		where l.location_name in (%s) and r.review_text is not null
		order by r.idx, l.rowid`, placeholders), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var text string
		err = rows.Scan(&text)
		if err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	span.SetAttributes(attribute.Int("documents", len(out)))
	return out, rows.Err()
}

// Unmatched counts reviews that no location joins against.
func (s Store) Unmatched(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		select count(*) from reviews r
		where not exists (
			select 1 from locations l
			where l.store_id = r.store_id and l.location_name is not null
		)`).Scan(&count)
	return count, err
}
