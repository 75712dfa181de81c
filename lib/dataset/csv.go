package dataset

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteLocations writes the header and then one row per location, in order.
// Rows end with CRLF.
func WriteLocations(w io.Writer, locations []Location) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true

	err := writer.Write(LocationHeader)
	if err != nil {
		return err
	}
	for _, loc := range locations {
		err = writer.Write([]string{
			loc.LocationName,
			loc.StreetAddress,
			loc.City,
			loc.State,
			loc.PostalCode,
			loc.PhoneNumber,
			strconv.FormatInt(loc.StoreID, 10),
		})
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

type table struct {
	columns map[string]int
	reader  *csv.Reader
	line    int
}

func openTable(r io.Reader, required []string) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty file, expected a header")
	}
	if err != nil {
		return nil, err
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}
	var missing []string
	for _, col := range required {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	return &table{columns: columns, reader: reader, line: 1}, nil
}

// next returns nil, io.EOF at the end of the table.
func (t *table) next() (map[string]string, error) {
	record, err := t.reader.Read()
	if err != nil {
		return nil, err
	}
	t.line++

	row := make(map[string]string, len(t.columns))
	for name, i := range t.columns {
		if i < len(record) {
			row[name] = record[i]
		}
	}
	return row, nil
}

func (t *table) cellError(col string, err error) error {
	return fmt.Errorf("line %d, column %s: %w", t.line, col, err)
}

// ReadLocations reads a locations file addressed by header name.
func ReadLocations(r io.Reader) ([]Location, error) {
	t, err := openTable(r, LocationHeader)
	if err != nil {
		return nil, err
	}

	var out []Location
	for {
		row, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		storeID, err := strconv.ParseInt(strings.TrimSpace(row[ColStoreID]), 10, 64)
		if err != nil {
			return nil, t.cellError(ColStoreID, err)
		}
		name := row[ColLocationName]
		if isMissing(name) {
			name = ""
		}
		out = append(out, Location{
			StoreID:       storeID,
			LocationName:  name,
			StreetAddress: row[ColStreetAddress],
			City:          row[ColCity],
			State:         row[ColState],
			PostalCode:    row[ColPostalCode],
			PhoneNumber:   row[ColPhoneNumber],
		})
	}
	return out, nil
}

// missingMarkers are the cell values read as missing, the same set pandas
// uses by default.
var missingMarkers = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

func isMissing(cell string) bool {
	_, ok := missingMarkers[cell]
	return ok
}

func nullString(s string) sql.NullString {
	if isMissing(s) {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// ReadReviews reads a reviews file addressed by header name, extra columns
// are ignored.
func ReadReviews(r io.Reader) ([]Review, error) {
	t, err := openTable(r, reviewColumns)
	if err != nil {
		return nil, err
	}

	var out []Review
	for {
		row, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		var review Review
		if cell := strings.TrimSpace(row[ColStoreID]); !isMissing(cell) {
			id, err := strconv.ParseInt(cell, 10, 64)
			if err != nil {
				// ids occasionally come through as floats ("12.0")
				f, ferr := strconv.ParseFloat(cell, 64)
				if ferr != nil || f != float64(int64(f)) {
					return nil, t.cellError(ColStoreID, err)
				}
				id = int64(f)
			}
			review.StoreID = sql.NullInt64{Int64: id, Valid: true}
		}
		if cell := strings.TrimSpace(row[ColOverallRating]); !isMissing(cell) {
			rating, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, t.cellError(ColOverallRating, err)
			}
			review.OverallRating = sql.NullFloat64{Float64: rating, Valid: true}
		}
		review.ReviewDate = nullString(row[ColReviewDate])
		review.ReviewText = nullString(row[ColReviewText])

		out = append(out, review)
	}
	return out, nil
}
