// Package dataset holds the location and review records exchanged between
// the harvester and the analyzer, along with their CSV encodings.
package dataset

import "database/sql"

// Location is a single restaurant as returned by the locations API.
type Location struct {
	StoreID       int64
	LocationName  string
	StreetAddress string
	City          string
	State         string
	PostalCode    string
	PhoneNumber   string
}

// Review is a single customer review. Empty cells in the source file are
// kept as nulls.
type Review struct {
	StoreID       sql.NullInt64
	OverallRating sql.NullFloat64
	ReviewDate    sql.NullString
	ReviewText    sql.NullString
}

const (
	ColLocationName  = "locationName"
	ColStreetAddress = "streetAddress"
	ColCity          = "city"
	ColState         = "state"
	ColPostalCode    = "postalCode"
	ColPhoneNumber   = "phoneNumber"
	ColStoreID       = "storeID"

	ColOverallRating = "overallRating"
	ColReviewDate    = "reviewDate"
	ColReviewText    = "reviewText"
)

// LocationHeader is the column order of the harvested locations file.
var LocationHeader = []string{
	ColLocationName,
	ColStreetAddress,
	ColCity,
	ColState,
	ColPostalCode,
	ColPhoneNumber,
	ColStoreID,
}

var reviewColumns = []string{
	ColStoreID,
	ColOverallRating,
	ColReviewDate,
	ColReviewText,
}
