package locations

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"reviewtopics/lib/dataset"
	"reviewtopics/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

var ErrMissingField = errors.New("missing field")

// ExtractPayload returns the JSON text of a response body. Bodies that are
// HTML documents (what a browser renders for a JSON response) are reduced
// to the text of their first <pre> element, or the body text if there is
// none. Anything else is returned as is.
func ExtractPayload(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '<' {
		return trimmed, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(trimmed))
	if err != nil {
		return nil, fmt.Errorf("parse html body: %w", err)
	}
	text, ok := htmlutil.FirstText(doc, "pre")
	if !ok {
		text, ok = htmlutil.FirstText(doc, "body")
	}
	if !ok {
		return nil, fmt.Errorf("html body has no <pre> or <body> element")
	}
	return bytes.TrimSpace([]byte(text)), nil
}

// heroFields maps the locationHero keys to the csv columns they fill.
var heroFields = []struct {
	key string
	set func(*dataset.Location, string)
}{
	{"storeName", func(l *dataset.Location, v string) { l.LocationName = v }},
	{"addressLine1", func(l *dataset.Location, v string) { l.StreetAddress = v }},
	{"city", func(l *dataset.Location, v string) { l.City = v }},
	{"state", func(l *dataset.Location, v string) { l.State = v }},
	{"zip", func(l *dataset.Location, v string) { l.PostalCode = v }},
	{"phone", func(l *dataset.Location, v string) { l.PhoneNumber = v }},
}

type object map[string]json.RawMessage

func (o object) child(path, key string) (object, error) {
	raw, ok := o[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s%s", ErrMissingField, path, key)
	}
	var out object
	err := json.Unmarshal(raw, &out)
	if err != nil || out == nil {
		return nil, fmt.Errorf("%s%s is not an object: %s", path, key, string(raw))
	}
	return out, nil
}

// scalar renders strings verbatim, numbers and bools as their literal and
// null as an empty cell.
func (o object) scalar(path, key string) (string, error) {
	raw, ok := o[key]
	if !ok {
		return "", fmt.Errorf("%w: %s%s", ErrMissingField, path, key)
	}

	var value any
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	err := decoder.Decode(&value)
	if err != nil {
		return "", fmt.Errorf("%s%s: %w", path, key, err)
	}

	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("%s%s is not a scalar: %s", path, key, string(raw))
	}
}

func parseLocation(item object) (dataset.Location, error) {
	var loc dataset.Location

	rawID, ok := item["id"]
	if !ok {
		return loc, fmt.Errorf("%w: id", ErrMissingField)
	}
	id, err := strconv.ParseInt(string(bytes.TrimSpace(rawID)), 10, 64)
	if err != nil {
		return loc, fmt.Errorf("id is not an integer: %s", string(rawID))
	}
	loc.StoreID = id

	acf, err := item.child("", "acf")
	if err != nil {
		return loc, err
	}
	hero, err := acf.child("acf.", "locationHero")
	if err != nil {
		return loc, err
	}
	for _, field := range heroFields {
		value, err := hero.scalar("acf.locationHero.", field.key)
		if err != nil {
			return loc, err
		}
		field.set(&loc, value)
	}
	return loc, nil
}

// snippet is the start of a payload with its whitespace collapsed, challenge
// pages are recognisable from it.
func snippet(payload []byte) string {
	text := []rune(htmlutil.NormalizeText(string(payload)))
	if len(text) > 80 {
		return string(text[:80]) + "..."
	}
	return string(text)
}

// Parse decodes the JSON array returned by the endpoint into locations, in
// order. Any item lacking one of the expected fields fails the whole parse.
func Parse(payload []byte) ([]dataset.Location, error) {
	var items []object
	err := json.Unmarshal(payload, &items)
	if err != nil {
		return nil, fmt.Errorf("decode locations: %w (body starts with %q)", err, snippet(payload))
	}

	locations := make([]dataset.Location, 0, len(items))
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("location %d: not an object", i)
		}
		loc, err := parseLocation(item)
		if err != nil {
			return nil, fmt.Errorf("location %d: %w", i, err)
		}
		locations = append(locations, loc)
	}
	return locations, nil
}
