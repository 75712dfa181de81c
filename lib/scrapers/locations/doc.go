// Package locations harvests restaurant locations from a WordPress
// "restaurant-locations" endpoint.
//
// Scraping follows the usual three steps:
// 1) input -> request, 2) request -> response, 3) response -> output.
// A Source covers the first two and only hands back the raw body, since the
// endpoint sometimes has to be reached through a real browser (bot
// protection), in which case the JSON arrives wrapped in a <pre> element.
// ExtractPayload and Parse cover the third.
package locations
