package locations

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"reviewtopics/lib/telemetry"

	"github.com/stretchr/testify/require"
)

type staticSource struct {
	name  string
	body  string
	err   error
	calls int
}

func (s *staticSource) Name() string {
	return s.name
}

func (s *staticSource) Fetch(ctx context.Context) ([]byte, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.body), nil
}

func TestScrapeHTTP(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/locations")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("per_page") != "150" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(samplePayload))
	}))
	defer server.Close()

	src := NewHTTPSource(HTTPOptions{
		URL:     server.URL + "/wp-json/wp/v2/restaurant-locations?per_page=150",
		Timeout: 5 * time.Second,
	})
	locations, err := Scrape(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, locations, 2)
	require.Equal(t, int64(1012), locations[0].StoreID)
	require.Equal(t, "Mockingbird Station", locations[1].LocationName)
}

func TestHTTPSourceStatus(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	src := NewHTTPSource(HTTPOptions{URL: server.URL, Timeout: 5 * time.Second})
	_, err := src.Fetch(context.Background())
	require.ErrorContains(t, err, "403")
	require.Equal(t, int32(1), hits.Load())
}

func TestHTTPSourceTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	src := NewHTTPSource(HTTPOptions{URL: server.URL, Timeout: 50 * time.Millisecond})
	_, err := src.Fetch(context.Background())
	require.Error(t, err)
}

func TestFallbackSource(t *testing.T) {
	failing := &staticSource{name: "first", err: errors.New("blocked")}
	working := &staticSource{name: "second", body: "[]"}
	unused := &staticSource{name: "third", body: "[1]"}

	body, err := FallbackSource{Sources: []Source{failing, working, unused}}.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "[]", string(body))
	require.Equal(t, 1, failing.calls)
	require.Equal(t, 0, unused.calls)

	other := &staticSource{name: "other", err: errors.New("offline")}
	_, err = FallbackSource{Sources: []Source{failing, other}}.Fetch(context.Background())
	require.ErrorContains(t, err, "first: blocked")
	require.ErrorContains(t, err, "other: offline")

	_, err = FallbackSource{}.Fetch(context.Background())
	require.Error(t, err)
}

func TestScrapeFallbackOnChallengePage(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/locations")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html><html><head><title>Just a moment...</title></head>` +
			`<body><div>Checking your browser before accessing the site.</div></body></html>`))
	}))
	defer server.Close()

	browser := &staticSource{
		name: "browser",
		body: "<html><head></head><body><pre>" + samplePayload + "</pre></body></html>",
	}
	src := FallbackSource{
		Sources: []Source{
			NewHTTPSource(HTTPOptions{URL: server.URL, Timeout: 5 * time.Second}),
			browser,
		},
	}

	locations, err := Scrape(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, 1, browser.calls)
	require.Len(t, locations, 2)
	require.Equal(t, "Preston Royal", locations[0].LocationName)

	body, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, browser.body, string(body))

	browser.body = "<html><body>still checking</body></html>"
	_, err = Scrape(context.Background(), src)
	require.ErrorContains(t, err, "http: decode locations")
	require.ErrorContains(t, err, "browser: decode locations")
	require.ErrorContains(t, err, `"Checking your browser before accessing the site."`)
}

func TestScrapeFailures(t *testing.T) {
	_, err := Scrape(context.Background(), &staticSource{name: "s", err: errors.New("down")})
	require.ErrorContains(t, err, "down")

	_, err = Scrape(context.Background(), &staticSource{name: "s", body: "not json"})
	require.ErrorContains(t, err, "decode locations")

	_, err = Scrape(context.Background(), &staticSource{name: "s", body: `[{"id": 3}]`})
	require.ErrorIs(t, err, ErrMissingField)
}

// Requires a local chrome, set REVIEWTOPICS_BROWSER to its executable.
func TestBrowserSource(t *testing.T) {
	execPath := os.Getenv("REVIEWTOPICS_BROWSER")
	if execPath == "" {
		t.Skip("REVIEWTOPICS_BROWSER not set")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(samplePayload))
	}))
	defer server.Close()

	src := NewBrowserSource(BrowserOptions{
		URL:      server.URL,
		ExecPath: execPath,
		Timeout:  30 * time.Second,
	})
	locations, err := Scrape(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, locations, 2)
}

func TestBrowserSourceMissingExecutable(t *testing.T) {
	src := NewBrowserSource(BrowserOptions{
		URL:      "http://127.0.0.1:1",
		ExecPath: "/nonexistent/chrome",
		Timeout:  5 * time.Second,
	})
	_, err := src.Fetch(context.Background())
	require.Error(t, err)
}
