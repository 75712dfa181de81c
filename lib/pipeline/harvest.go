package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"reviewtopics/lib/dataset"
	"reviewtopics/lib/restyutil"
	"reviewtopics/lib/scrapers/locations"
)

func newSource(cfg HarvestConfig) (locations.Source, error) {
	httpOpts := locations.HTTPOptions{
		URL:     cfg.URL,
		Timeout: cfg.Timeout(),
		Retries: cfg.Retries,
	}
	if cfg.DumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(cfg.DumpDir)
		if err != nil {
			return nil, fmt.Errorf("dump dir: %w", err)
		}
		httpOpts.DumpOutput = output
	}
	browserOpts := locations.BrowserOptions{
		URL:      cfg.URL,
		ExecPath: cfg.BrowserPath,
		Timeout:  cfg.Timeout(),
	}

	switch cfg.Mode {
	case ModeHTTP:
		return locations.NewHTTPSource(httpOpts), nil
	case ModeBrowser:
		return locations.NewBrowserSource(browserOpts), nil
	case ModeAuto, "":
		return locations.FallbackSource{
			Sources: []locations.Source{
				locations.NewHTTPSource(httpOpts),
				locations.NewBrowserSource(browserOpts),
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown harvest mode %q", cfg.Mode)
	}
}

// Harvest downloads every location and writes them to cfg.Output. Nothing
// is written unless all of the locations parse.
func Harvest(ctx context.Context, cfg HarvestConfig) (int, error) {
	src, err := newSource(cfg)
	if err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "harvesting locations", "url", cfg.URL, "mode", src.Name())
	locs, err := locations.Scrape(ctx, src)
	if err != nil {
		return 0, fmt.Errorf("scrape locations: %w", err)
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	err = dataset.WriteLocations(f, locs)
	if err != nil {
		return 0, fmt.Errorf("write %s: %w", cfg.Output, err)
	}
	err = f.Close()
	if err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "wrote locations", "count", len(locs), "output", cfg.Output)
	return len(locs), nil
}
