package locations

import (
	"context"
	"fmt"
	"time"

	"reviewtopics/lib/restyutil"
	"reviewtopics/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type HTTPOptions struct {
	URL     string
	Timeout time.Duration
	// Retries is the number of additional attempts after a failed request,
	// zero disables retrying.
	Retries int
	// DumpOutput receives every request/response pair when set.
	DumpOutput restyutil.InstrumentOutput
}

// HTTPSource requests the endpoint directly.
type HTTPSource struct {
	url  string
	http *resty.Client
}

func NewHTTPSource(opts HTTPOptions) *HTTPSource {
	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", userAgent)
	client.SetHeader("accept", "application/json, text/html;q=0.9")
	client.SetTimeout(opts.Timeout)
	if opts.Retries > 0 {
		client.SetRetryCount(opts.Retries)
		client.SetRetryWaitTime(time.Second)
	}

	telemetry.InstrumentResty(client, "scrapers/locations/http")
	restyutil.InstrumentClient(client, opts.DumpOutput)

	return &HTTPSource{url: opts.URL, http: client}
}

func (s *HTTPSource) Name() string {
	return "http"
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	res, err := s.http.R().
		SetContext(ctx).
		Get(s.url)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("unexpected status %s from %s", res.Status(), s.url)
	}
	return res.Body(), nil
}
