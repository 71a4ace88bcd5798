package monitor

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"statuswatch/internal/common"

	"github.com/rs/zerolog"
)

// ErrNotModified signals that the server answered the conditional request
// with 304 and the previous body is still current.
var ErrNotModified = errors.New("feed not modified")

// maxFeedBytes bounds how much of a feed body is read into memory. Status
// feeds are small; anything larger is treated as a broken endpoint.
const maxFeedBytes = 10 << 20

const acceptHeader = "application/atom+xml, application/rss+xml, application/xml;q=0.9, */*;q=0.8"

// Fetcher performs conditional GETs against feed URLs.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// NewFetcher creates a new Fetcher.
func NewFetcher(client *http.Client, userAgent string, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		httpClient: client,
		userAgent:  userAgent,
		logger:     logger.With().Str("component", "Fetcher").Logger(),
	}
}

// FetchInput holds parameters for Fetch.
type FetchInput struct {
	URL          string
	ETag         string
	LastModified string
}

// FetchResult holds results from Fetch.
type FetchResult struct {
	Body         []byte
	ETag         string
	LastModified string
	StatusCode   int
}

// Fetch performs one conditional GET. Stored validators are attached as
// If-None-Match / If-Modified-Since headers; a 304 answer returns
// ErrNotModified with no body read. A 200 answer carries the body and
// whatever validators the server issued. Any other outcome is an error,
// transient for network failures and 5xx, permanent for the rest.
//
// The request deliberately carries no cancellation context: an in-flight
// fetch runs to completion, bounded by the client timeout, so feed state is
// never left half-updated by shutdown.
func (f *Fetcher) Fetch(input FetchInput) (*FetchResult, error) {
	req, err := http.NewRequest(http.MethodGet, input.URL, nil)
	if err != nil {
		f.logger.Error().Err(err).Str("url", input.URL).Msg("Failed to create HTTP request")
		return nil, common.WrapErrorf(err, "creating request for '%s'", input.URL)
	}

	req.Header.Set("Accept", acceptHeader)
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	if input.ETag != "" {
		req.Header.Set("If-None-Match", input.ETag)
	}
	if input.LastModified != "" {
		req.Header.Set("If-Modified-Since", input.LastModified)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Error().Err(err).Str("url", input.URL).Msg("Failed to execute HTTP request")
		return nil, common.NewNetworkError(input.URL, "HTTP request failed", err)
	}
	defer resp.Body.Close()

	result := &FetchResult{
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
		StatusCode:   resp.StatusCode,
	}

	if resp.StatusCode == http.StatusNotModified {
		f.logger.Debug().Str("url", input.URL).Msg("Feed not modified (304)")
		return result, ErrNotModified
	}

	if resp.StatusCode != http.StatusOK {
		f.logger.Warn().Str("url", input.URL).Int("status_code", resp.StatusCode).Msg("Received non-OK HTTP status")
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		message := strings.TrimSpace(string(snippet))
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return result, common.NewHTTPError(resp.StatusCode, input.URL, message)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		f.logger.Error().Err(err).Str("url", input.URL).Msg("Failed to read response body")
		return nil, common.NewNetworkError(input.URL, "reading response body", err)
	}
	result.Body = body

	f.logger.Debug().Str("url", input.URL).Int("size", len(body)).Str("etag", result.ETag).Msg("Feed fetched")
	return result, nil
}
