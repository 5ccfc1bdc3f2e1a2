// Package geocode resolves place names to coordinate candidates through
// a Nominatim-compatible backend.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Candidate is one geocoded result for a query string.
type Candidate struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Cache stores geocode responses keyed by query so repeated runs do not
// re-hit the rate-limited backend. Implementations live in
// pkg/radixplore/store.
type Cache interface {
	Get(ctx context.Context, query string) ([]Candidate, bool, error)
	Put(ctx context.Context, query string, candidates []Candidate) error
}

// DefaultBaseURL is the public Nominatim endpoint.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// maxCandidates caps the ranked results requested per query.
const maxCandidates = 3

// Client queries a Nominatim-compatible backend. Geocode never returns an
// error: backend failures degrade to an empty candidate list with a
// logged warning. Calls are spaced at least one second apart, the usage
// policy of the public Nominatim service; do not relax this for a
// different backend unless its terms permit it.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      Cache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache attaches a response cache, consulted before the limiter.
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithBaseURL points the client at a different backend.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// NewClient creates a geocoding client. userAgent identifies this
// pipeline to the backend, as Nominatim's policy requires.
func NewClient(userAgent string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// nominatimResult is the subset of the backend response the client reads.
// Nominatim serializes coordinates as strings.
type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Geocode returns up to three ranked candidates for a place name. Any
// backend failure (timeout, unavailability, malformed response) logs a
// warning and yields an empty list.
func (c *Client) Geocode(ctx context.Context, name string) []Candidate {
	if c.cache != nil {
		if cached, ok, err := c.cache.Get(ctx, name); err == nil && ok {
			return cached
		} else if err != nil {
			log.Printf("Warning: geocode cache read for %q: %v", name, err)
		}
	}

	candidates, err := c.query(ctx, name)
	if err != nil {
		log.Printf("Warning: geocoding failed for %q: %v", name, err)
		return nil
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, name, candidates); err != nil {
			log.Printf("Warning: geocode cache write for %q: %v", name, err)
		}
	}
	return candidates
}

func (c *Client) query(ctx context.Context, name string) ([]Candidate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&format=jsonv2&limit=%d",
		c.baseURL, url.QueryEscape(name), maxCandidates)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	candidates := make([]Candidate, 0, len(results))
	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		candidates = append(candidates, Candidate{
			Name:      r.DisplayName,
			Latitude:  lat,
			Longitude: lon,
		})
		if len(candidates) == maxCandidates {
			break
		}
	}
	return candidates, nil
}
