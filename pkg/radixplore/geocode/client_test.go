package geocode

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTrip func(*http.Request) (*http.Response, error)

func (rt roundTrip) RoundTrip(req *http.Request) (*http.Response, error) {
	return rt(req)
}

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestGeocodeParsesCandidates(t *testing.T) {
	client := NewClient("radixplore-test", WithHTTPClient(&http.Client{
		Transport: roundTrip(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("User-Agent") != "radixplore-test" {
				t.Errorf("User-Agent not set")
			}
			if !strings.Contains(req.URL.RawQuery, "limit=3") {
				t.Errorf("limit missing from query: %s", req.URL.RawQuery)
			}
			return jsonResponse(`[
				{"display_name": "Perth, Western Australia, Australia", "lat": "-31.95", "lon": "115.86"},
				{"display_name": "Perth, Scotland, UK", "lat": "56.39", "lon": "-3.43"}
			]`), nil
		}),
	}))

	got := client.Geocode(context.Background(), "Perth")
	if len(got) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(got))
	}
	if got[0].Name != "Perth, Western Australia, Australia" {
		t.Errorf("Unexpected first candidate: %+v", got[0])
	}
	if got[0].Latitude != -31.95 || got[0].Longitude != 115.86 {
		t.Errorf("Coordinates not parsed: %+v", got[0])
	}
}

func TestGeocodeNeverErrors(t *testing.T) {
	cases := []struct {
		name      string
		transport roundTrip
	}{
		{
			name: "transport failure",
			transport: func(req *http.Request) (*http.Response, error) {
				return nil, context.DeadlineExceeded
			},
		},
		{
			name: "backend unavailable",
			transport: func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: 503,
					Body:       io.NopCloser(strings.NewReader("")),
					Header:     make(http.Header),
				}, nil
			},
		},
		{
			name: "malformed body",
			transport: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(`{"not": "a list"}`), nil
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := NewClient("radixplore-test",
				WithHTTPClient(&http.Client{Transport: tc.transport}))
			if got := client.Geocode(context.Background(), "Perth"); len(got) != 0 {
				t.Errorf("Expected empty candidates, got %v", got)
			}
		})
	}
}

type mapCache struct {
	entries map[string][]Candidate
	puts    int
}

func (m *mapCache) Get(_ context.Context, query string) ([]Candidate, bool, error) {
	c, ok := m.entries[query]
	return c, ok, nil
}

func (m *mapCache) Put(_ context.Context, query string, candidates []Candidate) error {
	m.entries[query] = candidates
	m.puts++
	return nil
}

func TestGeocodeCacheHitSkipsBackend(t *testing.T) {
	cache := &mapCache{entries: map[string][]Candidate{
		"Kalgoorlie": {{Name: "Kalgoorlie, Australia", Latitude: -30.75, Longitude: 121.47}},
	}}
	calls := 0
	client := NewClient("radixplore-test",
		WithCache(cache),
		WithHTTPClient(&http.Client{
			Transport: roundTrip(func(req *http.Request) (*http.Response, error) {
				calls++
				return jsonResponse(`[]`), nil
			}),
		}))

	got := client.Geocode(context.Background(), "Kalgoorlie")
	if calls != 0 {
		t.Errorf("Backend hit despite cached entry")
	}
	if len(got) != 1 || got[0].Name != "Kalgoorlie, Australia" {
		t.Errorf("Cached candidates not returned: %v", got)
	}
}

func TestGeocodePopulatesCache(t *testing.T) {
	cache := &mapCache{entries: map[string][]Candidate{}}
	client := NewClient("radixplore-test",
		WithCache(cache),
		WithHTTPClient(&http.Client{
			Transport: roundTrip(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(`[{"display_name": "Leonora", "lat": "-28.88", "lon": "121.33"}]`), nil
			}),
		}))

	client.Geocode(context.Background(), "Leonora")
	if cache.puts != 1 {
		t.Errorf("Expected 1 cache write, got %d", cache.puts)
	}
	if len(cache.entries["Leonora"]) != 1 {
		t.Errorf("Cache entry missing: %v", cache.entries)
	}
}
