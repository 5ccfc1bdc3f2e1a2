// Package tagger talks to the sequence-tagging model service over HTTP.
package tagger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore"
)

// Client calls a token-classification inference service implementing the
// fit/predict contract. It satisfies radixplore.Tagger.
type Client struct {
	BaseURL string

	HTTPClient *http.Client
}

type trainRequest struct {
	Records []radixplore.TrainingExample `json:"records"`
}

type predictRequest struct {
	Sentence string `json:"sentence"`
}

type entitySpan struct {
	EntityGroup string  `json:"entity_group"`
	Word        string  `json:"word"`
	Score       float64 `json:"score"`
}

type predictResponse struct {
	Entities []entitySpan `json:"entities"`
	Error    *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type trainResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Train submits the training set and blocks until fitting finishes.
func (c *Client) Train(ctx context.Context, examples []radixplore.TrainingExample) error {
	if c.BaseURL == "" {
		return fmt.Errorf("tagger: base URL required")
	}

	var payload trainResponse
	if err := c.post(ctx, "/train", trainRequest{Records: examples}, &payload); err != nil {
		return err
	}
	if payload.Error != nil {
		return fmt.Errorf("tagger error: %s", payload.Error.Message)
	}
	return nil
}

// Predict tags one sentence, returning its entity spans.
func (c *Client) Predict(ctx context.Context, sent string) ([]radixplore.TaggedSpan, error) {
	if c.BaseURL == "" {
		return nil, fmt.Errorf("tagger: base URL required")
	}

	var payload predictResponse
	if err := c.post(ctx, "/predict", predictRequest{Sentence: sent}, &payload); err != nil {
		return nil, err
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("tagger error: %s", payload.Error.Message)
	}

	spans := make([]radixplore.TaggedSpan, len(payload.Entities))
	for i, e := range payload.Entities {
		spans[i] = radixplore.TaggedSpan{
			EntityGroup: e.EntityGroup,
			Word:        e.Word,
			Score:       e.Score,
		}
	}
	return spans, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	reqBody, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tagger status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	// Training runs long; inference is quick but shares the client.
	return &http.Client{Timeout: 10 * time.Minute}
}
