package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/weatherpick/weatherpick/internal/advice"
)

// TextGenClient calls the text-generation service's responses API. It
// implements advice.TextGenerator.
type TextGenClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	backoff Backoff
	circuit *gobreaker.CircuitBreaker
}

func NewTextGenClient(client *http.Client, baseURL, apiKey, model string) *TextGenClient {
	return &TextGenClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  client,
		backoff: defaultBackoff(),
		circuit: newBreaker("textgen"),
	}
}

// Generate sends a system+user prompt pair and returns the structured
// response. Temperature 0 keeps output deterministic for identical input;
// max_output_tokens caps generated length.
func (c *TextGenClient) Generate(ctx context.Context, system, user string) (advice.GenerationResponse, error) {
	body := map[string]any{
		"model":             c.model,
		"temperature":       0,
		"max_output_tokens": 60,
		"input": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return advice.GenerationResponse{}, err
	}

	buildRequest := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/responses", c.baseURL), bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		return req, nil
	}

	resp, err := do(ctx, c.client, c.circuit, c.backoff, buildRequest)
	if err != nil {
		return advice.GenerationResponse{}, err
	}
	defer resp.Body.Close()

	var payload advice.GenerationResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return advice.GenerationResponse{}, err
	}
	return payload, nil
}
