package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/weatherpick/weatherpick/internal/weather"
)

// GridClient talks to the public meteorological grid API. It implements
// weather.GridAPI.
type GridClient struct {
	serviceKey string
	baseURL    string
	client     *http.Client
	backoff    Backoff
	circuit    *gobreaker.CircuitBreaker
}

func NewGridClient(client *http.Client, baseURL, serviceKey string) *GridClient {
	return &GridClient{
		serviceKey: serviceKey,
		baseURL:    baseURL,
		client:     client,
		backoff:    defaultBackoff(),
		circuit:    newBreaker("grid-api"),
	}
}

// feedResponse mirrors the grid service envelope. Body is a pointer so a
// structurally empty response (no body at all, the service's way of saying
// "window not ingested yet") stays distinguishable from an empty item
// list.
type feedResponse struct {
	Response struct {
		Body *struct {
			Items struct {
				Item []feedItem `json:"item"`
			} `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

type feedItem struct {
	Category  string `json:"category"`
	ObsrValue string `json:"obsrValue"`
	FcstDate  string `json:"fcstDate"`
	FcstTime  string `json:"fcstTime"`
	FcstValue string `json:"fcstValue"`
}

// FetchObservation fetches the instant-observation feed for one
// window/cell pair. A bodyless response yields an invalid (nil-map)
// sample, not an error; the resolver owns the step-back policy.
func (c *GridClient) FetchObservation(ctx context.Context, w weather.BaseWindow, cell weather.GridCell) (weather.ObservationSample, error) {
	payload, err := c.fetch(ctx, "/getUltraSrtNcst", 20, w, cell)
	if err != nil {
		return weather.ObservationSample{}, err
	}
	if payload.Response.Body == nil {
		return weather.ObservationSample{}, nil
	}

	items := payload.Response.Body.Items.Item
	categories := make(map[string]string, len(items))
	for _, item := range items {
		categories[item.Category] = item.ObsrValue
	}
	return weather.ObservationSample{Categories: categories}, nil
}

// FetchForecast fetches the short-range forecast feed for one window/cell
// pair, preserving the feed's chronological entry order.
func (c *GridClient) FetchForecast(ctx context.Context, w weather.BaseWindow, cell weather.GridCell) (weather.ForecastSample, error) {
	payload, err := c.fetch(ctx, "/getUltraSrtFcst", 60, w, cell)
	if err != nil {
		return weather.ForecastSample{}, err
	}
	if payload.Response.Body == nil {
		return weather.ForecastSample{}, nil
	}

	items := payload.Response.Body.Items.Item
	entries := make([]weather.ForecastEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, weather.ForecastEntry{
			Category: item.Category,
			Date:     item.FcstDate,
			Time:     item.FcstTime,
			Value:    item.FcstValue,
		})
	}
	return weather.ForecastSample{Entries: entries}, nil
}

func (c *GridClient) fetch(ctx context.Context, path string, rows int, w weather.BaseWindow, cell weather.GridCell) (feedResponse, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("serviceKey", c.serviceKey)
		values.Set("dataType", "JSON")
		values.Set("numOfRows", strconv.Itoa(rows))
		values.Set("pageNo", "1")
		values.Set("base_date", w.Date)
		values.Set("base_time", w.Time)
		values.Set("nx", strconv.Itoa(cell.Nx))
		values.Set("ny", strconv.Itoa(cell.Ny))
		u := fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := do(ctx, c.client, c.circuit, c.backoff, buildRequest)
	if err != nil {
		return feedResponse{}, err
	}
	defer resp.Body.Close()

	var payload feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return feedResponse{}, err
	}
	return payload, nil
}
