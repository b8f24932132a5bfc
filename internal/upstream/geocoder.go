package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/weatherpick/weatherpick/internal/weather"
)

// ErrNoPlaceFound is returned when the geocoder has no document for the
// query.
var ErrNoPlaceFound = errors.New("geocoder returned no result")

// GeocoderClient talks to the map provider's local search API. It
// implements weather.Geocoder.
type GeocoderClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	backoff Backoff
	circuit *gobreaker.CircuitBreaker
}

func NewGeocoderClient(client *http.Client, baseURL, apiKey string) *GeocoderClient {
	return &GeocoderClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		backoff: defaultBackoff(),
		circuit: newBreaker("geocoder"),
	}
}

// KeywordToLocation resolves a place name to the top search match's
// address, place label and coordinates.
func (c *GeocoderClient) KeywordToLocation(ctx context.Context, text string) (weather.GeocodedPlace, error) {
	query := strings.TrimSpace(text)

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("query", query)
		values.Set("size", "1") // top match only
		u := fmt.Sprintf("%s/v2/local/search/keyword.json?%s", c.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "KakaoAK "+c.apiKey)
		return req, nil
	}

	resp, err := do(ctx, c.client, c.circuit, c.backoff, buildRequest)
	if err != nil {
		return weather.GeocodedPlace{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Documents []struct {
			AddressName string `json:"address_name"`
			PlaceName   string `json:"place_name"`
			X           string `json:"x"` // longitude
			Y           string `json:"y"` // latitude
		} `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.GeocodedPlace{}, err
	}
	if len(payload.Documents) == 0 {
		return weather.GeocodedPlace{}, fmt.Errorf("%w: %q", ErrNoPlaceFound, query)
	}

	doc := payload.Documents[0]
	lon, err := strconv.ParseFloat(doc.X, 64)
	if err != nil {
		return weather.GeocodedPlace{}, fmt.Errorf("parse longitude: %w", err)
	}
	lat, err := strconv.ParseFloat(doc.Y, 64)
	if err != nil {
		return weather.GeocodedPlace{}, fmt.Errorf("parse latitude: %w", err)
	}

	return weather.GeocodedPlace{
		AddressName: doc.AddressName,
		PlaceName:   doc.PlaceName,
		Lon:         lon,
		Lat:         lat,
	}, nil
}

// CoordinateToAddress resolves a coordinate pair to the address of the
// first matching document.
func (c *GeocoderClient) CoordinateToAddress(ctx context.Context, lon, lat float64) (string, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("x", strconv.FormatFloat(lon, 'f', -1, 64))
		values.Set("y", strconv.FormatFloat(lat, 'f', -1, 64))
		u := fmt.Sprintf("%s/v2/local/geo/coord2address.json?%s", c.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "KakaoAK "+c.apiKey)
		return req, nil
	}

	resp, err := do(ctx, c.client, c.circuit, c.backoff, buildRequest)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payload struct {
		Documents []struct {
			Address struct {
				AddressName string `json:"address_name"`
			} `json:"address"`
		} `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if len(payload.Documents) == 0 {
		return "", fmt.Errorf("%w: lon=%v lat=%v", ErrNoPlaceFound, lon, lat)
	}

	return payload.Documents[0].Address.AddressName, nil
}
