package weather

import (
	"context"
	"log"
	"time"

	"github.com/weatherpick/weatherpick/internal/cache"
)

// Geocoder abstracts the map provider: keyword search and reverse lookup.
type Geocoder interface {
	KeywordToLocation(ctx context.Context, text string) (GeocodedPlace, error)
	CoordinateToAddress(ctx context.Context, lon, lat float64) (string, error)
}

// GridAPI abstracts the meteorological grid service's two feeds.
type GridAPI interface {
	FetchObservation(ctx context.Context, w BaseWindow, cell GridCell) (ObservationSample, error)
	FetchForecast(ctx context.Context, w BaseWindow, cell GridCell) (ForecastSample, error)
}

// ResolverCaches bundles the side-caches the resolver consults before
// calling out. They are constructed once at startup and shared across
// requests; the resolver never populates them speculatively.
type ResolverCaches struct {
	Places       *cache.Cache[GeocodedPlace]
	Addresses    *cache.Cache[string]
	Observations *cache.Cache[ObservationSample]
	Forecasts    *cache.Cache[ForecastSample]
}

// Resolver orchestrates geocoding, grid conversion, the two feed fetches
// and fusion into a Snapshot.
type Resolver struct {
	geocoder Geocoder
	grid     GridAPI
	caches   ResolverCaches

	// now supplies wall-clock time for window math; overridden in tests.
	now func() time.Time
}

// kst is the grid service's publication timezone.
var kst = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}()

// NewResolver creates a Resolver around the given collaborators and caches.
func NewResolver(geocoder Geocoder, grid GridAPI, caches ResolverCaches) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		grid:     grid,
		caches:   caches,
		now:      func() time.Time { return time.Now().In(kst) },
	}
}

// ResolveByPlace geocodes a place name and resolves current weather there,
// attaching the matched address and place label to the snapshot.
func (r *Resolver) ResolveByPlace(ctx context.Context, name string) (Snapshot, error) {
	place, err := r.lookupPlace(ctx, name)
	if err != nil {
		return Snapshot{}, err
	}
	cell := ConvertGrid(place.Lon, place.Lat)
	return r.resolve(ctx, cell, place.AddressName, place.PlaceName)
}

// ResolveByCoordinates reverse-geocodes a coordinate pair to an address
// (no place label) and resolves current weather there.
func (r *Resolver) ResolveByCoordinates(ctx context.Context, lon, lat float64) (Snapshot, error) {
	address, err := r.lookupAddress(ctx, lon, lat)
	if err != nil {
		return Snapshot{}, err
	}
	cell := ConvertGrid(lon, lat)
	return r.resolve(ctx, cell, address, "")
}

func (r *Resolver) resolve(ctx context.Context, cell GridCell, address, placeName string) (Snapshot, error) {
	now := r.now()

	obs, err := r.fetchObservation(ctx, now, cell)
	if err != nil {
		return Snapshot{}, err
	}

	snapshot := buildSnapshot(obs)
	snapshot.ResolvedAddress = address
	snapshot.ResolvedPlaceName = placeName

	fcst, err := r.fetchForecast(ctx, now, cell)
	if err != nil {
		return Snapshot{}, err
	}

	sky, err := nearestSky(now, fcst.Entries)
	if err != nil {
		return Snapshot{}, err
	}
	snapshot.SkyType = sky

	return snapshot, nil
}

func (r *Resolver) lookupPlace(ctx context.Context, name string) (GeocodedPlace, error) {
	key := cache.PlaceKey(name)
	if place, ok := r.caches.Places.Get(key); ok {
		return place, nil
	}

	place, err := r.geocoder.KeywordToLocation(ctx, name)
	if err != nil {
		return GeocodedPlace{}, err
	}
	r.caches.Places.Put(key, place)
	return place, nil
}

func (r *Resolver) lookupAddress(ctx context.Context, lon, lat float64) (string, error) {
	key := cache.CoordinateKey(lon, lat)
	if address, ok := r.caches.Addresses.Get(key); ok {
		return address, nil
	}

	address, err := r.geocoder.CoordinateToAddress(ctx, lon, lat)
	if err != nil {
		return "", err
	}
	r.caches.Addresses.Put(key, address)
	return address, nil
}

// fetchObservation tries the current announcement window first and, when
// the feed is still structurally empty (ingestion lags publication by tens
// of minutes at times), the previous window once. Empty responses are not
// cached so a later request can see the window fill in. Transport errors
// propagate without a window step-back; the upstream client already does
// transport-level retries.
func (r *Resolver) fetchObservation(ctx context.Context, now time.Time, cell GridCell) (ObservationSample, error) {
	window := LatestObservationWindow(now)
	for attempt := 0; attempt < 2; attempt++ {
		key := cache.FeedKey(window.Date, window.Time, cell.Nx, cell.Ny)
		if sample, ok := r.caches.Observations.Get(key); ok {
			return sample, nil
		}

		sample, err := r.grid.FetchObservation(ctx, window, cell)
		if err != nil {
			return ObservationSample{}, err
		}
		if sample.Valid() {
			r.caches.Observations.Put(key, sample)
			return sample, nil
		}

		log.Printf("observation feed empty for %s %s; stepping back one window", window.Date, window.Time)
		window = window.Previous()
	}
	return ObservationSample{}, ErrStaleWindow
}

func (r *Resolver) fetchForecast(ctx context.Context, now time.Time, cell GridCell) (ForecastSample, error) {
	window := LatestForecastWindow(now)
	for attempt := 0; attempt < 2; attempt++ {
		key := cache.FeedKey(window.Date, window.Time, cell.Nx, cell.Ny)
		if sample, ok := r.caches.Forecasts.Get(key); ok {
			return sample, nil
		}

		sample, err := r.grid.FetchForecast(ctx, window, cell)
		if err != nil {
			return ForecastSample{}, err
		}
		if sample.Valid() {
			r.caches.Forecasts.Put(key, sample)
			return sample, nil
		}

		log.Printf("forecast feed empty for %s %s; stepping back one window", window.Date, window.Time)
		window = window.Previous()
	}
	return ForecastSample{}, ErrStaleWindow
}
