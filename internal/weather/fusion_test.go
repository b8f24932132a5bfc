package weather

import (
	"errors"
	"testing"
	"time"
)

func TestPrecipTypeFromCode(t *testing.T) {
	tests := []struct {
		code int
		want PrecipType
	}{
		{0, PrecipNone},
		{1, PrecipRain},
		{2, PrecipRainSnow},
		{3, PrecipSnow},
		{5, PrecipDrizzle},
		{6, PrecipDrizzleSnow},
		{7, PrecipSnowFlurry},
		{9, PrecipUnknown}, // unmapped code falls through, never fails
	}
	for _, tt := range tests {
		if got := precipTypeFromCode(tt.code); got != tt.want {
			t.Fatalf("precipTypeFromCode(%d) = %s, want %s", tt.code, got, tt.want)
		}
	}
}

func TestSkyTypeFromCode(t *testing.T) {
	tests := []struct {
		code int
		want SkyType
	}{
		{1, SkyClear},
		{3, SkyPartlyCloudy},
		{4, SkyCloudy},
		{2, SkyUnknown},
	}
	for _, tt := range tests {
		if got := skyTypeFromCode(tt.code); got != tt.want {
			t.Fatalf("skyTypeFromCode(%d) = %s, want %s", tt.code, got, tt.want)
		}
	}
}

func TestBuildSnapshotDefaultsMissingCategories(t *testing.T) {
	obs := ObservationSample{Categories: map[string]string{"T1H": "-8.4"}}
	snap := buildSnapshot(obs)

	if snap.TemperatureC != -8.4 {
		t.Fatalf("temperature = %v, want -8.4", snap.TemperatureC)
	}
	if snap.HumidityPct != 0 || snap.WindSpeedMs != 0 || snap.Precipitation1hMm != 0 {
		t.Fatalf("expected zero defaults, got %+v", snap)
	}
	if snap.PrecipType != PrecipNone {
		t.Fatalf("precip type = %s, want %s", snap.PrecipType, PrecipNone)
	}
}

func TestNearestSkyPicksClosestTimestamp(t *testing.T) {
	now := time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)
	entries := []ForecastEntry{
		{Category: "SKY", Date: "20260202", Time: "1210", Value: "4"}, // +10 min
		{Category: "SKY", Date: "20260202", Time: "1310", Value: "1"}, // +70 min
		{Category: "T1H", Date: "20260202", Time: "1200", Value: "-1"},
	}

	sky, err := nearestSky(now, entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sky != SkyCloudy {
		t.Fatalf("sky = %s, want %s", sky, SkyCloudy)
	}
}

func TestNearestSkyFirstMinimalWinsOnTie(t *testing.T) {
	now := time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)
	entries := []ForecastEntry{
		{Category: "SKY", Date: "20260202", Time: "1150", Value: "1"}, // -10 min
		{Category: "SKY", Date: "20260202", Time: "1210", Value: "4"}, // +10 min
	}

	sky, err := nearestSky(now, entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sky != SkyClear {
		t.Fatalf("sky = %s, want first minimal entry %s", sky, SkyClear)
	}
}

func TestNearestSkyFailsWithoutSkyEntries(t *testing.T) {
	now := time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)
	entries := []ForecastEntry{
		{Category: "T1H", Date: "20260202", Time: "1200", Value: "-1"},
	}

	if _, err := nearestSky(now, entries); !errors.Is(err, ErrNoSkyData) {
		t.Fatalf("expected ErrNoSkyData, got %v", err)
	}
}
