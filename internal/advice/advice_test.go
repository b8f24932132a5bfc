package advice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/weatherpick/weatherpick/internal/cache"
	"github.com/weatherpick/weatherpick/internal/weather"
)

type fakeTextGen struct {
	resp  GenerationResponse
	err   error
	calls int
}

func (f *fakeTextGen) Generate(ctx context.Context, system, user string) (GenerationResponse, error) {
	f.calls++
	return f.resp, f.err
}

func textResponse(text string) GenerationResponse {
	return GenerationResponse{Output: []GenerationMessage{
		{Content: []GenerationContent{{Text: text}}},
	}}
}

func baseSnapshot() weather.Snapshot {
	return weather.Snapshot{
		TemperatureC:      21.2,
		Precipitation1hMm: 0,
		HumidityPct:       61,
		WindSpeedMs:       3.2,
		PrecipType:        weather.PrecipNone,
		SkyType:           weather.SkyClear,
	}
}

func TestKeyCollapsesNearEqualSnapshots(t *testing.T) {
	a := baseSnapshot()

	b := a
	b.TemperatureC = 21.4 // same whole degree
	b.HumidityPct = 64    // same 5% band
	b.WindSpeedMs = 3.4   // same whole m/s

	if Key(a) != Key(b) {
		t.Fatalf("expected identical keys, got %q and %q", Key(a), Key(b))
	}
}

func TestKeySeparatesDifferentBuckets(t *testing.T) {
	a := baseSnapshot()

	b := a
	b.HumidityPct = 65 // next 5% band
	if Key(a) == Key(b) {
		t.Fatalf("expected distinct keys across humidity bands")
	}

	c := a
	c.SkyType = weather.SkyCloudy
	if Key(a) == Key(c) {
		t.Fatalf("expected distinct keys across sky types")
	}
}

func TestKeyFormat(t *testing.T) {
	got := Key(baseSnapshot())
	want := "t=21|h=60|ws=3|rn=0|pty=NONE|sky=CLEAR"
	if got != want {
		t.Fatalf("Key() = %q, want %q", got, want)
	}
}

func TestRainBucket(t *testing.T) {
	tests := []struct {
		mm   float64
		want string
	}{
		{0, "0"},
		{0.1, "0-1"},
		{1, "0-1"},
		{1.1, "1-5"},
		{5, "1-5"},
		{5.1, "5+"},
	}
	for _, tt := range tests {
		if got := rainBucket(tt.mm); got != tt.want {
			t.Fatalf("rainBucket(%v) = %q, want %q", tt.mm, got, tt.want)
		}
	}
}

func TestRecommendReusesCachedTextForNearEqualWeather(t *testing.T) {
	gen := &fakeTextGen{resp: textResponse("- Outfit: coat\n- Bring: umbrella")}
	g := NewGenerator(gen, cache.New[string](10, time.Hour))

	first := baseSnapshot()
	second := baseSnapshot()
	second.TemperatureC = 21.4

	a, err := g.Recommend(context.Background(), first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := g.Recommend(context.Background(), second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a != b {
		t.Fatalf("expected identical advice, got %q and %q", a, b)
	}
	if gen.calls != 1 {
		t.Fatalf("expected 1 generation call, got %d", gen.calls)
	}
}

func TestRecommendFailsOnMalformedResponse(t *testing.T) {
	gen := &fakeTextGen{resp: GenerationResponse{}}
	g := NewGenerator(gen, cache.New[string](10, time.Hour))

	if _, err := g.Recommend(context.Background(), baseSnapshot()); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestRecommendPropagatesGeneratorError(t *testing.T) {
	genErr := errors.New("upstream unavailable")
	gen := &fakeTextGen{err: genErr}
	g := NewGenerator(gen, cache.New[string](10, time.Hour))

	if _, err := g.Recommend(context.Background(), baseSnapshot()); !errors.Is(err, genErr) {
		t.Fatalf("expected generator error, got %v", err)
	}
}
