package cache

import "testing"

func TestPlaceKeyTrimsInput(t *testing.T) {
	if got := PlaceKey("  Bupyeong  "); got != "Bupyeong" {
		t.Fatalf("unexpected place key %q", got)
	}
}

func TestCoordinateKeyCollapsesNearbyPoints(t *testing.T) {
	// Anything that agrees to four decimal places shares a key.
	a := CoordinateKey(126.7247245, 37.4941629)
	b := CoordinateKey(126.7247, 37.4942)
	if a != b {
		t.Fatalf("expected identical keys, got %q and %q", a, b)
	}

	if a != "lon=126.7247|lat=37.4942" {
		t.Fatalf("unexpected key format %q", a)
	}

	// A fifth-decimal difference that crosses the bucket boundary does not.
	c := CoordinateKey(126.7248, 37.4942)
	if a == c {
		t.Fatalf("expected distinct keys across bucket boundary")
	}
}

func TestFeedKeyIsExact(t *testing.T) {
	if got := FeedKey("20260202", "0700", 60, 127); got != "20260202:0700:60:127" {
		t.Fatalf("unexpected feed key %q", got)
	}
}
