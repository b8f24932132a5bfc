package cache

import (
	"fmt"
	"strings"
)

// Key builders for the cached upstream operations. Each one trades
// exactness for hit rate where the underlying data allows it.

// PlaceKey keys place-name lookups by the trimmed input text, verbatim.
// Place names rarely vary, so exact matching is enough.
func PlaceKey(text string) string {
	return strings.TrimSpace(text)
}

// CoordinateKey collapses coordinates that agree to four decimal places
// (about 11 m) so nearby queries share one reverse-geocode entry. Fixed
// decimal formatting keeps the bucketing free of float round-trip
// artifacts.
func CoordinateKey(lon, lat float64) string {
	return fmt.Sprintf("lon=%.4f|lat=%.4f", lon, lat)
}

// FeedKey keys grid feed responses exactly the way the upstream publishes
// them: one announcement window of one grid cell.
func FeedKey(baseDate, baseTime string, nx, ny int) string {
	return fmt.Sprintf("%s:%s:%d:%d", baseDate, baseTime, nx, ny)
}
