package weather

import "errors"

var (
	// ErrStaleWindow is returned when a grid feed stays structurally empty
	// even after stepping back to the previous announcement window.
	ErrStaleWindow = errors.New("grid feed empty for current and previous base window")

	// ErrNoSkyData is returned when an otherwise valid forecast feed
	// carries no sky condition entries; a snapshot cannot be assembled
	// without a sky reading.
	ErrNoSkyData = errors.New("forecast feed has no sky condition entries")
)
