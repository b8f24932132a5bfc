package weather

// PrecipType is the normalized precipitation form reported by the
// observation feed's PTY category.
type PrecipType string

const (
	PrecipNone        PrecipType = "NONE"
	PrecipRain        PrecipType = "RAIN"
	PrecipRainSnow    PrecipType = "RAIN_SNOW"
	PrecipSnow        PrecipType = "SNOW"
	PrecipDrizzle     PrecipType = "DRIZZLE"
	PrecipDrizzleSnow PrecipType = "DRIZZLE_SNOW"
	PrecipSnowFlurry  PrecipType = "SNOW_FLURRY"
	PrecipUnknown     PrecipType = "UNKNOWN"
)

// SkyType is the normalized sky condition reported by the forecast feed's
// SKY category.
type SkyType string

const (
	SkyClear        SkyType = "CLEAR"
	SkyPartlyCloudy SkyType = "PARTLY_CLOUDY"
	SkyCloudy       SkyType = "CLOUDY"
	SkyUnknown      SkyType = "UNKNOWN"
)

// GridCell is a discrete coordinate in the meteorological service's fixed
// map projection, the unit at which weather data is published.
type GridCell struct {
	Nx int `json:"nx"`
	Ny int `json:"ny"`
}

// BaseWindow identifies one published announcement of a feed: an 8-digit
// date and a 4-digit time (HH00 for the observation feed, HH30 for the
// forecast feed).
type BaseWindow struct {
	Date string
	Time string
}

// GeocodedPlace is the geocoder's answer to a keyword search: the top
// match's address, place label and WGS84 coordinates.
type GeocodedPlace struct {
	AddressName string
	PlaceName   string
	Lon         float64
	Lat         float64
}

// ObservationSample holds the instant-observation feed's category code to
// raw value mapping for one window/cell pair. A nil map marks a
// structurally empty response (no body at all), which is what triggers the
// step-back retry; an empty-but-present map is a valid response that
// simply omitted every category.
type ObservationSample struct {
	Categories map[string]string
}

// Valid reports whether the feed responded with any body structure.
func (s ObservationSample) Valid() bool {
	return s.Categories != nil
}

// ForecastEntry is one (category, timestamp, value) tuple of the
// short-range forecast feed. Entries arrive chronologically ordered.
type ForecastEntry struct {
	Category string
	Date     string
	Time     string
	Value    string
}

// ForecastSample holds the short-range forecast feed's entries for one
// window/cell pair. Nil entries mark a structurally empty response, same
// convention as ObservationSample.
type ForecastSample struct {
	Entries []ForecastEntry
}

// Valid reports whether the feed responded with any body structure.
func (s ForecastSample) Valid() bool {
	return s.Entries != nil
}

// Snapshot is the fused view of current weather at one place: observation
// values plus the nearest-in-time forecast sky condition. Immutable once
// built.
type Snapshot struct {
	ResolvedAddress   string     `json:"resolvedAddress,omitempty"`
	ResolvedPlaceName string     `json:"resolvedPlaceName,omitempty"`
	TemperatureC      float64    `json:"temperatureC"`
	Precipitation1hMm float64    `json:"precipitation1hMm"`
	HumidityPct       int        `json:"humidityPct"`
	WindSpeedMs       float64    `json:"windSpeedMs"`
	PrecipType        PrecipType `json:"precipType"`
	SkyType           SkyType    `json:"skyType"`
}
