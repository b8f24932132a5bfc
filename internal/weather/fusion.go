package weather

import (
	"strconv"
	"time"
)

// Category codes published by the grid service.
const (
	categoryTemperature = "T1H" // air temperature, Celsius
	categoryRain1h      = "RN1" // 1-hour precipitation, mm
	categoryHumidity    = "REH" // relative humidity, %
	categoryWindSpeed   = "WSD" // wind speed, m/s
	categoryPrecipType  = "PTY" // precipitation form code
	categorySky         = "SKY" // sky condition code
)

func precipTypeFromCode(code int) PrecipType {
	switch code {
	case 0:
		return PrecipNone
	case 1:
		return PrecipRain
	case 2:
		return PrecipRainSnow
	case 3:
		return PrecipSnow
	case 5:
		return PrecipDrizzle
	case 6:
		return PrecipDrizzleSnow
	case 7:
		return PrecipSnowFlurry
	default:
		return PrecipUnknown
	}
}

func skyTypeFromCode(code int) SkyType {
	switch code {
	case 1:
		return SkyClear
	case 3:
		return SkyPartlyCloudy
	case 4:
		return SkyCloudy
	default:
		return SkyUnknown
	}
}

// categoryFloat reads one category value, defaulting to zero when the feed
// omitted the category or the value does not parse. The upstream drops
// individual categories now and then; partial data beats total failure.
func categoryFloat(categories map[string]string, category string) float64 {
	raw, ok := categories[category]
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func categoryInt(categories map[string]string, category string) int {
	raw, ok := categories[category]
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}

// buildSnapshot folds the raw observation categories into snapshot fields.
// The sky condition is filled in separately from the forecast feed.
func buildSnapshot(obs ObservationSample) Snapshot {
	return Snapshot{
		TemperatureC:      categoryFloat(obs.Categories, categoryTemperature),
		Precipitation1hMm: categoryFloat(obs.Categories, categoryRain1h),
		HumidityPct:       categoryInt(obs.Categories, categoryHumidity),
		WindSpeedMs:       categoryFloat(obs.Categories, categoryWindSpeed),
		PrecipType:        precipTypeFromCode(categoryInt(obs.Categories, categoryPrecipType)),
	}
}

// nearestSky selects the SKY entry whose forecast timestamp is closest to
// now, measured in whole minutes. Entries arrive chronologically ordered,
// so the first minimal difference wins on a tie. No SKY entry at all is a
// hard failure; unlike the per-category defaulting above, a sky condition
// cannot be substituted.
func nearestSky(now time.Time, entries []ForecastEntry) (SkyType, error) {
	var (
		bestDiff  int64
		bestValue string
		found     bool
	)

	for _, e := range entries {
		if e.Category != categorySky {
			continue
		}
		ts, err := time.ParseInLocation(baseDateLayout+baseTimeLayout, e.Date+e.Time, now.Location())
		if err != nil {
			continue
		}
		diff := now.Sub(ts)
		if diff < 0 {
			diff = -diff
		}
		minutes := int64(diff / time.Minute)
		if !found || minutes < bestDiff {
			found = true
			bestDiff = minutes
			bestValue = e.Value
		}
	}

	if !found {
		return SkyUnknown, ErrNoSkyData
	}

	code, err := strconv.Atoi(bestValue)
	if err != nil {
		return SkyUnknown, nil
	}
	return skyTypeFromCode(code), nil
}
