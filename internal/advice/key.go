package advice

import (
	"fmt"
	"math"

	"github.com/weatherpick/weatherpick/internal/weather"
)

// Key buckets a snapshot before keying the advice cache. Perceptible
// weather differences are coarser than sensor precision: temperature and
// wind round to whole units, humidity floors to its 5% band and rain falls
// into four bands, so near-equal conditions reuse one generated text.
func Key(s weather.Snapshot) string {
	t := int(math.Round(s.TemperatureC))
	h := (s.HumidityPct / 5) * 5
	ws := int(math.Round(s.WindSpeedMs))
	return fmt.Sprintf("t=%d|h=%d|ws=%d|rn=%s|pty=%s|sky=%s",
		t, h, ws, rainBucket(s.Precipitation1hMm), s.PrecipType, s.SkyType)
}

func rainBucket(mm float64) string {
	switch {
	case mm <= 0:
		return "0"
	case mm <= 1:
		return "0-1"
	case mm <= 5:
		return "1-5"
	default:
		return "5+"
	}
}
