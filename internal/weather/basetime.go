package weather

import (
	"fmt"
	"time"
)

const (
	baseDateLayout = "20060102"
	baseTimeLayout = "1504"
)

// LatestObservationWindow returns the announcement window of the
// observation feed for the current hour. The feed publishes on the hour
// (HH00); no minute-level guard is applied because publication is nominally
// instantaneous and ingestion lag is absorbed by the step-back retry.
func LatestObservationWindow(now time.Time) BaseWindow {
	return BaseWindow{
		Date: now.Format(baseDateLayout),
		Time: fmt.Sprintf("%02d00", now.Hour()),
	}
}

// LatestForecastWindow returns the most recent HH30 announcement window at
// or before now: a minute hand below 30 means the current hour's window is
// not out yet, so the previous hour's :30 applies.
func LatestForecastWindow(now time.Time) BaseWindow {
	if now.Minute() < 30 {
		now = now.Add(-time.Hour)
	}
	base := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 30, 0, 0, now.Location())
	return BaseWindow{
		Date: base.Format(baseDateLayout),
		Time: base.Format(baseTimeLayout),
	}
}

// Previous steps back exactly one announcement window. Both feeds publish
// hourly, so one hour earlier with the same minute mark serves either
// cadence; the date rolls over at midnight. Windows produced by the
// calculators above always parse, so a malformed window is returned as-is.
func (w BaseWindow) Previous() BaseWindow {
	t, err := time.Parse(baseDateLayout+baseTimeLayout, w.Date+w.Time)
	if err != nil {
		return w
	}
	t = t.Add(-time.Hour)
	return BaseWindow{
		Date: t.Format(baseDateLayout),
		Time: t.Format(baseTimeLayout),
	}
}
