// Package series normalizes raw provider records into ordered weekly
// positioning series.
package series

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/PureGit90/COT-Monitor/internal/model"
)

// ErrNoData indicates zero usable records for an instrument. Callers
// degrade to a NEUTRAL no-data report rather than aborting the run.
var ErrNoData = errors.New("no usable positioning records")

const dateLayout = "2006-01-02"

// Build produces a positioning series from raw provider records:
// malformed records are skipped, repeated report dates are deduplicated
// keeping the later-issued record, and the result is sorted ascending by
// date and truncated to the most recent maxWeeks points.
func Build(records []model.RawRecord, maxWeeks int) (model.PositioningSeries, error) {
	byDate := make(map[time.Time]model.PositioningPoint, len(records))
	for _, rec := range records {
		p, ok := parseRecord(rec)
		if !ok {
			continue
		}
		// Providers occasionally reissue corrected data for a week;
		// the later record in the response wins.
		byDate[p.Date] = p
	}
	if len(byDate) == 0 {
		return nil, ErrNoData
	}

	s := make(model.PositioningSeries, 0, len(byDate))
	for _, p := range byDate {
		s = append(s, p)
	}
	sort.Slice(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })

	if maxWeeks > 0 && len(s) > maxWeeks {
		s = s[len(s)-maxWeeks:]
	}
	return s, nil
}

func parseRecord(rec model.RawRecord) (model.PositioningPoint, bool) {
	date, err := parseDate(rec.ReportDate)
	if err != nil {
		return model.PositioningPoint{}, false
	}
	long, err := parseCount(rec.LevMoneyLong)
	if err != nil {
		return model.PositioningPoint{}, false
	}
	short, err := parseCount(rec.LevMoneyShort)
	if err != nil {
		return model.PositioningPoint{}, false
	}

	p := model.PositioningPoint{Date: date, Long: long, Short: short}

	// Retail counts are informational; missing values default to zero,
	// unparseable values still invalidate the record.
	if rec.RetailLong != "" {
		if p.RetailLong, err = parseCount(rec.RetailLong); err != nil {
			return model.PositioningPoint{}, false
		}
	}
	if rec.RetailShort != "" {
		if p.RetailShort, err = parseCount(rec.RetailShort); err != nil {
			return model.PositioningPoint{}, false
		}
	}
	return p, true
}

// parseDate handles both plain dates and Socrata floating timestamps
// ("2024-01-02T00:00:00.000").
func parseDate(s string) (time.Time, error) {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	return time.Parse(dateLayout, s)
}

// parseCount parses a contract count. Socrata serves numbers as strings,
// sometimes with a decimal part.
func parseCount(s string) (int64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(v)), nil
}
