package model

import "time"

// RawRecord is one weekly COT record as the CFTC Socrata API returns it.
// Socrata encodes all numeric fields as strings; parsing and validation
// happen in the series loader, not here.
type RawRecord struct {
	ReportDate   string `json:"report_date_as_yyyy_mm_dd"`
	ContractName string `json:"contract_market_name"`
	LevMoneyLong  string `json:"lev_money_positions_long"`
	LevMoneyShort string `json:"lev_money_positions_short"`
	RetailLong    string `json:"nonrept_positions_long_all"`
	RetailShort   string `json:"nonrept_positions_short_all"`
}

// PositioningPoint is one reporting week of leveraged-money positioning
// for a single instrument. Immutable once constructed.
type PositioningPoint struct {
	Date        time.Time
	Long        int64
	Short       int64
	RetailLong  int64
	RetailShort int64
}

// Net returns long minus short contracts for the leveraged-money category.
func (p PositioningPoint) Net() int64 { return p.Long - p.Short }

// RetailNet returns the nonreportable (retail) net position.
func (p PositioningPoint) RetailNet() int64 { return p.RetailLong - p.RetailShort }

// PositioningSeries is an ordered weekly series for one instrument,
// ascending by date with no duplicate dates.
type PositioningSeries []PositioningPoint

// Nets extracts the net positioning values in series order.
func (s PositioningSeries) Nets() []int64 {
	nets := make([]int64, len(s))
	for i, p := range s {
		nets[i] = p.Net()
	}
	return nets
}

// Latest returns the most recent point, or false for an empty series.
func (s PositioningSeries) Latest() (PositioningPoint, bool) {
	if len(s) == 0 {
		return PositioningPoint{}, false
	}
	return s[len(s)-1], true
}

// LookbackConfig sets the comparison horizons for signal detection,
// global per run rather than per instrument.
type LookbackConfig struct {
	DivergenceWeeks int
	ExtremeWeeks    int
}
