package model

import "time"

// ActiveSignal is the condensed form of a non-NEUTRAL instrument used in
// the run-level summary section of the report payload.
type ActiveSignal struct {
	Instrument  string `json:"instrument"`
	Signal      string `json:"signal"`
	NetPosition int64  `json:"net_position"`
}

// RunReport aggregates one full analysis run. It is the sole contract
// handed to the persistence and delivery sinks.
type RunReport struct {
	Timestamp        time.Time          `json:"timestamp"`
	WeekEnding       string             `json:"week_ending"`
	TotalInstruments int                `json:"total_instruments"`
	ActiveSignals    int                `json:"active_signals"`
	Signals          []ActiveSignal     `json:"signals"`
	Instruments      []InstrumentReport `json:"instruments"`
}
