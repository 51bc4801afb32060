package model

// SignalKind identifies what the signal engine detected.
type SignalKind string

const (
	BullishDivergence SignalKind = "BULLISH_DIVERGENCE"
	BearishDivergence SignalKind = "BEARISH_DIVERGENCE"
	ExtremeBullish    SignalKind = "EXTREME_BULLISH"
	ExtremeBearish    SignalKind = "EXTREME_BEARISH"
)

// StatusNeutral labels an instrument with no active signal.
const StatusNeutral = "NEUTRAL"

// statusPriority orders signal kinds for headline status derivation.
// All detected signals are retained regardless of which wins.
var statusPriority = []SignalKind{ExtremeBullish, ExtremeBearish, BullishDivergence, BearishDivergence}

// Signal carries the evidence behind one detection.
type Signal struct {
	Kind         SignalKind `json:"kind"`
	Code         string     `json:"code"`
	LatestNet    int64      `json:"latest_net"`
	ReferenceNet int64      `json:"reference_net"`
	WindowWeeks  int        `json:"window_weeks"`
}

// InstrumentReport is the per-instrument result of one run, constructed
// fresh from the series each time.
type InstrumentReport struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	LatestNet   int64    `json:"latest_net"`
	LatestLong  int64    `json:"latest_long"`
	LatestShort int64    `json:"latest_short"`
	LatestDate  string   `json:"latest_date,omitempty"`
	Signals     []Signal `json:"signals"`
}

// HeadlineStatus returns the highest-priority kind among the given
// signals, or NEUTRAL when none are active.
func HeadlineStatus(signals []Signal) string {
	for _, kind := range statusPriority {
		for _, sig := range signals {
			if sig.Kind == kind {
				return string(kind)
			}
		}
	}
	return StatusNeutral
}
