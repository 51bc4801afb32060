// Package strategy implements the COT signal engine: a pure function
// from a positioning series to signal evidence, safe for concurrent use
// across instruments.
package strategy

import (
	"github.com/PureGit90/COT-Monitor/internal/calculator"
	"github.com/PureGit90/COT-Monitor/internal/model"
)

// DirectionProxy estimates the short-term direction of the price proxy
// from trailing net positioning values. Isolated behind an interface so
// a real price feed can replace the positioning-trend approximation
// without touching extreme detection.
type DirectionProxy interface {
	// Direction returns -1 falling, +1 rising, 0 flat/unknown.
	Direction(nets []int64) int
}

// NetTrendProxy derives direction from the least-squares slope of the
// trailing nets. Known limitation: positioning trend stands in for
// price direction until a real price series is wired in.
type NetTrendProxy struct{}

func (NetTrendProxy) Direction(nets []int64) int {
	return calculator.TrendDirection(nets)
}

// minTrendPoints is the floor on the trend window: the slope over the
// final third of the divergence window, excluding the latest point, but
// never fewer than 3 points.
const minTrendPoints = 3

// minDivergenceWindow guarantees the latest point plus enough prior
// points for a trend estimate.
const minDivergenceWindow = minTrendPoints + 1

// Engine detects divergences and positioning extremes.
type Engine struct {
	Proxy DirectionProxy
}

// NewEngine creates an Engine with the default positioning-trend proxy.
func NewEngine() *Engine {
	return &Engine{Proxy: NetTrendProxy{}}
}

// Analyze evaluates one instrument's series against the lookback config.
// An empty series yields a NEUTRAL report with no signals; it never fails.
func (e *Engine) Analyze(code, name string, s model.PositioningSeries, lookback model.LookbackConfig) model.InstrumentReport {
	report := model.InstrumentReport{
		Code:    code,
		Name:    name,
		Status:  model.StatusNeutral,
		Signals: []model.Signal{},
	}

	latest, ok := s.Latest()
	if !ok {
		return report
	}
	report.LatestNet = latest.Net()
	report.LatestLong = latest.Long
	report.LatestShort = latest.Short
	report.LatestDate = latest.Date.Format("2006-01-02")

	if sig, found := e.detectDivergence(code, s, lookback.DivergenceWeeks); found {
		report.Signals = append(report.Signals, sig)
	}
	if sig, found := detectExtreme(code, s, lookback.ExtremeWeeks); found {
		report.Signals = append(report.Signals, sig)
	}

	report.Status = model.HeadlineStatus(report.Signals)
	return report
}

// detectDivergence looks for disagreement between the proxy trend and
// the latest net's position versus the trailing window extreme.
//
// Bullish: proxy still falling while the latest net holds above the
// window low (a higher low). Bearish is the mirror against the window
// high. Bullish is checked first and wins a degenerate tie.
func (e *Engine) detectDivergence(code string, s model.PositioningSeries, weeks int) (model.Signal, bool) {
	w := len(s)
	if weeks < w {
		w = weeks
	}
	if w < minDivergenceWindow {
		return model.Signal{}, false
	}

	nets := s[len(s)-w:].Nets()
	latest := nets[len(nets)-1]
	prior := nets[:len(nets)-1]

	refLow, _ := calculator.MinNet(prior)
	refHigh, _ := calculator.MaxNet(prior)

	span := w / 3
	if span < minTrendPoints {
		span = minTrendPoints
	}
	if span > len(prior) {
		span = len(prior)
	}
	dir := e.Proxy.Direction(prior[len(prior)-span:])

	if dir < 0 && latest > refLow {
		return model.Signal{
			Kind:         model.BullishDivergence,
			Code:         code,
			LatestNet:    latest,
			ReferenceNet: refLow,
			WindowWeeks:  w,
		}, true
	}
	if dir > 0 && latest < refHigh {
		return model.Signal{
			Kind:         model.BearishDivergence,
			Code:         code,
			LatestNet:    latest,
			ReferenceNet: refHigh,
			WindowWeeks:  w,
		}, true
	}
	return model.Signal{}, false
}

// detectExtreme flags the latest net sitting at the window min or max.
// Windows under 2 points are skipped to avoid a false extreme on a
// single data point.
func detectExtreme(code string, s model.PositioningSeries, weeks int) (model.Signal, bool) {
	w := len(s)
	if weeks < w {
		w = weeks
	}
	if w < 2 {
		return model.Signal{}, false
	}

	nets := s[len(s)-w:].Nets()
	latest := nets[len(nets)-1]

	low, _ := calculator.MinNet(nets)
	high, _ := calculator.MaxNet(nets)

	// Hedge funds at max bearish = contrarian buy.
	if latest == low {
		return model.Signal{
			Kind:         model.ExtremeBullish,
			Code:         code,
			LatestNet:    latest,
			ReferenceNet: low,
			WindowWeeks:  w,
		}, true
	}
	if latest == high {
		return model.Signal{
			Kind:         model.ExtremeBearish,
			Code:         code,
			LatestNet:    latest,
			ReferenceNet: high,
			WindowWeeks:  w,
		}, true
	}
	return model.Signal{}, false
}
