package notifier

import (
	"fmt"
	"strings"

	"github.com/PureGit90/COT-Monitor/internal/model"
)

var statusLabels = map[string]string{
	string(model.BullishDivergence): "🔥 BULLISH DIVERGENCE",
	string(model.BearishDivergence): "🔥 BEARISH DIVERGENCE",
	string(model.ExtremeBullish):    "⚠️ EXTREME BULLISH",
	string(model.ExtremeBearish):    "⚠️ EXTREME BEARISH",
}

// StatusLabel renders a status for human consumption.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// FormatRunSummary formats the run report into a human-readable summary
// included in the webhook payload.
func FormatRunSummary(r *model.RunReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 COT Smart Money Report | week ending %s\n\n", r.WeekEnding))
	b.WriteString(fmt.Sprintf("Instruments analyzed: %d\n", r.TotalInstruments))
	b.WriteString(fmt.Sprintf("Active signals: %d\n", r.ActiveSignals))

	if len(r.Signals) > 0 {
		b.WriteString("\n🚨 ACTIVE SIGNALS:\n")
		for _, sig := range r.Signals {
			b.WriteString(fmt.Sprintf("  • %s: %s (net %+d)\n", sig.Instrument, StatusLabel(sig.Signal), sig.NetPosition))
		}
	} else {
		b.WriteString("\nNo active signals this week.\n")
	}

	b.WriteString("\nAll instruments:\n")
	for _, ir := range r.Instruments {
		if ir.LatestDate == "" {
			b.WriteString(fmt.Sprintf("  %s (%s): no data\n", ir.Name, ir.Code))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s (%s): net %+d | %s\n", ir.Name, ir.Code, ir.LatestNet, StatusLabel(ir.Status)))
	}

	return b.String()
}
