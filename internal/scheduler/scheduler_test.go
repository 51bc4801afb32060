package scheduler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/PureGit90/COT-Monitor/internal/collector"
	"github.com/PureGit90/COT-Monitor/internal/config"
	"github.com/PureGit90/COT-Monitor/internal/model"
	"github.com/PureGit90/COT-Monitor/internal/report"
	"github.com/PureGit90/COT-Monitor/internal/strategy"
)

// contractFetcher serves fixed records per contract name.
type contractFetcher struct {
	records map[string][]model.RawRecord
	errs    map[string]error
}

func (f *contractFetcher) Name() string { return "test" }

func (f *contractFetcher) FetchRecords(contractName string, _ int) ([]model.RawRecord, error) {
	if err, ok := f.errs[contractName]; ok {
		return nil, err
	}
	return f.records[contractName], nil
}

// memoryRecorder captures the recorded run for assertions.
type memoryRecorder struct {
	report    *model.RunReport
	delivered bool
	calls     int
}

func (m *memoryRecorder) RecordRun(r *model.RunReport, delivered bool) error {
	m.report = r
	m.delivered = delivered
	m.calls++
	return nil
}

func (m *memoryRecorder) Close() error { return nil }

// failingNotifier simulates an unreachable delivery sink.
type failingNotifier struct{ calls int }

func (f *failingNotifier) Deliver(_ context.Context, _ *model.RunReport, _ string) error {
	f.calls++
	return errors.New("webhook unreachable")
}

func weeklyRecords(nets ...int64) []model.RawRecord {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	records := make([]model.RawRecord, len(nets))
	for i, n := range nets {
		records[i] = model.RawRecord{
			ReportDate:    start.AddDate(0, 0, 7*i).Format("2006-01-02"),
			LevMoneyLong:  fmt.Sprintf("%d", n),
			LevMoneyShort: "0",
		}
	}
	return records
}

func testInstruments() []config.Instrument {
	return []config.Instrument{
		{Code: "NQ", Name: "Nasdaq 100", ContractName: "NASDAQ MINI"},
		{Code: "BTC", Name: "Bitcoin", ContractName: "BITCOIN"},
		{Code: "EUR", Name: "Euro FX", ContractName: "EURO FX"},
	}
}

func newTestScheduler(t *testing.T, fetcher collector.Fetcher, n Notifier, rec *memoryRecorder) *Scheduler {
	t.Helper()
	return NewScheduler(
		context.Background(),
		collector.NewCollector(fetcher),
		strategy.NewEngine(),
		n,
		rec,
		report.NewWriter(t.TempDir()),
		testInstruments(),
		model.LookbackConfig{DivergenceWeeks: 52, ExtremeWeeks: 156},
	)
}

func TestRunAnalysis_DegradesPerInstrument(t *testing.T) {
	fetcher := &contractFetcher{
		records: map[string][]model.RawRecord{
			"NASDAQ MINI": weeklyRecords(-10000, -8000, -12000, -15000, -9000),
			"BITCOIN":     nil, // no data at all
		},
		errs: map[string]error{
			"EURO FX": errors.New("provider timeout"),
		},
	}
	rec := &memoryRecorder{}
	s := newTestScheduler(t, fetcher, nil, rec)

	r := s.RunAnalysis()

	if r.TotalInstruments != 3 {
		t.Fatalf("all attempted instruments must appear, got %d", r.TotalInstruments)
	}
	byCode := map[string]model.InstrumentReport{}
	for _, ir := range r.Instruments {
		byCode[ir.Code] = ir
	}
	if byCode["NQ"].Status != string(model.BullishDivergence) {
		t.Errorf("NQ should signal bullish divergence, got %s", byCode["NQ"].Status)
	}
	if byCode["BTC"].Status != model.StatusNeutral || len(byCode["BTC"].Signals) != 0 {
		t.Errorf("no-data instrument should degrade to NEUTRAL, got %+v", byCode["BTC"])
	}
	if byCode["EUR"].Status != model.StatusNeutral {
		t.Errorf("fetch failure should degrade to NEUTRAL, got %+v", byCode["EUR"])
	}
	if r.ActiveSignals != 1 {
		t.Errorf("expected 1 active signal, got %d", r.ActiveSignals)
	}
}

func TestWeeklyTask_DeliveryFailureDoesNotBlockPersistence(t *testing.T) {
	fetcher := &contractFetcher{
		records: map[string][]model.RawRecord{
			"NASDAQ MINI": weeklyRecords(-10000, -8000, -12000, -15000, -9000),
			"BITCOIN":     weeklyRecords(1000, 2000, 3000),
			"EURO FX":     weeklyRecords(500, 600, 700),
		},
	}
	rec := &memoryRecorder{}
	notif := &failingNotifier{}
	s := newTestScheduler(t, fetcher, notif, rec)

	s.RunWeeklyNow()

	if notif.calls != 1 {
		t.Errorf("expected one delivery attempt, got %d", notif.calls)
	}
	if rec.calls != 1 {
		t.Fatalf("run must still be recorded after delivery failure, got %d calls", rec.calls)
	}
	if rec.delivered {
		t.Error("delivery failure must be recorded distinctly from analysis success")
	}
	if rec.report == nil || rec.report.TotalInstruments != 3 {
		t.Errorf("recorded report must be complete, got %+v", rec.report)
	}
}

func TestWeeklyTask_NoNotifierConfigured(t *testing.T) {
	fetcher := &contractFetcher{
		records: map[string][]model.RawRecord{
			"NASDAQ MINI": weeklyRecords(1000, 2000),
			"BITCOIN":     weeklyRecords(1000, 2000),
			"EURO FX":     weeklyRecords(1000, 2000),
		},
	}
	rec := &memoryRecorder{}
	s := newTestScheduler(t, fetcher, nil, rec)

	s.RunWeeklyNow()

	if rec.calls != 1 {
		t.Fatalf("run must be recorded without a notifier, got %d calls", rec.calls)
	}
	if rec.delivered {
		t.Error("skipped delivery must not count as delivered")
	}
}
