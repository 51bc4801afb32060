package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/PureGit90/COT-Monitor/internal/collector"
	"github.com/PureGit90/COT-Monitor/internal/config"
	"github.com/PureGit90/COT-Monitor/internal/model"
	"github.com/PureGit90/COT-Monitor/internal/notifier"
	"github.com/PureGit90/COT-Monitor/internal/recorder"
	"github.com/PureGit90/COT-Monitor/internal/report"
	"github.com/PureGit90/COT-Monitor/internal/strategy"

	"github.com/robfig/cron/v3"
)

// Notifier delivers an aggregated run report downstream.
type Notifier interface {
	Deliver(ctx context.Context, r *model.RunReport, summary string) error
}

// Scheduler runs the weekly analysis and fans the aggregate out to the
// persistence and delivery sinks.
type Scheduler struct {
	Cron        *cron.Cron
	Collector   *collector.Collector
	Engine      *strategy.Engine
	Notifier    Notifier // nil disables delivery
	Recorder    recorder.Recorder
	Reports     *report.Writer
	Instruments []config.Instrument
	Lookback    model.LookbackConfig
	Ctx         context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, eng *strategy.Engine, n Notifier, rec recorder.Recorder, rw *report.Writer, instruments []config.Instrument, lookback model.LookbackConfig) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Collector:   col,
		Engine:      eng,
		Notifier:    n,
		Recorder:    rec,
		Reports:     rw,
		Instruments: instruments,
		Lookback:    lookback,
		Ctx:         ctx,
	}
}

// RegisterAll registers the weekly analysis task.
func (s *Scheduler) RegisterAll(weeklyCron string) error {
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunWeeklyNow executes the weekly task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunWeeklyNow() {
	s.weeklyTask()
}

func (s *Scheduler) weeklyTask() {
	log.Println("[INFO] running weekly COT analysis")
	r := s.RunAnalysis()

	log.Printf("[INFO] analyzed %d instruments, %d active signals", r.TotalInstruments, r.ActiveSignals)

	// Persistence and delivery are independent best-effort sinks: a
	// failure in either never blocks the other, and neither invalidates
	// a completed analysis.
	if s.Reports != nil {
		if path, err := s.Reports.Write(r); err != nil {
			log.Printf("[ERROR] save report: %v", err)
		} else {
			log.Printf("[INFO] report saved: %s", path)
		}
	}

	delivered := false
	if s.Notifier != nil {
		if err := s.Notifier.Deliver(s.Ctx, r, notifier.FormatRunSummary(r)); err != nil {
			log.Printf("[ERROR] webhook delivery failed (analysis still complete): %v", err)
		} else {
			delivered = true
			log.Println("[INFO] webhook delivered")
		}
	} else {
		log.Println("[INFO] webhook not configured, skipping delivery")
	}

	if err := s.Recorder.RecordRun(r, delivered); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}

// RunAnalysis processes all configured instruments sequentially and
// returns the aggregate report. A failing instrument degrades to a
// NEUTRAL no-data report; it never aborts the remaining instruments.
func (s *Scheduler) RunAnalysis() *model.RunReport {
	now := time.Now()
	r := &model.RunReport{
		Timestamp:  now,
		WeekEnding: now.Format("2006-01-02"),
		Signals:    []model.ActiveSignal{},
	}

	for _, inst := range s.Instruments {
		log.Printf("[INFO] analyzing %s (%s)", inst.Name, inst.Code)
		ir := s.analyzeInstrument(inst)
		r.Instruments = append(r.Instruments, ir)

		if ir.Status != model.StatusNeutral {
			r.Signals = append(r.Signals, model.ActiveSignal{
				Instrument:  fmt.Sprintf("%s (%s)", inst.Name, inst.Code),
				Signal:      ir.Status,
				NetPosition: ir.LatestNet,
			})
		}
	}

	r.TotalInstruments = len(r.Instruments)
	r.ActiveSignals = len(r.Signals)
	return r
}

func (s *Scheduler) analyzeInstrument(inst config.Instrument) model.InstrumentReport {
	ser, err := s.Collector.Collect(inst.ContractName, s.Lookback.ExtremeWeeks)
	if err != nil {
		log.Printf("[WARN] %s: %v, reporting NEUTRAL", inst.Code, err)
		return model.InstrumentReport{
			Code:    inst.Code,
			Name:    inst.Name,
			Status:  model.StatusNeutral,
			Signals: []model.Signal{},
		}
	}
	ir := s.Engine.Analyze(inst.Code, inst.Name, ser, s.Lookback)
	log.Printf("[INFO] %s: net %+d, status %s", inst.Code, ir.LatestNet, ir.Status)
	return ir
}
