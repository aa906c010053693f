package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"EthAdvisor/internal/advisor"
	"EthAdvisor/internal/collector"
	"EthAdvisor/internal/model"
	"EthAdvisor/internal/notifier"
	"EthAdvisor/internal/risk"
	"EthAdvisor/internal/store"
	"EthAdvisor/internal/tracker"
)

const overboughtRSI = 85

// Scheduler runs the periodic analysis and summary tasks.
type Scheduler struct {
	cron      *cron.Cron
	collector *collector.Collector
	engine    *advisor.Engine
	risk      *risk.Manager
	store     store.Store
	tracker   *tracker.Tracker
	notifier  notifier.Notifier
	logger    zerolog.Logger
	ctx       context.Context

	runMu sync.Mutex // one analysis run at a time, manual or scheduled
}

func New(ctx context.Context, col *collector.Collector, eng *advisor.Engine, rm *risk.Manager, st store.Store, tr *tracker.Tracker, nt notifier.Notifier, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		collector: col,
		engine:    eng,
		risk:      rm,
		store:     st,
		tracker:   tr,
		notifier:  nt,
		logger:    logger.With().Str("component", "scheduler").Logger(),
		ctx:       ctx,
	}
}

// Register registers the analysis and daily summary cron tasks.
func (s *Scheduler) Register(analysisCron, summaryCron string) error {
	if _, err := s.cron.AddFunc(analysisCron, func() {
		if _, err := s.RunAnalysis(s.ctx); err != nil {
			s.logger.Error().Err(err).Msg("scheduled analysis failed")
		}
	}); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	if _, err := s.cron.AddFunc(summaryCron, s.summaryTask); err != nil {
		return fmt.Errorf("register summary task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("scheduler stopped")
}

// RunAnalysis executes one full analysis run: collect, evaluate, compute risk
// parameters, persist, and alert. Concurrent calls serialize; it is safe to
// trigger manually while the cron task is active.
func (s *Scheduler) RunAnalysis(ctx context.Context) (*model.Analysis, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	started := time.Now()
	s.logger.Info().Msg("analysis run started")

	snap, ind, err := s.collector.Collect(ctx)
	if err != nil {
		s.trySend(fmt.Sprintf("❌ Analysis failed: market data unavailable (%v)", err))
		return nil, fmt.Errorf("collect: %w", err)
	}

	var rec *model.Recommendation
	if ind.Approximated {
		rec = advisor.QuickEvaluate(ind)
	} else {
		rec = s.engine.Evaluate(ind)
	}
	var riskParams *model.RiskParameters
	if rec.Signal == model.SignalSell || rec.Signal == model.SignalStrongSell {
		riskParams, err = s.risk.ExitParameters(snap.Price, ind.ATR, ind.ResistanceLevels)
	} else {
		riskParams, err = s.risk.Parameters(snap.Price, ind.ATR, ind.SupportLevels)
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("risk parameters unavailable")
		riskParams = nil
	}

	analysis := &model.Analysis{
		RunAt:          started,
		Snapshot:       *snap,
		Indicators:     *ind,
		Recommendation: *rec,
		Risk:           riskParams,
	}

	prev, err := s.store.LatestAnalysis()
	if err != nil {
		s.logger.Error().Err(err).Msg("load previous analysis")
	}

	if id, err := s.store.InsertAnalysis(analysis); err != nil {
		s.logger.Error().Err(err).Msg("persist analysis")
	} else {
		analysis.ID = id
	}
	if _, err := s.tracker.RecordDecision(rec.Signal, snap.Price, ind.RSI, strings.Join(rec.Reasons, "; ")); err != nil {
		s.logger.Error().Err(err).Msg("record decision")
	}

	s.alert(prev, analysis)

	s.logger.Info().
		Str("signal", string(rec.Signal)).
		Float64("price", snap.Price).
		Float64("rsi", ind.RSI).
		Dur("took", time.Since(started)).
		Msg("analysis run complete")
	return analysis, nil
}

// alert notifies on signal flips and extreme overbought conditions.
func (s *Scheduler) alert(prev, curr *model.Analysis) {
	if prev != nil && prev.Recommendation.Signal != curr.Recommendation.Signal {
		s.trySend(notifier.FormatSignalChange(prev.Recommendation.Signal, curr.Recommendation.Signal, curr.Snapshot.Price))
		s.trySend(notifier.FormatAnalysisReport(curr))
		return
	}
	if curr.Indicators.RSI > overboughtRSI {
		s.trySend(notifier.FormatOverboughtWarning(curr.Indicators.RSI, curr.Snapshot.Price))
	}
}

func (s *Scheduler) summaryTask() {
	s.logger.Info().Msg("running daily summary")

	snap, err := s.collector.Snapshot(s.ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("summary snapshot")
		return
	}
	metrics, err := s.tracker.Metrics(snap.Price)
	if err != nil {
		s.logger.Error().Err(err).Msg("summary metrics")
		return
	}
	if metrics.TotalTrades == 0 {
		s.logger.Info().Msg("no trades recorded, skipping summary")
		return
	}
	s.trySend(notifier.FormatPerformanceSummary(metrics))

	if fraction, excess := s.risk.Exposure(metrics.Portfolio.Holdings, snap.Price); excess > 0 {
		s.trySend(notifier.FormatExposureWarning(fraction, excess, snap.Price))
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.notifier.Send(s.ctx, text); err != nil {
		s.logger.Error().Err(err).Msg("send notification")
	}
}
