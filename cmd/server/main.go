package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"EthAdvisor/internal/advisor"
	"EthAdvisor/internal/collector"
	"EthAdvisor/internal/config"
	"EthAdvisor/internal/notifier"
	"EthAdvisor/internal/risk"
	"EthAdvisor/internal/scheduler"
	"EthAdvisor/internal/server"
	"EthAdvisor/internal/store"
	"EthAdvisor/internal/tracker"
)

func main() {
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
	log.Logger = logger

	logger.Info().Msg("EthAdvisor starting")

	var st store.Store
	if cfg.Database.SQLitePath != "" {
		sqliteStore, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			logger.Warn().Err(err).Msg("sqlite unavailable, using in-memory store")
			st = store.NewMemoryStore()
		} else {
			st = sqliteStore
		}
	} else {
		st = store.NewMemoryStore()
	}
	defer st.Close()

	var fetcher collector.Fetcher
	if cfg.CoinGecko.Mock {
		fetcher = collector.NewMockFetcher(cfg.CoinGecko.MockPrice)
	} else {
		fetcher = collector.NewCoinGeckoFetcher(collector.CoinGeckoOptions{
			BaseURL:        cfg.CoinGecko.BaseURL,
			APIKey:         cfg.CoinGecko.APIKey,
			Currency:       cfg.CoinGecko.Currency,
			RequestsPerMin: cfg.CoinGecko.RequestsPerMin,
			Timeout:        time.Duration(cfg.CoinGecko.TimeoutSecs) * time.Second,
			Proxy:          cfg.Proxy,
		})
	}
	logger.Info().Str("source", fetcher.Name()).Msg("data source ready")

	col := collector.New(fetcher, collector.Params{
		HistoryDays: cfg.Analysis.HistoryDays,
		RSIPeriod:   cfg.Analysis.RSIPeriod,
		MACDFast:    cfg.Analysis.MACDFast,
		MACDSlow:    cfg.Analysis.MACDSlow,
		MACDSignal:  cfg.Analysis.MACDSignal,
		MAShort:     cfg.Analysis.MAShort,
		MALong:      cfg.Analysis.MALong,
		ATRPeriod:   cfg.Analysis.ATRPeriod,
	}, logger)

	tr := tracker.New(st)
	engine := advisor.NewEngine(cfg.Analysis.RiskTolerance)
	riskMgr := risk.NewManager(
		cfg.Risk.PortfolioValue,
		cfg.Risk.MaxRiskPerTrade,
		cfg.Risk.MaxExposure,
		cfg.Risk.StopPercentage,
		cfg.Risk.TrailPercentage,
	)

	var nt notifier.Notifier
	if cfg.Telegram.BotToken != "" {
		nt = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger)
	} else {
		nt = notifier.NewConsoleNotifier(logger)
	}
	logger.Info().Str("channel", nt.Name()).Msg("notifier ready")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(ctx, col, engine, riskMgr, st, tr, nt, logger)
	if err := sched.Register(cfg.Schedule.AnalysisCron, cfg.Schedule.SummaryCron); err != nil {
		logger.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		go func() {
			if _, err := sched.RunAnalysis(ctx); err != nil {
				logger.Error().Err(err).Msg("startup analysis failed")
			}
		}()
	}

	sessions := server.NewSessions(cfg.Server.PasswordHash, time.Duration(cfg.Server.SessionTTLMins)*time.Minute)
	handler := server.NewHandler(col, sched, tr, st, sessions, logger)
	router := server.NewRouter(handler)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info().Msg("shutdown signal received")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
	logger.Info().Msg("EthAdvisor stopped")
}
