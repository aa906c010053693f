package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"EthAdvisor/internal/collector"
	"EthAdvisor/internal/model"
	"EthAdvisor/internal/scheduler"
	"EthAdvisor/internal/store"
	"EthAdvisor/internal/tracker"
)

// Handler bundles the dependencies behind the HTTP API.
type Handler struct {
	collector *collector.Collector
	scheduler *scheduler.Scheduler
	tracker   *tracker.Tracker
	store     store.Store
	sessions  *Sessions
	logger    zerolog.Logger
}

func NewHandler(col *collector.Collector, sch *scheduler.Scheduler, tr *tracker.Tracker, st store.Store, sessions *Sessions, logger zerolog.Logger) *Handler {
	return &Handler{
		collector: col,
		scheduler: sch,
		tracker:   tr,
		store:     st,
		sessions:  sessions,
		logger:    logger.With().Str("component", "server").Logger(),
	}
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Price returns the current market snapshot.
func (h *Handler) Price(c *gin.Context) {
	snap, err := h.collector.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "market data unavailable"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// LatestAnalysis returns the most recent persisted analysis.
func (h *Handler) LatestAnalysis(c *gin.Context) {
	analysis, err := h.store.LatestAnalysis()
	if err != nil {
		h.logger.Error().Err(err).Msg("load latest analysis")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
		return
	}
	if analysis == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no analysis yet"})
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// AnalysisHistory returns recent analyses, newest first.
func (h *Handler) AnalysisHistory(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	analyses, err := h.store.Analyses(limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("load analyses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
		return
	}
	c.JSON(http.StatusOK, analyses)
}

// TriggerAnalysis runs a full analysis immediately.
func (h *Handler) TriggerAnalysis(c *gin.Context) {
	analysis, err := h.scheduler.RunAnalysis(c.Request.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("manual analysis failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "market data unavailable"})
		return
	}
	c.JSON(http.StatusOK, analysis)
}

type tradeRequest struct {
	Type   string  `json:"type" binding:"required"`
	Price  float64 `json:"price" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
	Date   string  `json:"date"`
	Notes  string  `json:"notes"`
}

// CreateTrade appends a trade to the log.
func (h *Handler) CreateTrade(c *gin.Context) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	trade, err := h.tracker.RecordTrade(model.TradeType(req.Type), req.Price, req.Amount, date, req.Notes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, trade)
}

// ListTrades returns the full trade log in chronological order.
func (h *Handler) ListTrades(c *gin.Context) {
	trades, err := h.tracker.Trades()
	if err != nil {
		h.logger.Error().Err(err).Msg("load trades")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
		return
	}
	c.JSON(http.StatusOK, trades)
}

// ClearTrades wipes the trade log.
func (h *Handler) ClearTrades(c *gin.Context) {
	if err := h.tracker.ClearTrades(); err != nil {
		h.logger.Error().Err(err).Msg("clear trades")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// Performance returns the portfolio performance report priced at the
// current market price, falling back to the last analysis price when the
// market fetch fails.
func (h *Handler) Performance(c *gin.Context) {
	price := 0.0
	if snap, err := h.collector.Snapshot(c.Request.Context()); err == nil {
		price = snap.Price
	} else if latest, lerr := h.store.LatestAnalysis(); lerr == nil && latest != nil {
		h.logger.Warn().Err(err).Msg("pricing performance from last analysis")
		price = latest.Snapshot.Price
	}
	if price == 0 {
		c.JSON(http.StatusBadGateway, gin.H{"error": "no price available"})
		return
	}

	metrics, err := h.tracker.Metrics(price)
	if err != nil {
		h.logger.Error().Err(err).Msg("compute metrics")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
		return
	}
	c.JSON(http.StatusOK, metrics)
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login issues a session cookie when the password matches.
func (h *Handler) Login(c *gin.Context) {
	if !h.sessions.Enabled() {
		c.JSON(http.StatusOK, gin.H{"status": "auth disabled"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password required"})
		return
	}
	token, ok := h.sessions.Login(req.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}
	c.SetCookie(sessionCookie, token, int(h.sessions.ttl.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Logout revokes the current session.
func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil {
		h.sessions.Revoke(token)
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Dashboard renders the HTML dashboard shell; the page polls the JSON API.
func (h *Handler) Dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"AuthEnabled": h.sessions.Enabled(),
	})
}
