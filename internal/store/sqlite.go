package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"EthAdvisor/internal/model"
)

// SQLiteStore persists data to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard reads don't block scheduled writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("component", "store").Str("path", dbPath).Msg("sqlite store opened")
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trades (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			date      INTEGER NOT NULL,
			type      TEXT NOT NULL,
			price     REAL NOT NULL,
			amount    REAL NOT NULL,
			value     REAL NOT NULL,
			notes     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date)`,

		`CREATE TABLE IF NOT EXISTS decisions (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			date    INTEGER NOT NULL,
			signal  TEXT NOT NULL,
			price   REAL NOT NULL,
			rsi     REAL,
			reason  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_date ON decisions(date)`,

		`CREATE TABLE IF NOT EXISTS analyses (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			run_at  INTEGER NOT NULL,
			payload TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_run_at ON analyses(run_at)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) InsertTrade(t *model.Trade) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		`INSERT INTO trades (date, type, price, amount, value, notes) VALUES (?,?,?,?,?,?)`,
		t.Date.Unix(), string(t.Type), t.Price, t.Amount, t.Value, t.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("insert trade: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) Trades() ([]model.Trade, error) {
	rows, err := s.db.Query(`SELECT id, date, type, price, amount, value, notes FROM trades ORDER BY date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	var trades []model.Trade
	for rows.Next() {
		var t model.Trade
		var ts int64
		var typ string
		if err := rows.Scan(&t.ID, &ts, &typ, &t.Price, &t.Amount, &t.Value, &t.Notes); err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		t.Date = time.Unix(ts, 0)
		t.Type = model.TradeType(typ)
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func (s *SQLiteStore) ClearTrades() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM trades`)
	if err != nil {
		return fmt.Errorf("clear trades: %w", err)
	}
	return nil
}

func (s *SQLiteStore) InsertDecision(d *model.Decision) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		`INSERT INTO decisions (date, signal, price, rsi, reason) VALUES (?,?,?,?,?)`,
		d.Date.Unix(), string(d.Signal), d.Price, d.RSI, d.Reason,
	)
	if err != nil {
		return 0, fmt.Errorf("insert decision: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) Decisions() ([]model.Decision, error) {
	rows, err := s.db.Query(`SELECT id, date, signal, price, rsi, reason FROM decisions ORDER BY date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	var decisions []model.Decision
	for rows.Next() {
		var d model.Decision
		var ts int64
		var sig string
		if err := rows.Scan(&d.ID, &ts, &sig, &d.Price, &d.RSI, &d.Reason); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		d.Date = time.Unix(ts, 0)
		d.Signal = model.Signal(sig)
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

func (s *SQLiteStore) InsertAnalysis(a *model.Analysis) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(a)
	if err != nil {
		return 0, fmt.Errorf("marshal analysis: %w", err)
	}
	res, err := s.db.Exec(
		`INSERT INTO analyses (run_at, payload) VALUES (?,?)`,
		a.RunAt.Unix(), string(payload),
	)
	if err != nil {
		return 0, fmt.Errorf("insert analysis: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) LatestAnalysis() (*model.Analysis, error) {
	var id int64
	var payload string
	err := s.db.QueryRow(`SELECT id, payload FROM analyses ORDER BY run_at DESC, id DESC LIMIT 1`).Scan(&id, &payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest analysis: %w", err)
	}

	var a model.Analysis
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		return nil, fmt.Errorf("unmarshal analysis: %w", err)
	}
	a.ID = id
	return &a, nil
}

func (s *SQLiteStore) Analyses(limit int) ([]model.Analysis, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(`SELECT id, payload FROM analyses ORDER BY run_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var analyses []model.Analysis
	for rows.Next() {
		var id int64
		var payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		var a model.Analysis
		if err := json.Unmarshal([]byte(payload), &a); err != nil {
			return nil, fmt.Errorf("unmarshal analysis: %w", err)
		}
		a.ID = id
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}

func (s *SQLiteStore) Close() error {
	log.Info().Str("component", "store").Msg("closing sqlite store")
	return s.db.Close()
}
