package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/etnz/bondladder"
)

// SQLiteRecorder persists simulation runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so reporting tools can read while a run is being written.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id          TEXT PRIMARY KEY,
			created_at  INTEGER NOT NULL,
			currency    TEXT NOT NULL,
			start       TEXT NOT NULL,
			config      TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS valuations (
			run_id        TEXT NOT NULL REFERENCES runs(id),
			date          TEXT NOT NULL,
			market_value  REAL NOT NULL,
			cash          REAL NOT NULL,
			total_value   REAL NOT NULL,
			PRIMARY KEY (run_id, date)
		)`,
		`CREATE TABLE IF NOT EXISTS positions (
			run_id      TEXT NOT NULL REFERENCES runs(id),
			date        TEXT NOT NULL,
			instrument  TEXT NOT NULL,
			opening     REAL NOT NULL,
			ordered     REAL NOT NULL,
			price       REAL NOT NULL,
			coupon      REAL NOT NULL,
			trade_price REAL NOT NULL,
			PRIMARY KEY (run_id, date, instrument)
		)`,
		`CREATE TABLE IF NOT EXISTS ledger_entries (
			run_id       TEXT NOT NULL REFERENCES runs(id),
			date         TEXT NOT NULL,
			opening      REAL NOT NULL,
			coupons      REAL NOT NULL,
			transactions REAL NOT NULL,
			PRIMARY KEY (run_id, date)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// SaveRun stores a completed run under a fresh uuid, in a single transaction.
func (r *SQLiteRecorder) SaveRun(cfg bondladder.Config, res *bondladder.Result) (string, error) {
	runID := uuid.NewString()

	cfgText, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, created_at, currency, start, config) VALUES (?, ?, ?, ?, ?)`,
		runID, time.Now().Unix(), cfg.Currency, cfg.Start.String(), string(cfgText),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, p := range res.Series() {
		_, err = tx.Exec(
			`INSERT INTO valuations (run_id, date, market_value, cash, total_value) VALUES (?, ?, ?, ?, ?)`,
			runID, p.Date.String(), p.MarketValue.AsFloat(), p.Cash.AsFloat(), p.TotalValue.AsFloat(),
		)
		if err != nil {
			return "", fmt.Errorf("insert valuation %s: %w", p.Date, err)
		}
	}

	for _, rec := range res.Positions.Records() {
		_, err = tx.Exec(
			`INSERT INTO positions (run_id, date, instrument, opening, ordered, price, coupon, trade_price)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, rec.Date.String(), rec.Instrument,
			rec.Opening.AsFloat(), rec.Ordered.AsFloat(),
			rec.Price.AsFloat(), rec.Coupon.AsFloat(), rec.TradePrice.AsFloat(),
		)
		if err != nil {
			return "", fmt.Errorf("insert position %s/%s: %w", rec.Date, rec.Instrument, err)
		}
	}

	for _, e := range res.Ledger.Entries() {
		_, err = tx.Exec(
			`INSERT INTO ledger_entries (run_id, date, opening, coupons, transactions) VALUES (?, ?, ?, ?, ?)`,
			runID, e.Date.String(), e.Opening.AsFloat(), e.Coupons.AsFloat(), e.Transactions.AsFloat(),
		)
		if err != nil {
			return "", fmt.Errorf("insert ledger entry %s: %w", e.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	log.Printf("recorded run %s: %d valuations", runID, res.Ledger.Len())
	return runID, nil
}

func (r *SQLiteRecorder) Close() error { return r.db.Close() }
