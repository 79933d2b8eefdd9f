package train

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// History persists training runs and their per-epoch losses to SQLite.
type History struct {
	db *sql.DB
}

// OpenHistory opens the run database at path, creating the schema if the
// file is new.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs(
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			optimizer TEXT NOT NULL,
			epochs INTEGER NOT NULL,
			lr REAL NOT NULL,
			final_loss REAL,
			created_at TEXT NOT NULL
		)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS epochs(
			run_id INTEGER NOT NULL,
			epoch INTEGER NOT NULL,
			loss REAL NOT NULL,
			lr REAL NOT NULL
		)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create epochs table: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the underlying database.
func (h *History) Close() error {
	return h.db.Close()
}

// StartRun inserts a run row and returns its id.
func (h *History) StartRun(name string, cfg TrainConfig) (int64, error) {
	res, err := h.db.Exec(
		"INSERT INTO runs(name, optimizer, epochs, lr, created_at) VALUES(?,?,?,?,?)",
		name, cfg.Optimizer, cfg.Epochs, cfg.LR, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// RecordEpoch appends one epoch row to the run.
func (h *History) RecordEpoch(runID int64, stat EpochStat) error {
	_, err := h.db.Exec(
		"INSERT INTO epochs(run_id, epoch, loss, lr) VALUES(?,?,?,?)",
		runID, stat.Epoch, stat.Loss, stat.LR,
	)
	if err != nil {
		return fmt.Errorf("insert epoch %d: %w", stat.Epoch, err)
	}
	return nil
}

// FinishRun records the run's final loss.
func (h *History) FinishRun(runID int64, finalLoss float64) error {
	_, err := h.db.Exec("UPDATE runs SET final_loss = ? WHERE id = ?", finalLoss, runID)
	if err != nil {
		return fmt.Errorf("finish run %d: %w", runID, err)
	}
	return nil
}

// EpochLosses returns the recorded losses of a run in epoch order.
func (h *History) EpochLosses(runID int64) ([]float64, error) {
	rows, err := h.db.Query("SELECT loss FROM epochs WHERE run_id = ? ORDER BY epoch", runID)
	if err != nil {
		return nil, fmt.Errorf("query epochs: %w", err)
	}
	defer rows.Close()

	var losses []float64
	for rows.Next() {
		var loss float64
		if err := rows.Scan(&loss); err != nil {
			return nil, fmt.Errorf("scan epoch loss: %w", err)
		}
		losses = append(losses, loss)
	}
	return losses, rows.Err()
}

// LastRun returns the id and final loss of the most recent run.
func (h *History) LastRun() (int64, float64, error) {
	var id int64
	var finalLoss sql.NullFloat64
	err := h.db.QueryRow(
		"SELECT id, final_loss FROM runs ORDER BY id DESC LIMIT 1",
	).Scan(&id, &finalLoss)
	if err != nil {
		return 0, 0, fmt.Errorf("query last run: %w", err)
	}
	return id, finalLoss.Float64, nil
}
