package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jgoulah/gascalc/pkg/models"
)

// DB wraps the report archive connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the necessary tables
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS daily_usage (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		report_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		oxygen REAL NOT NULL,
		diluent REAL NOT NULL,
		fraction_mode INTEGER NOT NULL,
		no_ambient_mode INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		published INTEGER DEFAULT 0,
		UNIQUE(report_id, day)
	);
	CREATE INDEX IF NOT EXISTS idx_usage_report ON daily_usage(report_id);
	CREATE INDEX IF NOT EXISTS idx_usage_published ON daily_usage(published);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// SaveReport archives every day of a computed usage under a new report id
func (db *DB) SaveReport(usage models.Usage, mode models.Mode) (string, error) {
	reportID := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	tx, err := db.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO daily_usage (report_id, day, oxygen, diluent, fraction_mode, no_ambient_mode, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for _, day := range usage.Days() {
		d := usage[day]
		if _, err := tx.Exec(query, reportID, day, d.Oxygen, d.Diluent, mode.Fraction, mode.NoAmbient, createdAt); err != nil {
			return "", fmt.Errorf("inserting day %d: %w", day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing report: %w", err)
	}

	return reportID, nil
}

const selectColumns = `SELECT id, report_id, day, oxygen, diluent, fraction_mode, no_ambient_mode, created_at FROM daily_usage`

// GetReport retrieves the days of one report, ordered by day
func (db *DB) GetReport(reportID string) ([]models.ArchivedDay, error) {
	return db.query(selectColumns+` WHERE report_id = ? ORDER BY day`, reportID)
}

// ListUsage retrieves every archived day, newest report first
func (db *DB) ListUsage() ([]models.ArchivedDay, error) {
	return db.query(selectColumns + ` ORDER BY created_at DESC, id DESC`)
}

// ListUnpublishedUsage retrieves archived days not yet published, oldest first
func (db *DB) ListUnpublishedUsage() ([]models.ArchivedDay, error) {
	return db.query(selectColumns + ` WHERE published = 0 ORDER BY id`)
}

// MarkPublished marks an archived day as published
func (db *DB) MarkPublished(id int) error {
	query := `UPDATE daily_usage SET published = 1 WHERE id = ?`
	_, err := db.conn.Exec(query, id)
	if err != nil {
		return fmt.Errorf("marking record as published: %w", err)
	}
	return nil
}

func (db *DB) query(query string, args ...any) ([]models.ArchivedDay, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying usage data: %w", err)
	}
	defer rows.Close()

	var results []models.ArchivedDay
	for rows.Next() {
		var data models.ArchivedDay
		var createdAt string

		if err := rows.Scan(&data.ID, &data.ReportID, &data.Day, &data.Oxygen, &data.Diluent,
			&data.Mode.Fraction, &data.Mode.NoAmbient, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		data.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}

		results = append(results, data)
	}

	return results, rows.Err()
}
