package db

import (
	"database/sql"
	"fmt"
	"time"
)

// ReportRecord is one generated report run.
type ReportRecord struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	StartDate string    `json:"start_date"` // YYYY-MM-DD
	EndDate   string    `json:"end_date"`   // YYYY-MM-DD
	Filepath  string    `json:"filepath"`   // run output directory
	Filename  string    `json:"filename"`   // primary document filename
	RunID     string    `json:"run_id"`     // UUID for the run
	Timezone  string    `json:"timezone"`
	Units     string    `json:"units"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportMessage is one report-level notice stored with a run.
type ReportMessage struct {
	ID       int    `json:"id"`
	ReportID int    `json:"report_id"`
	Level    string `json:"level"`
	Message  string `json:"message"`
}

const reportColumns = `id, name, start_date, end_date, filepath, filename,
	       run_id, timezone, units, status, created_at`

// CreateReport inserts a new report record and fills in its ID.
func (db *DB) CreateReport(r *ReportRecord) error {
	if r.Status == "" {
		r.Status = "complete"
	}
	result, err := db.DB.Exec(`
		INSERT INTO reports (
			name, start_date, end_date, filepath, filename,
			run_id, timezone, units, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.Name, r.StartDate, r.EndDate, r.Filepath, r.Filename,
		r.RunID, r.Timezone, r.Units, r.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	r.ID = int(id)
	return nil
}

// GetReport retrieves a report record by ID.
func (db *DB) GetReport(id int) (*ReportRecord, error) {
	row := db.DB.QueryRow(`SELECT `+reportColumns+` FROM reports WHERE id = ?`, id)

	var r ReportRecord
	err := row.Scan(
		&r.ID, &r.Name, &r.StartDate, &r.EndDate, &r.Filepath, &r.Filename,
		&r.RunID, &r.Timezone, &r.Units, &r.Status, &r.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("report not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &r, nil
}

// GetReportByRunID retrieves a report record by its run UUID.
func (db *DB) GetReportByRunID(runID string) (*ReportRecord, error) {
	row := db.DB.QueryRow(`SELECT `+reportColumns+` FROM reports WHERE run_id = ?`, runID)

	var r ReportRecord
	err := row.Scan(
		&r.ID, &r.Name, &r.StartDate, &r.EndDate, &r.Filepath, &r.Filename,
		&r.RunID, &r.Timezone, &r.Units, &r.Status, &r.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("report not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &r, nil
}

// ListRecentReports retrieves the most recent N report records.
func (db *DB) ListRecentReports(limit int) ([]ReportRecord, error) {
	rows, err := db.DB.Query(`
		SELECT `+reportColumns+`
		FROM reports
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []ReportRecord
	for rows.Next() {
		var r ReportRecord
		err := rows.Scan(
			&r.ID, &r.Name, &r.StartDate, &r.EndDate, &r.Filepath, &r.Filename,
			&r.RunID, &r.Timezone, &r.Units, &r.Status, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// DeleteReport deletes a report record and its messages.
func (db *DB) DeleteReport(id int) error {
	result, err := db.DB.Exec(`DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("report not found")
	}
	return nil
}

// AddReportMessage stores one report-level message for a run.
func (db *DB) AddReportMessage(reportID int, level, message string) error {
	_, err := db.DB.Exec(`
		INSERT INTO report_messages (report_id, level, message)
		VALUES (?, ?, ?)
	`, reportID, level, message)
	if err != nil {
		return fmt.Errorf("failed to add report message: %w", err)
	}
	return nil
}

// GetReportMessages retrieves the messages stored with a run, oldest
// first.
func (db *DB) GetReportMessages(reportID int) ([]ReportMessage, error) {
	rows, err := db.DB.Query(`
		SELECT id, report_id, level, message
		FROM report_messages
		WHERE report_id = ?
		ORDER BY id
	`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to query report messages: %w", err)
	}
	defer rows.Close()

	var msgs []ReportMessage
	for rows.Next() {
		var m ReportMessage
		if err := rows.Scan(&m.ID, &m.ReportID, &m.Level, &m.Message); err != nil {
			return nil, fmt.Errorf("failed to scan report message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
