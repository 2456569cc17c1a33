package store

import (
	"database/sql"
	"fmt"

	"github.com/Kamien29/converter-planu/internal/model"
)

// ConversionRun 一次转换运行的历史记录
type ConversionRun struct {
	ID           int64  `json:"id"`
	Filename     string `json:"filename"`
	OutputPath   string `json:"outputPath"`
	TotalSheets  int    `json:"totalSheets"`
	ParsedSheets int    `json:"parsedSheets"`
	EntryCount   int    `json:"entryCount"`
	WarningCount int    `json:"warningCount"`
	Status       string `json:"status"` // processing/done/error
	ErrorMessage string `json:"errorMessage"`
	CreatedAt    string `json:"createdAt"`
	CompletedAt  string `json:"completedAt"`
}

// CreateRun 创建运行记录，返回 run_id
func (s *Store) CreateRun(filename string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO conversion_runs (filename, status)
		VALUES (?, 'processing')
	`, filename)
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	return id, nil
}

// CompleteRun 以最终报告收尾运行记录
func (s *Store) CompleteRun(id int64, report *model.Report, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE conversion_runs SET
			output_path = ?,
			total_sheets = ?,
			parsed_sheets = ?,
			entry_count = ?,
			warning_count = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, report.OutputPath, report.TotalSheets, report.ParsedSheets,
		report.EntryCount, len(report.Warnings), status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// AddRunWarnings 记录一次运行的全部警告，保持产生顺序
func (s *Store) AddRunWarnings(runID int64, warnings []string) error {
	if len(warnings) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO run_warnings (run_id, seq, message) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, msg := range warnings {
		if _, err := stmt.Exec(runID, i+1, msg); err != nil {
			return fmt.Errorf("failed to insert warning: %w", err)
		}
	}

	return tx.Commit()
}

// ListRuns 按创建时间倒序列出最近的运行记录
func (s *Store) ListRuns(limit int) ([]ConversionRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, filename, output_path, total_sheets, parsed_sheets,
		       entry_count, warning_count, status, error_message,
		       created_at, IFNULL(completed_at, '')
		FROM conversion_runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []ConversionRun
	for rows.Next() {
		var r ConversionRun
		if err := rows.Scan(&r.ID, &r.Filename, &r.OutputPath, &r.TotalSheets,
			&r.ParsedSheets, &r.EntryCount, &r.WarningCount, &r.Status,
			&r.ErrorMessage, &r.CreatedAt, &r.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRunWarnings 按产生顺序读取一次运行的警告
func (s *Store) GetRunWarnings(runID int64) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT message FROM run_warnings
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query warnings: %w", err)
	}
	defer rows.Close()

	var warnings []string
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, fmt.Errorf("failed to scan warning: %w", err)
		}
		warnings = append(warnings, msg)
	}
	return warnings, rows.Err()
}

// CountRuns 统计运行总数
func (s *Store) CountRuns() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM conversion_runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return n, nil
}

// LastRunTime 最近一次运行的创建时间，无记录时返回空串
func (s *Store) LastRunTime() (string, error) {
	var t string
	err := s.db.QueryRow(`SELECT created_at FROM conversion_runs ORDER BY id DESC LIMIT 1`).Scan(&t)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query last run: %w", err)
	}
	return t, nil
}
