package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"insightlens/domain/core"
	"insightlens/internal/errors"
	"insightlens/ports"

	"github.com/jmoiron/sqlx"
)

// reportRepository implements ports.ReportRepository on Postgres. Only
// generated reports are archived; uploaded datasets never touch the database.
type reportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sqlx.DB) ports.ReportRepository {
	return &reportRepository{db: db}
}

// EnsureSchema creates the reports table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		upload_id TEXT NOT NULL,
		filename TEXT NOT NULL,
		payload JSONB NOT NULL,
		markdown TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.DatabaseError(fmt.Sprintf("failed to ensure reports schema: %v", err))
	}
	return nil
}

// Save inserts a generated report.
func (r *reportRepository) Save(ctx context.Context, report *ports.StoredReport) error {
	query := `INSERT INTO reports (id, upload_id, filename, payload, markdown, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		report.ID, report.UploadID, report.Filename, []byte(report.Payload), report.Markdown, report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// GetByID retrieves a report by its ID
func (r *reportRepository) GetByID(ctx context.Context, id core.ReportID) (*ports.StoredReport, error) {
	query := `SELECT id, upload_id, filename, payload, markdown, created_at
		FROM reports WHERE id = $1`

	var report ports.StoredReport
	var payload []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&report.ID, &report.UploadID, &report.Filename, &payload, &report.Markdown, &report.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("report")
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	report.Payload = payload
	return &report, nil
}

// ListRecent retrieves the most recently generated reports.
func (r *reportRepository) ListRecent(ctx context.Context, limit int) ([]*ports.StoredReport, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT id, upload_id, filename, payload, markdown, created_at
		FROM reports ORDER BY created_at DESC, id DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*ports.StoredReport
	for rows.Next() {
		var report ports.StoredReport
		var payload []byte
		if err := rows.Scan(&report.ID, &report.UploadID, &report.Filename, &payload, &report.Markdown, &report.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		report.Payload = payload
		reports = append(reports, &report)
	}
	return reports, rows.Err()
}
