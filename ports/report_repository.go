package ports

import (
	"context"
	"encoding/json"
	"time"

	"insightlens/domain/core"
)

// StoredReport is a generated report as kept by a report store: the
// canonical JSON payload plus the rendered markdown, with enough metadata to
// list and retrieve it. Datasets themselves are never stored.
type StoredReport struct {
	ID        core.ReportID   `json:"id" db:"id"`
	UploadID  core.UploadID   `json:"upload_id" db:"upload_id"`
	Filename  string          `json:"filename" db:"filename"`
	Payload   json.RawMessage `json:"payload" db:"payload"`
	Markdown  string          `json:"markdown" db:"markdown"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// ReportRepository abstracts report persistence so the HTTP layer works the
// same against the in-memory store and the Postgres archive.
type ReportRepository interface {
	Save(ctx context.Context, report *StoredReport) error
	GetByID(ctx context.Context, id core.ReportID) (*StoredReport, error)
	ListRecent(ctx context.Context, limit int) ([]*StoredReport, error)
}
