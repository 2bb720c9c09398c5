package ui

import (
	domval "insightlens/domain/validation"
)

// UploadResponse is returned after a successful file upload.
type UploadResponse struct {
	UploadID string `json:"upload_id"`
	Filename string `json:"filename"`
}

// AnalyzeRequest triggers validation of a previously uploaded file. All
// threshold fields are optional and fall back to the server defaults.
type AnalyzeRequest struct {
	UploadID                  string   `json:"upload_id" binding:"required"`
	MissingnessThreshold      *float64 `json:"missingness_threshold"`
	MissingnessErrorThreshold *float64 `json:"missingness_error_threshold"`
	OutlierIQRMultiplier      *float64 `json:"outlier_iqr_multiplier"`
	DuplicateSubset           []string `json:"duplicate_subset"`
	NegativeValueColumns      []string `json:"negative_value_columns"`
}

// AnalyzeResponse identifies the generated report and carries the compact
// summary view.
type AnalyzeResponse struct {
	ReportID string         `json:"report_id"`
	Summary  domval.Summary `json:"summary"`
}

// ReportListEntry is one row in the recent-reports listing.
type ReportListEntry struct {
	ReportID  string `json:"report_id"`
	Filename  string `json:"filename"`
	CreatedAt string `json:"created_at"`
}
