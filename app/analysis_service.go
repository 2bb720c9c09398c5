package app

import (
	"context"
	"encoding/json"
	"time"

	"insightlens/adapters/ingest"
	"insightlens/domain/core"
	domval "insightlens/domain/validation"
	"insightlens/internal"
	"insightlens/internal/config"
	"insightlens/internal/errors"
	"insightlens/internal/profiling"
	"insightlens/internal/reporting"
	"insightlens/internal/session"
	"insightlens/internal/validation"
	"insightlens/ports"
)

// ConfigOverrides are the per-request knobs accepted on top of the
// configured defaults. Nil fields keep the default.
type ConfigOverrides struct {
	MissingnessThreshold      *float64
	MissingnessErrorThreshold *float64
	OutlierIQRMultiplier      *float64
	DuplicateSubset           []string
	NegativeValueColumns      []string
}

// AnalysisService runs the full upload -> ingest -> validate -> report
// pipeline and owns the upload and report stores.
type AnalysisService struct {
	reader   *ingest.Reader
	uploads  *session.UploadStore
	reports  ports.ReportRepository
	defaults config.ValidationConfig
	logger   *internal.Logger
}

// NewAnalysisService wires the pipeline dependencies.
func NewAnalysisService(reader *ingest.Reader, uploads *session.UploadStore, reports ports.ReportRepository, defaults config.ValidationConfig) *AnalysisService {
	return &AnalysisService{
		reader:   reader,
		uploads:  uploads,
		reports:  reports,
		defaults: defaults,
		logger:   internal.DefaultLogger,
	}
}

// SaveUpload registers uploaded file bytes and returns the upload id.
func (s *AnalysisService) SaveUpload(filename string, data []byte) (core.UploadID, error) {
	if filename == "" {
		return "", errors.InvalidInput("no filename provided")
	}
	if len(data) == 0 {
		return "", errors.InvalidInput("uploaded file is empty")
	}
	id := s.uploads.Put(filename, data)
	s.logger.Info("upload %s stored (%s, %d bytes)", id, filename, len(data))
	return id, nil
}

// GetUpload returns a stored upload.
func (s *AnalysisService) GetUpload(id core.UploadID) (*session.Upload, error) {
	up, ok := s.uploads.Get(id)
	if !ok {
		return nil, errors.NotFound("upload")
	}
	return up, nil
}

// buildConfig merges the configured defaults with per-request overrides.
func (s *AnalysisService) buildConfig(overrides ConfigOverrides) domval.Config {
	cfg := domval.Config{
		MissingnessThreshold:      s.defaults.MissingnessThreshold,
		MissingnessErrorThreshold: s.defaults.MissingnessErrorThreshold,
		OutlierIQRMultiplier:      s.defaults.OutlierIQRMultiplier,
		DuplicateSubset:           overrides.DuplicateSubset,
		NegativeValueColumns:      overrides.NegativeValueColumns,
	}
	if overrides.MissingnessThreshold != nil {
		cfg.MissingnessThreshold = *overrides.MissingnessThreshold
	}
	if overrides.MissingnessErrorThreshold != nil {
		cfg.MissingnessErrorThreshold = *overrides.MissingnessErrorThreshold
	}
	if overrides.OutlierIQRMultiplier != nil {
		cfg.OutlierIQRMultiplier = *overrides.OutlierIQRMultiplier
	}
	return cfg
}

// Analyze validates a previously uploaded file and stores the resulting
// report. Data problems come back inside the report; the returned error is
// reserved for ingestion failures and configuration misuse.
func (s *AnalysisService) Analyze(ctx context.Context, uploadID core.UploadID, overrides ConfigOverrides) (*ports.StoredReport, domval.Report, error) {
	up, err := s.GetUpload(uploadID)
	if err != nil {
		return nil, domval.Report{}, err
	}

	tbl, err := s.reader.Read(up.Filename, up.Data)
	if err != nil {
		return nil, domval.Report{}, err
	}

	report, err := validation.Validate(tbl, s.buildConfig(overrides))
	if err != nil {
		return nil, domval.Report{}, err
	}
	report.ColumnProfiles = profiling.ProfileTable(tbl)

	payload, err := validation.Encode(report)
	if err != nil {
		return nil, domval.Report{}, errors.Wrap(err, "failed to encode report")
	}

	stored := &ports.StoredReport{
		ID:        core.ReportID(core.NewID()),
		UploadID:  uploadID,
		Filename:  up.Filename,
		Payload:   json.RawMessage(payload),
		Markdown:  reporting.RenderMarkdown(up.Filename, report),
		CreatedAt: time.Now(),
	}
	if err := s.reports.Save(ctx, stored); err != nil {
		return nil, domval.Report{}, errors.Wrap(err, "failed to store report")
	}

	s.logger.Info("report %s generated for upload %s (%d findings)",
		stored.ID, uploadID, report.Summary.TotalFindings)
	return stored, report, nil
}

// GetReport returns a stored report by id.
func (s *AnalysisService) GetReport(ctx context.Context, id core.ReportID) (*ports.StoredReport, error) {
	return s.reports.GetByID(ctx, id)
}

// ListReports returns the most recent reports.
func (s *AnalysisService) ListReports(ctx context.Context, limit int) ([]*ports.StoredReport, error) {
	return s.reports.ListRecent(ctx, limit)
}
