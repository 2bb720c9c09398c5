package ui

import (
	"io"
	"net/http"
	"strconv"

	"insightlens/app"
	"insightlens/domain/core"
	"insightlens/internal/errors"
	"insightlens/internal/reporting"

	"github.com/gin-gonic/gin"
)

// handleUpload receives a CSV or Excel file as multipart form data and
// registers it for analysis.
func (s *Server) handleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}
	if s.maxUploadSize > 0 && fileHeader.Size > s.maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot open uploaded file"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}

	id, err := s.service.SaveUpload(fileHeader.Filename, data)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, UploadResponse{UploadID: id.String(), Filename: fileHeader.Filename})
}

// handleAnalyze runs validation for an uploaded file and returns the report
// id plus the compact summary.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	uploadID, err := core.ParseUploadID(req.UploadID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stored, report, err := s.service.Analyze(c.Request.Context(), uploadID, app.ConfigOverrides{
		MissingnessThreshold:      req.MissingnessThreshold,
		MissingnessErrorThreshold: req.MissingnessErrorThreshold,
		OutlierIQRMultiplier:      req.OutlierIQRMultiplier,
		DuplicateSubset:           req.DuplicateSubset,
		NegativeValueColumns:      req.NegativeValueColumns,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		ReportID: stored.ID.String(),
		Summary:  report.Summary,
	})
}

// handleGetReport serves a stored report as html (default), json or markdown.
func (s *Server) handleGetReport(c *gin.Context) {
	id, err := core.ParseReportID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stored, err := s.service.GetReport(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	switch c.DefaultQuery("format", "html") {
	case "json":
		c.Data(http.StatusOK, "application/json", stored.Payload)
	case "markdown":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(stored.Markdown))
	case "html":
		page, err := reporting.MarkdownToHTML(stored.Markdown)
		if err != nil {
			s.logger.Error("failed to render report %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render report"})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be html, json or markdown"})
	}
}

// handleListReports returns the most recent reports.
func (s *Server) handleListReports(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}
	reports, err := s.service.ListReports(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	entries := make([]ReportListEntry, 0, len(reports))
	for _, r := range reports {
		entries = append(entries, ReportListEntry{
			ReportID:  r.ID.String(),
			Filename:  r.Filename,
			CreatedAt: r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"reports": entries, "count": len(entries)})
}

// handleStatus is the lightweight health endpoint.
func (s *Server) handleStatus(c *gin.Context) {
	c.String(http.StatusOK, "InsightLens API OK")
}

// respondError maps application error codes onto HTTP statuses.
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeConfigInvalid, errors.CodeParseError, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeMaxRowsExceeded:
		status = http.StatusRequestEntityTooLarge
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}
