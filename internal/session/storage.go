package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"insightlens/domain/core"
	"insightlens/internal/errors"
	"insightlens/ports"
)

// Upload is a received file held in memory until it is analyzed. Uploads are
// scoped to the process lifetime; nothing is written to disk.
type Upload struct {
	ID         core.UploadID
	Filename   string
	Data       []byte
	ReceivedAt time.Time
}

// UploadStore is the in-memory upload registry.
type UploadStore struct {
	mu      sync.RWMutex
	uploads map[core.UploadID]*Upload
}

// NewUploadStore creates an empty upload store.
func NewUploadStore() *UploadStore {
	return &UploadStore{uploads: make(map[core.UploadID]*Upload)}
}

// Put registers an uploaded file and returns its identifier.
func (s *UploadStore) Put(filename string, data []byte) core.UploadID {
	id := core.UploadID(core.NewID())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[id] = &Upload{
		ID:         id,
		Filename:   filename,
		Data:       data,
		ReceivedAt: time.Now(),
	}
	return id
}

// Get returns an upload by id.
func (s *UploadStore) Get(id core.UploadID) (*Upload, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	up, ok := s.uploads[id]
	return up, ok
}

// Delete removes an upload once it is no longer needed.
func (s *UploadStore) Delete(id core.UploadID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.uploads, id)
}

// MemoryReportStore is the in-memory ports.ReportRepository used when no
// database archive is configured.
type MemoryReportStore struct {
	mu      sync.RWMutex
	reports map[core.ReportID]*ports.StoredReport
}

// NewMemoryReportStore creates an empty report store.
func NewMemoryReportStore() *MemoryReportStore {
	return &MemoryReportStore{reports: make(map[core.ReportID]*ports.StoredReport)}
}

// Save stores a report.
func (s *MemoryReportStore) Save(ctx context.Context, report *ports.StoredReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.ID] = report
	return nil
}

// GetByID returns a stored report.
func (s *MemoryReportStore) GetByID(ctx context.Context, id core.ReportID) (*ports.StoredReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	if !ok {
		return nil, errors.NotFound("report")
	}
	return report, nil
}

// ListRecent returns up to limit reports, newest first.
func (s *MemoryReportStore) ListRecent(ctx context.Context, limit int) ([]*ports.StoredReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*ports.StoredReport, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
