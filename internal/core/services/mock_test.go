package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driven"
)

// mockJobAPI implements driven.JobAPI for testing.
type mockJobAPI struct {
	mu sync.Mutex

	jobs      []domain.RawJob
	details   map[string]*domain.JobDetail
	templates map[int]*domain.SectorTemplate
	payload   *domain.ExportPayload
	user      *domain.User
	session   string

	listErr     error
	detailErr   error
	templateErr error
	createErr   error
	deleteErr   error
	exportErr   error
	loginErr    error
	logoutErr   error
	meErr       error

	// beforeDetail runs at the start of GetJobDetail, outside the lock.
	beforeDetail func(ctx context.Context, id string)

	detailCalls   int
	templateCalls int
	created       []domain.CreateJobRequest
	deleted       []string
	purged        []bool
	exports       []domain.ExportRequest
	logins        []string
	logouts       int
}

var _ driven.JobAPI = (*mockJobAPI)(nil)

func newMockJobAPI() *mockJobAPI {
	return &mockJobAPI{
		details:   make(map[string]*domain.JobDetail),
		templates: make(map[int]*domain.SectorTemplate),
	}
}

func (m *mockJobAPI) ListJobs(_ context.Context) ([]domain.RawJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.jobs, nil
}

func (m *mockJobAPI) GetJobDetail(ctx context.Context, id string, _ *int) (*domain.JobDetail, error) {
	if m.beforeDetail != nil {
		m.beforeDetail(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detailCalls++
	if m.detailErr != nil {
		return nil, m.detailErr
	}
	d, ok := m.details[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (m *mockJobAPI) CreateJob(_ context.Context, req domain.CreateJobRequest) (domain.RawJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, req)
	if m.createErr != nil {
		return nil, m.createErr
	}
	return domain.RawJob{
		"id":          "new-job",
		"workerPhone": req.WorkerPhone,
		"siteId":      req.SiteID,
		"sector":      req.Sector,
		"status":      domain.StatusPending,
	}, nil
}

func (m *mockJobAPI) DeleteJob(_ context.Context, id string, purgeFiles bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	m.purged = append(m.purged, purgeFiles)
	return nil
}

func (m *mockJobAPI) Export(_ context.Context, req domain.ExportRequest) (*domain.ExportPayload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exports = append(m.exports, req)
	if m.exportErr != nil {
		return nil, m.exportErr
	}
	if m.payload == nil {
		return &domain.ExportPayload{Data: []byte("data")}, nil
	}
	return m.payload, nil
}

func (m *mockJobAPI) GetSectorTemplate(_ context.Context, sector int) (*domain.SectorTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templateCalls++
	if m.templateErr != nil {
		return nil, m.templateErr
	}
	t, ok := m.templates[sector]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (m *mockJobAPI) Login(_ context.Context, username, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logins = append(m.logins, username)
	if m.loginErr != nil {
		return "", m.loginErr
	}
	return m.session, nil
}

func (m *mockJobAPI) CurrentUser(_ context.Context) (*domain.User, error) {
	if m.meErr != nil {
		return nil, m.meErr
	}
	return m.user, nil
}

func (m *mockJobAPI) Logout(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logouts++
	return m.logoutErr
}

func (m *mockJobAPI) calls() (detail, template int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.detailCalls, m.templateCalls
}

// --- Fixtures ---

const testAPIBase = "https://insp.example.com/api"

// sectorArrayJob is a two-sector job: sector 1 DONE, sector 2 in progress.
func sectorArrayJob(id string) domain.RawJob {
	return domain.RawJob{
		"_id":         id,
		"workerPhone": "+911234",
		"siteId":      "SITE-9",
		"status":      domain.StatusInProgress,
		"createdAt":   "2025-03-01T10:00:00Z",
		"sectors": []any{
			map[string]any{
				"sector":        2,
				"requiredTypes": []any{"LABEL", "AZIMUTH"},
				"currentIndex":  1,
				"status":        domain.StatusInProgress,
			},
			map[string]any{
				"sector":        1,
				"requiredTypes": []any{"LABEL"},
				"currentIndex":  0,
				"status":        domain.StatusDone,
			},
		},
	}
}

// testPhotos tags p1 to sector 1, p2 and p4 to sector 2 (p4 later), and
// leaves p3 untagged.
func testPhotos(jobID string) []domain.PhotoRecord {
	return []domain.PhotoRecord{
		{ID: "p1", JobID: jobID, Type: "label", S3Key: "jobs/" + jobID + "/label_s1_a.jpg"},
		{ID: "p2", JobID: jobID, Type: "LABEL", S3Key: "jobs/" + jobID + "/label_s2_b.jpg"},
		{ID: "p3", JobID: jobID, Type: "azimuth", S3Key: "jobs/" + jobID + "/azimuth.jpg"},
		{ID: "p4", JobID: jobID, Type: "LABEL", S3Key: "jobs/" + jobID + "/label_s2_c.jpg"},
	}
}

func uploadURL(key string) string {
	return "https://insp.example.com/uploads/" + key
}

func intRef(n int) *int {
	return &n
}
