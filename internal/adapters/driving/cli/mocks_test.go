package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driving"
)

var errNotMocked = errors.New("not mocked")

// MockJobService implements driving.JobService for CLI tests.
type MockJobService struct {
	ListFunc     func(ctx context.Context) ([]domain.JobCard, error)
	GetFunc      func(ctx context.Context, id string) (*domain.JobCard, error)
	CreateFunc   func(ctx context.Context, req domain.CreateJobRequest) (*domain.JobCard, error)
	DeleteFunc   func(ctx context.Context, id string, purge bool) error
	TemplateFunc func(ctx context.Context, sector int) (*domain.SectorTemplate, error)
}

func (m *MockJobService) List(ctx context.Context) ([]domain.JobCard, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockJobService) Get(ctx context.Context, id string) (*domain.JobCard, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockJobService) Create(ctx context.Context, req domain.CreateJobRequest) (*domain.JobCard, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &domain.JobCard{ID: "new"}, nil
}

func (m *MockJobService) Delete(ctx context.Context, id string, purge bool) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, purge)
	}
	return nil
}

func (m *MockJobService) Template(ctx context.Context, sector int) (*domain.SectorTemplate, error) {
	if m.TemplateFunc != nil {
		return m.TemplateFunc(ctx, sector)
	}
	return &domain.SectorTemplate{Sector: sector}, nil
}

// MockPreviewService implements driving.PreviewService for CLI tests.
type MockPreviewService struct {
	PreviewFunc func(ctx context.Context, jobID string, sector *int) (*domain.Preview, error)
}

func (m *MockPreviewService) Fetch(context.Context, string, *int) (*domain.JobSnapshot, error) {
	return nil, errNotMocked
}

func (m *MockPreviewService) Preview(ctx context.Context, jobID string, sector *int) (*domain.Preview, error) {
	if m.PreviewFunc != nil {
		return m.PreviewFunc(ctx, jobID, sector)
	}
	return &domain.Preview{JobID: jobID}, nil
}

func (m *MockPreviewService) NewSession() driving.PreviewSession {
	return nil
}

// MockExportService implements driving.ExportService for CLI tests.
type MockExportService struct {
	ExportFunc  func(ctx context.Context, req domain.ExportRequest, opts driving.ExportOptions) (*domain.ExportRecord, error)
	HistoryFunc func(ctx context.Context, limit int) ([]domain.ExportRecord, error)
	Cleared     bool
}

func (m *MockExportService) Export(
	ctx context.Context, req domain.ExportRequest, opts driving.ExportOptions,
) (*domain.ExportRecord, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, req, opts)
	}
	return &domain.ExportRecord{JobID: req.JobID, Kind: req.Kind, Path: req.FallbackFilename()}, nil
}

func (m *MockExportService) History(ctx context.Context, limit int) ([]domain.ExportRecord, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockExportService) ClearHistory(context.Context) error {
	m.Cleared = true
	return nil
}

// MockAuthService implements driving.AuthService for CLI tests.
type MockAuthService struct {
	LoginFunc func(ctx context.Context, username, password string) error
	LogoutErr error
	User      *domain.User
	WhoAmIErr error
	LoggedOut bool
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) error {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return nil
}

func (m *MockAuthService) Logout(context.Context) error {
	m.LoggedOut = true
	return m.LogoutErr
}

func (m *MockAuthService) WhoAmI(context.Context) (*domain.User, error) {
	if m.WhoAmIErr != nil {
		return nil, m.WhoAmIErr
	}
	return m.User, nil
}

// MockSettingsService implements driving.SettingsService over a map.
type MockSettingsService struct {
	Values   map[string]string
	Settings domain.AppSettings
}

func newMockSettings() *MockSettingsService {
	return &MockSettingsService{
		Values:   map[string]string{"api.base_url": domain.DefaultAPIBaseURL, "api.token": ""},
		Settings: domain.DefaultSettings(),
	}
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.Settings
	return &s, nil
}

func (m *MockSettingsService) GetValue(key string) (string, error) {
	v, ok := m.Values[key]
	if !ok {
		return "", domain.ErrInvalidInput
	}
	return v, nil
}

func (m *MockSettingsService) SetValue(key, value string) error {
	if _, ok := m.Values[key]; !ok {
		return domain.ErrInvalidInput
	}
	m.Values[key] = value
	return nil
}

func (m *MockSettingsService) Unset(key string) error {
	delete(m.Values, key)
	return nil
}

func (m *MockSettingsService) Keys() []string {
	return []string{"api.base_url", "api.token"}
}

func (m *MockSettingsService) Path() string {
	return "/home/test/.fieldlens/config.toml"
}

// MockPreviewWriter records the workbook it was asked to write.
type MockPreviewWriter struct {
	Path    string
	Preview *domain.Preview
}

func (m *MockPreviewWriter) WritePreview(p *domain.Preview, path string) error {
	m.Preview = p
	m.Path = path
	return nil
}

// resetFlags restores every flag of cmd and its children to its default,
// since cobra keeps flag state on the package-level commands.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the root command with services installed and
// returns everything written to stdout and stderr.
func executeCommand(t *testing.T, svc Services, stdin string, args ...string) (string, error) {
	t.Helper()

	SetServices(svc)
	resetFlags(rootCmd)
	t.Cleanup(func() {
		SetServices(Services{})
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}
