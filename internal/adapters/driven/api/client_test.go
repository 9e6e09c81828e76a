package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.Handler, cfg Config) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg.BaseURL = server.URL + "/api"
	c, err := NewClient(cfg)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, domain.ErrNoBaseURL)

	_, err = NewClient(Config{BaseURL: "ftp://host/api"})
	assert.ErrorIs(t, err, domain.ErrNoBaseURL)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c, err := NewClient(Config{BaseURL: "https://insp.example.com/api/"})
	require.NoError(t, err)
	assert.Equal(t, "https://insp.example.com/api", c.BaseURL())
	assert.Equal(t, "https://insp.example.com/api/jobs/a%2Fb", c.endpoint(nil, "jobs", "a/b"))
}

func TestSetBaseURL_MovesRequestsAndSession(t *testing.T) {
	oldHits := 0
	oldMux := http.NewServeMux()
	oldMux.HandleFunc("GET /api/jobs", func(w http.ResponseWriter, _ *http.Request) {
		oldHits++
		writeJSON(w, http.StatusOK, []map[string]any{})
	})
	c := newTestClient(t, oldMux, Config{Session: "stored"})

	newMux := http.NewServeMux()
	newMux.HandleFunc("GET /v2/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		require.NoError(t, err)
		assert.Equal(t, "stored", cookie.Value)
		writeJSON(w, http.StatusOK, []map[string]any{{"id": "moved"}})
	})
	moved := httptest.NewServer(newMux)
	t.Cleanup(moved.Close)

	require.NoError(t, c.SetBaseURL(moved.URL+"/v2/api/"))
	assert.Equal(t, moved.URL+"/v2/api", c.BaseURL())

	jobs, err := c.ListJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "moved", jobs[0]["id"])
	assert.Zero(t, oldHits)
}

func TestSetBaseURL_RejectsInvalidBase(t *testing.T) {
	c, err := NewClient(Config{BaseURL: "https://insp.example.com/api"})
	require.NoError(t, err)

	assert.ErrorIs(t, c.SetBaseURL("not a url"), domain.ErrNoBaseURL)
	assert.ErrorIs(t, c.SetBaseURL(""), domain.ErrNoBaseURL)
	assert.Equal(t, "https://insp.example.com/api", c.BaseURL())
}

func TestListJobs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/jobs", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get(HeaderRequestID))
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": "j1", "status": "DONE"},
			{"id": "j2"},
		})
	})
	c := newTestClient(t, mux, Config{})

	jobs, err := c.ListJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "j1", jobs[0]["id"])
}

func TestGetJobDetail_PassesSectorAndOrdersPhotos(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/jobs/j1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("sector"))
		writeJSON(w, http.StatusOK, map[string]any{
			"job": map[string]any{"id": "j1"},
			"photos": []any{
				map[string]any{"id": "late", "type": "azimuth", "createdAt": "2024-05-02T10:00:00Z"},
				"not-an-object",
				map[string]any{"_id": map[string]any{"$oid": "early"}, "type": "label", "createdAt": "2024-05-01T10:00:00Z", "reason": "blurry"},
			},
		})
	})
	c := newTestClient(t, mux, Config{})

	sector := 2
	detail, err := c.GetJobDetail(context.Background(), "j1", &sector)
	require.NoError(t, err)
	assert.Equal(t, "j1", detail.Job["id"])
	require.Len(t, detail.Photos, 2)
	assert.Equal(t, "early", detail.Photos[0].ID)
	assert.Equal(t, []string{"blurry"}, detail.Photos[0].Reason)
	assert.Equal(t, "late", detail.Photos[1].ID)
}

func TestGetJobDetail_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/jobs/missing", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Job not found"})
	})
	c := newTestClient(t, mux, Config{})

	_, err := c.GetJobDetail(context.Background(), "missing", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Fetch job failed: Job not found", err.Error())
}

func TestCreateJob_SendsBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/jobs", func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateJobRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "+15551234", req.WorkerPhone)
		writeJSON(w, http.StatusCreated, map[string]any{"id": "new", "siteId": req.SiteID})
	})
	c := newTestClient(t, mux, Config{})

	job, err := c.CreateJob(context.Background(), domain.CreateJobRequest{WorkerPhone: "+15551234", SiteID: "S-9", Sector: 1})
	require.NoError(t, err)
	assert.Equal(t, "new", job["id"])
	assert.Equal(t, "S-9", job["siteId"])
}

func TestDeleteJob_Purge(t *testing.T) {
	var purge string
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/jobs/j1", func(w http.ResponseWriter, r *http.Request) {
		purge = r.URL.Query().Get("purge_files")
		w.WriteHeader(http.StatusNoContent)
	})
	c := newTestClient(t, mux, Config{})

	require.NoError(t, c.DeleteJob(context.Background(), "j1", true))
	assert.Equal(t, "true", purge)
}

func TestGetSectorTemplate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/jobs/templates/sector/3", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"requiredTypes": []string{"azimuth", "label"},
			"labels":        map[string]string{"azimuth": "Azimuth photo"},
		})
	})
	c := newTestClient(t, mux, Config{})

	tmpl, err := c.GetSectorTemplate(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, tmpl.Sector)
	assert.Equal(t, []string{"azimuth", "label"}, tmpl.RequiredTypes)
}

func TestValidationErrorDetail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/jobs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []any{map[string]any{"msg": "field required"}, map[string]any{"msg": "bad phone"}},
		})
	})
	c := newTestClient(t, mux, Config{})

	_, err := c.CreateJob(context.Background(), domain.CreateJobRequest{})
	require.Error(t, err)
	assert.Equal(t, "Create job failed: field required; bad phone", err.Error())
}

func TestStatusLineWhenNoDetail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/jobs", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	c := newTestClient(t, mux, Config{})

	_, err := c.ListJobs(context.Background())
	require.Error(t, err)
	assert.Equal(t, "List jobs failed: 502 Bad Gateway", err.Error())
}

func TestRateLimited(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/jobs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderRetryAfter, "30")
		w.WriteHeader(http.StatusTooManyRequests)
	})
	c := newTestClient(t, mux, Config{})

	_, err := c.ListJobs(context.Background())
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.ErrorIs(t, err, domain.ErrRateLimited)

	var rl *RateLimitError
	require.True(t, errors.As(err, &rl))
	assert.False(t, rl.RetryAfter.IsZero())
}

func TestBearerToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/jobs", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []any{})
	})
	c := newTestClient(t, mux, Config{Token: "secret"})

	jobs, err := c.ListJobs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestExport_ContentDisposition(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/jobs/j1/export.xlsx", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename*=UTF-8''job%20j1.xlsx`)
		_, _ = io.WriteString(w, "xlsx-bytes")
	})
	c := newTestClient(t, mux, Config{})

	payload, err := c.Export(context.Background(), domain.ExportRequest{JobID: "j1", Kind: domain.ExportXLSX})
	require.NoError(t, err)
	assert.Equal(t, "job j1.xlsx", payload.Filename)
	assert.Equal(t, []byte("xlsx-bytes"), payload.Data)
	assert.Contains(t, payload.ContentType, "spreadsheetml")
}

func TestExport_SectorEndpoints(t *testing.T) {
	var gotZip, gotSector string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/jobs/j1/export.zip", func(w http.ResponseWriter, r *http.Request) {
		gotZip = r.URL.RawQuery
		_, _ = io.WriteString(w, "zip")
	})
	mux.HandleFunc("GET /api/exports/sector.xlsx", func(w http.ResponseWriter, r *http.Request) {
		gotSector = r.URL.RawQuery
		_, _ = io.WriteString(w, "xlsx")
	})
	c := newTestClient(t, mux, Config{})
	sector := 2

	payload, err := c.Export(context.Background(), domain.ExportRequest{JobID: "j1", Sector: &sector, Kind: domain.ExportZIP})
	require.NoError(t, err)
	assert.Equal(t, "sector=2", gotZip)
	assert.Equal(t, "job_j1_sec2.zip", payload.Filename)

	payload, err = c.Export(context.Background(), domain.ExportRequest{JobID: "j1", Sector: &sector, Kind: domain.ExportSectorXLSX})
	require.NoError(t, err)
	assert.Equal(t, "jobId=j1&sector=2", gotSector)
	assert.Equal(t, "job_j1_sec2.xlsx", payload.Filename)
}

func TestExport_SectorXLSXNeedsSector(t *testing.T) {
	c, err := NewClient(Config{BaseURL: "https://insp.example.com/api"})
	require.NoError(t, err)

	_, err = c.Export(context.Background(), domain.ExportRequest{JobID: "j1", Kind: domain.ExportSectorXLSX})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExport_FailureWrapsExportError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/jobs/j1/export.xlsx", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c := newTestClient(t, mux, Config{})

	_, err := c.Export(context.Background(), domain.ExportRequest{JobID: "j1", Kind: domain.ExportXLSX})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExportFailed)
	assert.Equal(t, "Export failed: 500 Internal Server Error", err.Error())
}

func TestParseContentDisposition(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{`attachment; filename="report.xlsx"`, "report.xlsx"},
		{`attachment; filename=plain.zip`, "plain.zip"},
		{`attachment; filename*=UTF-8''r%C3%A9sum%C3%A9.xlsx`, "résumé.xlsx"},
		{`attachment; filename="../../etc/passwd"`, "passwd"},
		{`attachment`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, parseContentDisposition(tt.header))
		})
	}
}

func TestLoginSessionLifecycle(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "pw" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Invalid credentials"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "tok-1", Path: "/", HttpOnly: true})
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil || cookie.Value != "tok-1" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Not authenticated"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"username": "admin"}})
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	c := newTestClient(t, mux, Config{})
	ctx := context.Background()

	_, err := c.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = c.CurrentUser(ctx)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	token, err := c.Login(ctx, "admin", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, "tok-1", c.Session())

	user, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.Session())
	_, err = c.CurrentUser(ctx)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResumeSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		require.NoError(t, err)
		assert.Equal(t, "stored", cookie.Value)
		writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"username": "ops"}})
	})
	c := newTestClient(t, mux, Config{Session: "stored"})

	user, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ops", user.Username)
}
