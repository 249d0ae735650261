package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/casefusion/casefusion-backend/internal/domain/errors"
	"github.com/casefusion/casefusion-backend/internal/service/intel"
)

type mockAnalysisService struct{ mock.Mock }

func (m *mockAnalysisService) Analyze(ctx context.Context, caseID, language string, refresh bool) (*intel.AnalysisRun, error) {
	args := m.Called(ctx, caseID, language, refresh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intel.AnalysisRun), args.Error(1)
}

type mockCaseRepo struct{ mock.Mock }

func (m *mockCaseRepo) CaseExists(ctx context.Context, caseID string) (bool, error) {
	args := m.Called(ctx, caseID)
	return args.Bool(0), args.Error(1)
}

func newTestServer(t *testing.T, svc *mockAnalysisService, cases *mockCaseRepo) *httptest.Server {
	t.Helper()
	h := NewHandler(svc, cases, nil, slog.Default())
	srv := httptest.NewServer(setupRoutes(h))
	t.Cleanup(srv.Close)
	return srv
}

func testRun(caseID string) *intel.AnalysisRun {
	return &intel.AnalysisRun{
		ID:       uuid.New(),
		CaseID:   caseID,
		Language: intel.LangEnglish,
	}
}

func TestHandleGetIntelligence(t *testing.T) {
	svc := new(mockAnalysisService)
	cases := new(mockCaseRepo)
	cases.On("CaseExists", mock.Anything, "case-1").Return(true, nil)
	svc.On("Analyze", mock.Anything, "case-1", "", false).Return(testRun("case-1"), nil)

	srv := newTestServer(t, svc, cases)
	resp, err := http.Get(srv.URL + "/api/v1/cases/case-1/intelligence")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var run intel.AnalysisRun
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
	assert.Equal(t, "case-1", run.CaseID)
	svc.AssertExpectations(t)
}

func TestHandleGetIntelligence_LanguagePassthrough(t *testing.T) {
	svc := new(mockAnalysisService)
	cases := new(mockCaseRepo)
	cases.On("CaseExists", mock.Anything, "case-1").Return(true, nil)
	svc.On("Analyze", mock.Anything, "case-1", "th", false).Return(testRun("case-1"), nil)

	srv := newTestServer(t, svc, cases)
	resp, err := http.Get(srv.URL + "/api/v1/cases/case-1/intelligence?lang=th")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestHandleGetIntelligence_UnknownCase(t *testing.T) {
	svc := new(mockAnalysisService)
	cases := new(mockCaseRepo)
	cases.On("CaseExists", mock.Anything, "case-x").Return(false, nil)

	srv := newTestServer(t, svc, cases)
	resp, err := http.Get(srv.URL + "/api/v1/cases/case-x/intelligence")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "RESOURCE_NOT_FOUND", body.Error.Code)
	svc.AssertNotCalled(t, "Analyze")
}

func TestHandleRefreshIntelligence(t *testing.T) {
	svc := new(mockAnalysisService)
	cases := new(mockCaseRepo)
	cases.On("CaseExists", mock.Anything, "case-2").Return(true, nil)
	svc.On("Analyze", mock.Anything, "case-2", "", true).Return(testRun("case-2"), nil)

	srv := newTestServer(t, svc, cases)
	resp, err := http.Post(srv.URL+"/api/v1/cases/case-2/intelligence/refresh", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestHandleRefresh_GetMethodNotAllowed(t *testing.T) {
	svc := new(mockAnalysisService)
	cases := new(mockCaseRepo)

	srv := newTestServer(t, svc, cases)
	resp, err := http.Get(srv.URL + "/api/v1/cases/case-2/intelligence/refresh")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHandleGetStats(t *testing.T) {
	svc := new(mockAnalysisService)
	cases := new(mockCaseRepo)
	cases.On("CaseExists", mock.Anything, "case-3").Return(true, nil)
	run := testRun("case-3")
	run.Stats.EntityCount = 7
	svc.On("Analyze", mock.Anything, "case-3", "", false).Return(run, nil)

	srv := newTestServer(t, svc, cases)
	resp, err := http.Get(srv.URL + "/api/v1/cases/case-3/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var stats struct {
		EntityCount int `json:"entity_count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 7, stats.EntityCount)
}

func TestHandleGetIntelligence_ServiceError(t *testing.T) {
	svc := new(mockAnalysisService)
	cases := new(mockCaseRepo)
	cases.On("CaseExists", mock.Anything, "case-4").Return(true, nil)
	svc.On("Analyze", mock.Anything, "case-4", "", false).
		Return(nil, domainerrors.NewInternalError("engine failure"))

	srv := newTestServer(t, svc, cases)
	resp, err := http.Get(srv.URL + "/api/v1/cases/case-4/intelligence")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, new(mockAnalysisService), new(mockCaseRepo))

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReadiness_Unavailable(t *testing.T) {
	h := NewHandler(new(mockAnalysisService), nil, func() bool { return false }, slog.Default())
	srv := httptest.NewServer(setupRoutes(h))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
