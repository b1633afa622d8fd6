package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gopairs/adapters/excel"
	"gopairs/adapters/markdown"
	"gopairs/app"
	"gopairs/domain/core"
	"gopairs/domain/factor"
	"gopairs/domain/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestHandler() *Handler {
	service := app.NewReportService(
		excel.NewWriter(excel.DefaultWriterConfig()),
		markdown.NewRenderer(0),
		nil,
		app.ReportServiceConfig{Options: report.DefaultOptions(), BatchConcurrency: 1},
	)
	return NewHandler(service, "pairwise_comparison.xlsx")
}

func modelBody(t *testing.T, m factor.Model) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(m)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGenerateSuite(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/suites", modelBody(t, factor.Example()))
	newTestHandler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body SuiteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.ID)
	assert.Equal(t, factor.Example().Hash(), body.ModelHash)
	assert.Equal(t, []string{"主食", "副食", "デザート"}, body.Factors)
	assert.Len(t, body.Coverage, 3)
	assert.Equal(t, "27", body.Statistics.Exhaustive)
	assert.Equal(t, len(body.Cases), body.Statistics.Cases)
	assert.Equal(t, 0, body.Statistics.IncompletePairs)
	assert.False(t, body.Persisted)
}

func TestGenerateRejectsInvalidModel(t *testing.T) {
	m := factor.New(
		factor.Factor{Name: "A", Values: []string{"a1"}},
		factor.Factor{Name: "B", Values: []string{"b1", "b2"}},
	)
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/suites", modelBody(t, m)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestGenerateRejectsMalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/suites", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
}

func TestExportWorkbook(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reports", modelBody(t, factor.Example())))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, XLSXContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "pairwise_comparison.xlsx")
	assert.NotEmpty(t, rec.Header().Get("X-Suite-ID"))

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 6)
}

func TestPreview(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reports/preview", modelBody(t, factor.Example())))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<table>")
}

func TestMetricsEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/metrics", modelBody(t, factor.Example())))

	require.Equal(t, http.StatusOK, rec.Code)
	var metrics app.Metrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
	assert.True(t, metrics.Valid)
	assert.Equal(t, 9, metrics.TotalValues)
}

func TestGetSuite(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/suites/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/suites/"+core.NewSuiteID().String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSuitesWithoutHistory(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/suites?limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListSuitesByModelHash(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/suites?model_hash=not-a-hash", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/suites?model_hash="+factor.Example().Hash().String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
