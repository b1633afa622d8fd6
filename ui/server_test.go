package ui

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
	"gopairs/domain/report"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestServer(t *testing.T, labels report.Labels) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	service := app.NewReportService(
		excel.NewWriter(excel.DefaultWriterConfig()),
		markdown.NewRenderer(0),
		nil,
		app.ReportServiceConfig{Options: report.Options{Labels: labels}, BatchConcurrency: 1},
	)
	s, err := NewServer(service, Config{Labels: labels})
	require.NoError(t, err)
	return s
}

func do(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeWorkspace(t *testing.T, rec *httptest.ResponseRecorder) Workspace {
	t.Helper()
	var ws Workspace
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ws))
	return ws
}

func createWorkspace(t *testing.T, s *Server) string {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/workspaces", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	return "/workspaces/" + decodeWorkspace(t, rec).ID.String()
}

func TestCreateWorkspaceSeedsExample(t *testing.T) {
	s := newTestServer(t, report.EnglishLabels())
	rec := do(t, s, http.MethodPost, "/workspaces", nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	ws := decodeWorkspace(t, rec)
	assert.Equal(t, []string{"主食", "副食", "デザート"}, ws.Model.Names())
}

func TestIndexRedirectsToNewWorkspace(t *testing.T) {
	s := newTestServer(t, report.EnglishLabels())
	rec := do(t, s, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/workspaces/"))
	assert.Equal(t, 1, s.workspaces.Len())
}

func TestAddFactorUsesDefaultNames(t *testing.T) {
	s := newTestServer(t, report.EnglishLabels())
	base := createWorkspace(t, s)

	rec := do(t, s, http.MethodPost, base+"/factors", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ws := decodeWorkspace(t, rec)
	assert.Equal(t, "Factor 4", ws.Model.Factors[3].Name)
	assert.Equal(t, []string{"Value 4-1", "Value 4-2"}, ws.Model.Factors[3].Values)

	rec = do(t, s, http.MethodPost, base+"/factors/3/values", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Value 4-3", decodeWorkspace(t, rec).Model.Factors[3].Values[2])
}

func TestAddFactorJapaneseNames(t *testing.T) {
	s := newTestServer(t, report.JapaneseLabels())
	base := createWorkspace(t, s)

	rec := do(t, s, http.MethodPost, base+"/factors", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "因子4", decodeWorkspace(t, rec).Model.Factors[3].Name)
}

func TestRenameAndRemove(t *testing.T) {
	s := newTestServer(t, report.EnglishLabels())
	base := createWorkspace(t, s)

	rec := do(t, s, http.MethodPut, base+"/factors/0", map[string]string{"name": "Staple"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Staple", decodeWorkspace(t, rec).Model.Factors[0].Name)

	rec = do(t, s, http.MethodPut, base+"/factors/0/values/1", map[string]string{"value": "Bagel"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bagel", decodeWorkspace(t, rec).Model.Factors[0].Values[1])

	rec = do(t, s, http.MethodDelete, base+"/factors/0/values/0", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeWorkspace(t, rec).Model.Factors[0].Values, 2)

	rec = do(t, s, http.MethodDelete, base+"/factors/0/values/0", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodDelete, base+"/factors/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, s, http.MethodDelete, base+"/factors/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, s, http.MethodDelete, base+"/factors/0", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestEditErrors(t *testing.T) {
	s := newTestServer(t, report.EnglishLabels())
	base := createWorkspace(t, s)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, base+"/factors/9", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodDelete, base+"/factors/x", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/workspaces/nope", nil).Code)
}

func TestMetricsReflectEdits(t *testing.T) {
	s := newTestServer(t, report.EnglishLabels())
	base := createWorkspace(t, s)

	var metrics app.Metrics
	rec := do(t, s, http.MethodGet, base+"/metrics", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
	assert.True(t, metrics.Valid)
	assert.Equal(t, "27", metrics.Exhaustive)

	do(t, s, http.MethodDelete, base+"/factors/2", nil)
	do(t, s, http.MethodDelete, base+"/factors/1", nil)

	rec = do(t, s, http.MethodGet, base+"/metrics", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
	assert.False(t, metrics.Valid)
	assert.NotEmpty(t, metrics.Message)
}

func TestDownloadReport(t *testing.T) {
	s := newTestServer(t, report.JapaneseLabels())
	base := createWorkspace(t, s)

	rec := do(t, s, http.MethodGet, base+"/report.xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, XLSXContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "pairwise_comparison.xlsx")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "Pairwiseテストケース", f.GetSheetList()[0])
}

func TestViewAndPreview(t *testing.T) {
	s := newTestServer(t, report.EnglishLabels())
	base := createWorkspace(t, s)

	rec := do(t, s, http.MethodGet, base+"/view", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "主食")
	assert.Contains(t, rec.Body.String(), "<table>")

	rec = do(t, s, http.MethodGet, base+"/preview", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pairwise Test Cases")
}

func TestViewOfInvalidModelShowsMessageWithoutPreview(t *testing.T) {
	s := newTestServer(t, report.EnglishLabels())
	base := createWorkspace(t, s)

	rec := do(t, s, http.MethodPut, base+"/model", map[string]interface{}{
		"factors": []map[string]interface{}{
			{"name": "os", "values": []string{" ", "mac"}},
			{"name": "arch", "values": []string{"amd64", "arm64"}},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, base+"/view", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "name must not be empty")
	assert.NotContains(t, rec.Body.String(), "<table>")
	assert.NotContains(t, rec.Body.String(), "Pairwise cases:")
}
