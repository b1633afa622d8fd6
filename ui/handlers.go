package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"gopairs/app"
	"gopairs/domain/core"
	"gopairs/domain/factor"
	"gopairs/internal/errors"

	"github.com/gin-gonic/gin"
)

// XLSXContentType is the MIME type of downloaded workbooks
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type nameRequest struct {
	Name string `json:"name"`
}

type valueRequest struct {
	Value string `json:"value"`
}

type workspaceView struct {
	Workspace Workspace
	Metrics   app.Metrics
	Preview   template.HTML
	FileName  string
}

// handleIndex creates a workspace seeded with the example model and opens it
func (s *Server) handleIndex(c *gin.Context) {
	ws := s.workspaces.Create(factor.Example())
	c.Redirect(http.StatusSeeOther, "/workspaces/"+ws.ID.String()+"/view")
}

func (s *Server) handleCreateWorkspace(c *gin.Context) {
	m := factor.Example()
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&m); err != nil {
			s.abort(c, errors.InvalidInput(fmt.Sprintf("invalid model: %v", err)))
			return
		}
	}
	c.JSON(http.StatusCreated, s.workspaces.Create(m))
}

func (s *Server) handleGetWorkspace(c *gin.Context) {
	ws, ok := s.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ws)
}

func (s *Server) handleViewWorkspace(c *gin.Context) {
	ws, ok := s.workspace(c)
	if !ok {
		return
	}

	metrics, html, err := s.service.Overview(c.Request.Context(), ws.Model)
	if err != nil {
		s.logger.Warn("Preview failed for workspace %s: %v", ws.ID, err)
	}
	view := workspaceView{
		Workspace: ws,
		Metrics:   metrics,
		Preview:   template.HTML(html),
		FileName:  s.fileName,
	}
	s.renderTemplate(c, "workspace.html", view)
}

func (s *Server) handleReplaceModel(c *gin.Context) {
	var m factor.Model
	if err := c.ShouldBindJSON(&m); err != nil {
		s.abort(c, errors.InvalidInput(fmt.Sprintf("invalid model: %v", err)))
		return
	}
	s.edit(c, func(model *factor.Model) error {
		*model = m.Clone()
		return nil
	})
}

func (s *Server) handleDeleteWorkspace(c *gin.Context) {
	id, ok := s.workspaceID(c)
	if !ok {
		return
	}
	if err := s.workspaces.Delete(id); err != nil {
		s.abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleAddFactor appends a factor named "Factor N" with two placeholder values
// unless a name is given
func (s *Server) handleAddFactor(c *gin.Context) {
	var req nameRequest
	if !s.bindOptional(c, &req) {
		return
	}
	s.edit(c, func(m *factor.Model) error {
		n := m.Len() + 1
		name := req.Name
		if name == "" {
			name = s.labels.FactorName(n)
		}
		m.AddFactor(name, s.labels.ValueName(n, 1), s.labels.ValueName(n, 2))
		return nil
	})
}

func (s *Server) handleRenameFactor(c *gin.Context) {
	i, ok := s.index(c, "factor")
	if !ok {
		return
	}
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abort(c, errors.InvalidInput(fmt.Sprintf("invalid body: %v", err)))
		return
	}
	s.edit(c, func(m *factor.Model) error {
		return m.RenameFactor(i, req.Name)
	})
}

func (s *Server) handleRemoveFactor(c *gin.Context) {
	i, ok := s.index(c, "factor")
	if !ok {
		return
	}
	s.edit(c, func(m *factor.Model) error {
		return m.RemoveFactor(i)
	})
}

func (s *Server) handleAddValue(c *gin.Context) {
	i, ok := s.index(c, "factor")
	if !ok {
		return
	}
	var req valueRequest
	if !s.bindOptional(c, &req) {
		return
	}
	s.edit(c, func(m *factor.Model) error {
		value := req.Value
		if value == "" && i >= 0 && i < m.Len() {
			value = s.labels.ValueName(i+1, len(m.Factors[i].Values)+1)
		}
		return m.AddValue(i, value)
	})
}

func (s *Server) handleRenameValue(c *gin.Context) {
	i, ok := s.index(c, "factor")
	if !ok {
		return
	}
	j, ok := s.index(c, "value")
	if !ok {
		return
	}
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abort(c, errors.InvalidInput(fmt.Sprintf("invalid body: %v", err)))
		return
	}
	s.edit(c, func(m *factor.Model) error {
		return m.RenameValue(i, j, req.Value)
	})
}

func (s *Server) handleRemoveValue(c *gin.Context) {
	i, ok := s.index(c, "factor")
	if !ok {
		return
	}
	j, ok := s.index(c, "value")
	if !ok {
		return
	}
	s.edit(c, func(m *factor.Model) error {
		return m.RemoveValue(i, j)
	})
}

func (s *Server) handleMetrics(c *gin.Context) {
	ws, ok := s.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.service.Metrics(ws.Model))
}

func (s *Server) handlePreview(c *gin.Context) {
	ws, ok := s.workspace(c)
	if !ok {
		return
	}
	html, err := s.service.Preview(c.Request.Context(), ws.Model)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// handleDownload generates from a snapshot so edits made while the workbook
// is being written do not leak into it
func (s *Server) handleDownload(c *gin.Context) {
	ws, ok := s.workspace(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	result, err := s.service.ExportReport(c.Request.Context(), ws.Model, &buf)
	if err != nil {
		s.abort(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.fileName))
	c.Header("X-Suite-ID", result.ID.String())
	c.Data(http.StatusOK, XLSXContentType, buf.Bytes())
}

func (s *Server) edit(c *gin.Context, fn func(m *factor.Model) error) {
	id, ok := s.workspaceID(c)
	if !ok {
		return
	}
	ws, err := s.workspaces.Update(id, fn)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

func (s *Server) workspace(c *gin.Context) (Workspace, bool) {
	id, ok := s.workspaceID(c)
	if !ok {
		return Workspace{}, false
	}
	ws, err := s.workspaces.Get(id)
	if err != nil {
		s.abort(c, err)
		return Workspace{}, false
	}
	return ws, true
}

func (s *Server) workspaceID(c *gin.Context) (core.WorkspaceID, bool) {
	id, err := core.ParseWorkspaceID(c.Param("id"))
	if err != nil {
		s.abort(c, errors.InvalidInput(err.Error()))
		return "", false
	}
	return id, true
}

func (s *Server) index(c *gin.Context, param string) (int, bool) {
	n, err := strconv.Atoi(c.Param(param))
	if err != nil {
		s.abort(c, errors.InvalidInput(fmt.Sprintf("%s index must be an integer", param)))
		return 0, false
	}
	return n, true
}

func (s *Server) bindOptional(c *gin.Context, dst interface{}) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		s.abort(c, errors.InvalidInput(fmt.Sprintf("invalid body: %v", err)))
		return false
	}
	return true
}

func (s *Server) abort(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed: %v", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"code": code, "error": err.Error()})
}
