package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"gopairs/app"
	"gopairs/domain/report"
	"gopairs/internal"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Server represents the web server for the factor editor
type Server struct {
	router     *gin.Engine
	service    *app.ReportService
	workspaces *WorkspaceStore
	labels     report.Labels
	fileName   string
	templates  *template.Template
	logger     *internal.Logger
}

// Config holds editor settings
type Config struct {
	Labels   report.Labels
	FileName string
}

// NewServer creates a new web server instance
func NewServer(service *app.ReportService, config Config) (*Server, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	if config.FileName == "" {
		config.FileName = "pairwise_comparison.xlsx"
	}
	if config.Labels == (report.Labels{}) {
		config.Labels = service.Labels()
	}

	s := &Server{
		router:     gin.New(),
		service:    service,
		workspaces: NewWorkspaceStore(),
		labels:     config.Labels,
		fileName:   config.FileName,
		templates:  templates,
		logger:     internal.DefaultLogger.Named("UI"),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(func(c *gin.Context) {
		c.Next()
		s.logger.Debug("%s %s -> %d", c.Request.Method, c.Request.URL.Path, c.Writer.Status())
	})
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "workspaces": s.workspaces.Len()})
	})

	ws := s.router.Group("/workspaces")
	ws.POST("", s.handleCreateWorkspace)
	ws.GET("/:id", s.handleGetWorkspace)
	ws.GET("/:id/view", s.handleViewWorkspace)
	ws.PUT("/:id/model", s.handleReplaceModel)
	ws.DELETE("/:id", s.handleDeleteWorkspace)

	ws.POST("/:id/factors", s.handleAddFactor)
	ws.PUT("/:id/factors/:factor", s.handleRenameFactor)
	ws.DELETE("/:id/factors/:factor", s.handleRemoveFactor)
	ws.POST("/:id/factors/:factor/values", s.handleAddValue)
	ws.PUT("/:id/factors/:factor/values/:value", s.handleRenameValue)
	ws.DELETE("/:id/factors/:factor/values/:value", s.handleRemoveValue)

	ws.GET("/:id/metrics", s.handleMetrics)
	ws.GET("/:id/preview", s.handlePreview)
	ws.GET("/:id/report.xlsx", s.handleDownload)
}

// Handler exposes the router for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting editor on http://%s", addr)
	return s.router.Run(addr)
}

// renderTemplate writes a named template
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(c.Writer, templateName, data); err != nil {
		s.logger.Error("Template error: %v", err)
		c.String(http.StatusInternalServerError, "Template error")
	}
}
