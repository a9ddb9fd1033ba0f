package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"doseview/app"
	"doseview/domain/selection"
	"doseview/internal/config"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// Server is the compound-screening dashboard: a gin application serving
// the sidebar-driven page plus the JSON endpoints its renderer consumes
type Server struct {
	router    *gin.Engine
	service   *app.ScreeningService
	templates *template.Template
	theme     string
	pageSize  int
}

// NewServer creates the screening dashboard server
func NewServer(cfg *config.Config, service *app.ScreeningService) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.Default(),
		service:   service,
		templates: templates,
		theme:     cfg.UI.Theme,
		pageSize:  cfg.UI.PageSize,
	}
	s.router.SetHTMLTemplate(templates)
	s.setupRoutes()
	return s, nil
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"markdown": renderMarkdown,
		"add":      func(a, b int) int { return a + b },
		"minInt": func(a, b int) int {
			if a < b {
				return a
			}
			return b
		},
	}
	return template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
}

func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		log.Printf("[Server] Error creating static filesystem: %v", err)
	} else {
		s.router.StaticFS("/static", http.FS(staticFS))
	}

	s.router.GET("/", s.handleIndex)
	s.router.GET("/api/options", s.handleOptions)
	s.router.GET("/api/explore", s.handleExplore)
	s.router.GET("/api/summary", s.handleSummary)
	s.router.GET("/api/table", s.handleTable)
}

// Start starts the HTTP server
func (s *Server) Start(port string) error {
	addr := ":" + port
	log.Printf("Starting doseview screening dashboard on %s (theme %s)", addr, s.theme)
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// parseReadOut maps the query value onto the read-out enum, defaulting
// to calcium like the sidebar does
func parseReadOut(raw string) selection.ReadOut {
	switch raw {
	case string(selection.ReadOutVoltage):
		return selection.ReadOutVoltage
	case string(selection.ReadOutOther):
		return selection.ReadOutOther
	case "", string(selection.ReadOutCalcium):
		return selection.ReadOutCalcium
	}
	return selection.ReadOut(raw)
}
