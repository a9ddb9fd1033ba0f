package ui

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"doseview/app"
	"doseview/domain/core"
	"doseview/internal/chartspec"
	"doseview/internal/paginate"
	"doseview/internal/sampledata"
)

// App is the generic sample-data explorer: a chi application over the
// generated demo datasets with free choice of axes and plot type
type App struct {
	router    *chi.Mux
	service   *app.ExplorerService
	templates *template.Template

	// seedMu guards seed across concurrent refresh requests
	seedMu sync.Mutex
	seed   int64
}

// AppConfig holds explorer configuration
type AppConfig struct {
	Seed int64
}

// NewApp creates the explorer application with generated sample data
func NewApp(cfg AppConfig) (*App, error) {
	generator := sampledata.NewGenerator(cfg.Seed)
	service := app.NewExplorerService(generator.Datasets())

	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		service:   service,
		templates: templates,
		seed:      cfg.Seed,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	// Serve static files
	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/api/datasets", a.handleDatasets)
	a.router.Get("/api/columns", a.handleColumns)
	a.router.Get("/api/explore", a.handleExplore)
	a.router.Post("/api/refresh", a.handleRefresh)
}

// Start starts the HTTP server
func (a *App) Start(port string) error {
	addr := ":" + port
	log.Printf("Starting doseview explorer on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the chi mux for tests
func (a *App) Router() *chi.Mux {
	return a.router
}

// handleIndex renders the explorer shell
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title":     "Interactive Dashboard",
		"Datasets":  a.service.Store().Names(),
		"PlotTypes": chartspec.PlotTypes(),
	}
	a.renderTemplate(w, "explorer.html", data)
}

// handleDatasets lists the registered datasets
func (a *App) handleDatasets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"datasets": a.service.Store().Names()})
}

// handleColumns returns a dataset's schema so the sidebar can populate
// its axis selectors
func (a *App) handleColumns(w http.ResponseWriter, r *http.Request) {
	ds, err := a.service.Store().Get(r.URL.Query().Get("dataset"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	categorical := ds.Table.Schema().CategoricalColumns()
	values := make(map[string][]string, len(categorical))
	for _, col := range categorical {
		if distinct, err := ds.Table.DistinctStrings(col); err == nil {
			values[col] = distinct
		}
	}
	writeJSON(w, map[string]any{
		"columns":     ds.Table.Schema().Columns(),
		"categorical": categorical,
		"values":      values,
		"description": string(renderMarkdown(ds.Description)),
	})
}

// handleExplore runs one explorer pass and returns all panels as JSON
func (a *App) handleExplore(w http.ResponseWriter, r *http.Request) {
	req, err := a.parseExploreRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := a.service.Explore(r.Context(), req)
	if err != nil {
		if core.IsNotFoundError(err) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("[App] explore failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if result.NoRows {
		writeJSON(w, map[string]any{"no_rows": true})
		return
	}

	response := map[string]any{
		"chart":   result.Chart,
		"summary": result.Summary,
	}
	if result.ChartErr != "" {
		response["chart_error"] = result.ChartErr
	}
	if result.Page != nil {
		response["page"] = result.Page
		response["caption"] = result.Page.Caption()
	} else {
		response["no_rows_for_search"] = true
	}
	writeJSON(w, response)
}

// handleRefresh regenerates the sample datasets with a fresh seed
func (a *App) handleRefresh(w http.ResponseWriter, r *http.Request) {
	a.seedMu.Lock()
	a.seed++
	seed := a.seed
	a.seedMu.Unlock()

	generator := sampledata.NewGenerator(seed)
	a.service.ReplaceStore(generator.Datasets())
	log.Printf("[App] sample data regenerated (seed %d)", seed)
	writeJSON(w, map[string]any{"ok": true})
}

func (a *App) parseExploreRequest(r *http.Request) (app.ExploreRequest, error) {
	q := r.URL.Query()

	height := 600
	if raw := q.Get("height"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 400 && v <= 800 {
			height = v
		}
	}

	pageSize := 25
	if raw := q.Get("page_size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			pageSize = v
		}
	}
	page := 1
	if raw := q.Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}

	plotType := chartspec.PlotType(q.Get("plot_type"))
	if plotType == "" {
		plotType = chartspec.PlotScatter
	}

	title := q.Get("title")
	if title == "" {
		title = fmt.Sprintf("%s - %s", q.Get("dataset"), plotType.Label())
	}

	return app.ExploreRequest{
		Dataset: q.Get("dataset"),
		Params: chartspec.GenericParams{
			PlotType: plotType,
			XColumn:  q.Get("x"),
			YColumn:  q.Get("y"),
			ColorBy:  q.Get("color_by"),
			Title:    title,
			Height:   height,
			ShowGrid: q.Get("grid") != "false",
		},
		FilterColumn: q.Get("filter_column"),
		FilterValues: q["filter_value"],
		Page: paginate.Request{
			PageSize:   pageSize,
			Page:       page,
			SortColumn: q.Get("sort"),
			Search:     q.Get("search"),
		},
	}, nil
}

// Template helpers
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("JSON encode error: %v", err)
	}
}
