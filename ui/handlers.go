package ui

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"doseview/domain/core"
	"doseview/domain/selection"
	"doseview/internal/paginate"
)

// handleIndex renders the dashboard shell; the page fetches its data
// from the JSON endpoints
func (s *Server) handleIndex(c *gin.Context) {
	ds := s.service.Dataset()
	options, err := s.service.Options(parseReadOut(c.Query("read_out")))
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load options: %v", err)
		return
	}
	c.HTML(http.StatusOK, "screening.html", gin.H{
		"Title":       ds.Title,
		"Description": ds.Description,
		"Theme":       s.theme,
		"Options":     options,
		"PageSize":    s.pageSize,
	})
}

// handleOptions returns the valid sidebar choices for a read-out
func (s *Server) handleOptions(c *gin.Context) {
	options, err := s.service.Options(parseReadOut(c.Query("read_out")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, options)
}

// handleExplore runs the full recomputation pass and returns every
// panel's data in one response
func (s *Server) handleExplore(c *gin.Context) {
	sel := s.parseSelection(c)
	result, err := s.service.Explore(c.Request.Context(), sel, s.parsePageRequest(c))
	if err != nil {
		if core.IsEmptySelection(err) {
			// Terminal UI state: the page blocks further computation
			c.JSON(http.StatusOK, gin.H{"empty_selection": true, "message": err.Error()})
			return
		}
		log.Printf("[Server] explore failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if result.NoRows {
		c.JSON(http.StatusOK, gin.H{"no_rows": true})
		return
	}

	response := gin.H{
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
	c.JSON(http.StatusOK, response)
}

// handleSummary returns the summary panel alone
func (s *Server) handleSummary(c *gin.Context) {
	result, err := s.service.Explore(c.Request.Context(), s.parseSelection(c), s.parsePageRequest(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result.Summary)
}

// handleTable returns one page of the filtered table
func (s *Server) handleTable(c *gin.Context) {
	result, err := s.service.Explore(c.Request.Context(), s.parseSelection(c), s.parsePageRequest(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if result.Page == nil {
		c.JSON(http.StatusOK, gin.H{"no_rows": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": result.Page, "caption": result.Page.Caption()})
}

// parseSelection builds the Selection from query parameters. Multi-value
// parameters repeat: ?compound=A&compound=B.
func (s *Server) parseSelection(c *gin.Context) selection.Selection {
	return selection.Selection{
		ReadOut:      parseReadOut(c.Query("read_out")),
		Compounds:    c.QueryArray("compound"),
		Measurements: c.QueryArray("measurement"),
		PoolScreens:  c.Query("pool") == "true" || c.Query("pool") == "1",
	}
}

func (s *Server) parsePageRequest(c *gin.Context) paginate.Request {
	pageSize := s.pageSize
	if raw := c.Query("page_size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			pageSize = v
		}
	}
	page := 1
	if raw := c.Query("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	return paginate.Request{
		PageSize:   pageSize,
		Page:       page,
		SortColumn: c.Query("sort"),
		Search:     c.Query("search"),
	}
}
