package paginate

import (
	"fmt"
	"math"
	"strings"
	"time"

	"doseview/domain/core"
	"doseview/domain/table"
)

// Request is one page request over a filtered table
type Request struct {
	PageSize   int
	Page       int    // 1-based
	SortColumn string // empty means keep table order
	Search     string // empty means no filtering
}

// Page is one slice of display rows plus the bookkeeping for a
// "Showing X–Y of Z rows" caption
type Page struct {
	Rows       []map[string]any `json:"rows"`
	Columns    []string         `json:"columns"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalRows  int              `json:"total_rows"`
	TotalPages int              `json:"total_pages"`
	StartIndex int              `json:"start_index"` // 0-based inclusive
	EndIndex   int              `json:"end_index"`   // exclusive
}

// Caption renders the 1-based row range for display
func (p *Page) Caption() string {
	return fmt.Sprintf("Showing %d–%d of %d rows", p.StartIndex+1, p.EndIndex, p.TotalRows)
}

// Paginate searches, sorts and slices a table into one fixed-size page.
// Search is a case-insensitive substring match OR-ed across every
// categorical column. Zero matching rows short-circuits to
// core.ErrNoMatchingRows so callers render an explicit empty state
// instead of a one-page empty view.
func Paginate(t *table.Table, req Request) (*Page, error) {
	if req.PageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", req.PageSize)
	}

	matched := Search(t, req.Search)
	if matched.Len() == 0 {
		return nil, core.ErrNoMatchingRows
	}

	if req.SortColumn != "" {
		sorted, err := matched.SortedBy(req.SortColumn)
		if err != nil {
			return nil, err
		}
		matched = sorted
	}

	totalRows := matched.Len()
	totalPages := (totalRows + req.PageSize - 1) / req.PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * req.PageSize
	end := start + req.PageSize
	if end > totalRows {
		end = totalRows
	}

	out := &Page{
		Columns:    matched.Schema().ColumnNames(),
		Page:       page,
		PageSize:   req.PageSize,
		TotalRows:  totalRows,
		TotalPages: totalPages,
		StartIndex: start,
		EndIndex:   end,
	}
	for i := start; i < end; i++ {
		out.Rows = append(out.Rows, displayRecord(matched, i))
	}
	return out, nil
}

// Search returns the rows whose categorical columns contain the term,
// case-insensitively. An empty term returns the table unchanged.
func Search(t *table.Table, term string) *table.Table {
	term = strings.TrimSpace(term)
	if term == "" {
		return t
	}
	needle := strings.ToLower(term)
	columns := t.Schema().CategoricalColumns()

	return t.Filter(func(i int) bool {
		for _, column := range columns {
			if value, ok := t.String(i, column); ok {
				if strings.Contains(strings.ToLower(value), needle) {
					return true
				}
			}
		}
		return false
	})
}

// displayRecord converts a row for display, rounding numeric cells to
// three decimals and formatting dates
func displayRecord(t *table.Table, i int) map[string]any {
	record := make(map[string]any, t.Schema().Len())
	for _, column := range t.Schema().Columns() {
		value, _ := t.Value(i, column.Name)
		if value == nil {
			record[column.Name] = ""
			continue
		}
		switch column.Kind {
		case table.KindNumeric:
			if v, ok := value.(float64); ok {
				record[column.Name] = math.Round(v*1000) / 1000
			} else {
				record[column.Name] = value
			}
		case table.KindDatetime:
			if ts, ok := value.(time.Time); ok {
				record[column.Name] = ts.Format("2006-01-02")
			} else {
				record[column.Name] = value
			}
		default:
			record[column.Name] = value
		}
	}
	return record
}
