package chart

// SeriesMode tells the renderer how to draw a series
type SeriesMode string

const (
	ModeMarkers      SeriesMode = "markers"
	ModeLines        SeriesMode = "lines"
	ModeLinesMarkers SeriesMode = "lines+markers"
	ModeSegment      SeriesMode = "segment" // short horizontal mean indicator
	ModeBars         SeriesMode = "bars"
	ModeHistogram    SeriesMode = "histogram"
	ModeBox          SeriesMode = "box"
)

// Series is one trace inside a panel. X carries positions: indices into
// the spec's category axis when one is set, raw values otherwise.
type Series struct {
	Name        string     `json:"name"`
	Mode        SeriesMode `json:"mode"`
	X           []float64  `json:"x"`
	Y           []float64  `json:"y"`
	ErrorY      []float64  `json:"error_y,omitempty"`
	Color       string     `json:"color"`
	LegendGroup string     `json:"legend_group"`
	ShowLegend  bool       `json:"show_legend"`
	HoverText   []string   `json:"hover_text,omitempty"`
}

// Panel is one subplot cell. Row and Col are 1-based grid positions.
type Panel struct {
	Row    int      `json:"row"`
	Col    int      `json:"col"`
	Title  string   `json:"title"`
	Series []Series `json:"series"`
}

// Spec is the abstract chart handed to the rendering collaborator. It is
// built fresh per render, consumed immediately and never mutated after
// construction.
type Spec struct {
	Title    string  `json:"title"`
	Height   int     `json:"height"`
	Rows     int     `json:"rows"`
	Cols     int     `json:"cols"`
	ShowGrid bool    `json:"show_grid"`
	Axis     *Axis   `json:"axis,omitempty"`
	Panels   []Panel `json:"panels"`
	XLabel   string  `json:"x_label,omitempty"`
	YLabel   string  `json:"y_label,omitempty"`
}

// PanelAt returns the panel at a grid position, or nil
func (s *Spec) PanelAt(row, col int) *Panel {
	for i := range s.Panels {
		if s.Panels[i].Row == row && s.Panels[i].Col == col {
			return &s.Panels[i]
		}
	}
	return nil
}
