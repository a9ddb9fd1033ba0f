package chart

// qualitativePalette is the fixed color cycle for grouped series. Groups
// are assigned colors by selection order and wrap around when exhausted.
var qualitativePalette = []string{
	"#636EFA",
	"#EF553B",
	"#00CC96",
	"#AB63FA",
	"#FFA15A",
	"#19D3F3",
	"#FF6692",
	"#B6E880",
	"#FF97FF",
	"#FECB52",
}

// ColorFor returns the palette color for the i-th group
func ColorFor(i int) string {
	if i < 0 {
		i = 0
	}
	return qualitativePalette[i%len(qualitativePalette)]
}

// PaletteSize returns the number of distinct palette colors
func PaletteSize() int {
	return len(qualitativePalette)
}
