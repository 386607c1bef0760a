package render

// Style is the visual treatment for one node type.
type Style struct {
	Fill   string // Box fill color
	Stroke string // Box border color
	Accent string // Left accent bar and type label color
}

// defaultStyle is used for node types without a dedicated entry.
var defaultStyle = Style{Fill: "#ffffff", Stroke: "#cbd5e1", Accent: "#64748b"}

// typeStyles maps workflow node types to their colors. The table mirrors the
// viewer's card palette; unknown types fall back to a neutral grey.
var typeStyles = map[string]Style{
	"geometry":       {Fill: "#eff6ff", Stroke: "#93c5fd", Accent: "#2563eb"},
	"seismic":        {Fill: "#fef2f2", Stroke: "#fca5a5", Accent: "#dc2626"},
	"wind":           {Fill: "#ecfeff", Stroke: "#67e8f9", Accent: "#0891b2"},
	"structural":     {Fill: "#f0fdf4", Stroke: "#86efac", Accent: "#16a34a"},
	"footing_cap":    {Fill: "#fefce8", Stroke: "#fde047", Accent: "#ca8a04"},
	"footing_design": {Fill: "#faf5ff", Stroke: "#d8b4fe", Accent: "#9333ea"},
}

// StyleFor returns the style for a node type, falling back to the neutral
// default for unknown types.
func StyleFor(nodeType string) Style {
	if s, ok := typeStyles[nodeType]; ok {
		return s
	}
	return defaultStyle
}
