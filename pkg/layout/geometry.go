package layout

// Position is a node's top-left corner in diagram coordinates.
// It is the only mutable per-node state with a lifecycle independent of the
// graph: written by automatic layout for unpinned nodes, written by manual
// placement for pinned nodes, and cleared only on a full reset.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Params control node geometry and spacing. All values are in user units
// (pixels in the SVG/HTML viewers).
type Params struct {
	NodeWidth  float64 // Box width per node
	NodeHeight float64 // Box height per node
	GapX       float64 // Horizontal gap between nodes in a layer
	GapY       float64 // Vertical gap between layers
	LeftPad    float64 // Minimum left margin; centering never crosses it
	TopPad     float64 // Top margin of the first layer
}

// Default geometry, matching the viewer's node card size.
const (
	DefaultNodeWidth  = 180.0
	DefaultNodeHeight = 72.0
	DefaultGapX       = 36.0
	DefaultGapY       = 64.0
	DefaultLeftPad    = 24.0
	DefaultTopPad     = 24.0
)

// DefaultParams returns the standard diagram geometry.
func DefaultParams() Params {
	return Params{
		NodeWidth:  DefaultNodeWidth,
		NodeHeight: DefaultNodeHeight,
		GapX:       DefaultGapX,
		GapY:       DefaultGapY,
		LeftPad:    DefaultLeftPad,
		TopPad:     DefaultTopPad,
	}
}

// RowWidth returns the total width of a layer holding count nodes.
func (p Params) RowWidth(count int) float64 {
	if count <= 0 {
		return 0
	}
	return float64(count)*p.NodeWidth + float64(count-1)*p.GapX
}

// RowY returns the y coordinate of the layer at the given depth. Depth
// strictly determines the vertical band, so predecessors always render
// above their successors.
func (p Params) RowY(depth int) float64 {
	return p.TopPad + float64(depth)*(p.NodeHeight+p.GapY)
}
