package stage

import (
	"math"

	"backline/internal/config"
	"backline/internal/equipment"
	"backline/internal/scene"
)

// Page geometry in view units. The canvas prints as A4 portrait.
const (
	CanvasWidth  = 800
	CanvasHeight = 1120
	PageWidthMM  = 210
	PageHeightMM = 297

	StageX = 60
	StageY = 28
	StageW = 680
	StageH = 1062
)

// Glyph sizes in view units.
const (
	InstrumentSize = 130
	DrumSize       = 190
	AmpSize        = 110
	DISize         = 44
	MicSize        = 36
)

// TrunkX is where console cables run towards the stage centre line.
const TrunkX = StageX + StageW - 22

const (
	defaultLabelBudget = 14
	maxChipWidth       = 110
	chipHeight         = 14
	chipGap            = 11
	clusterStep        = 130
	drumMicPairStep    = 45
)

// Options tune the layout.
type Options struct {
	// BandName is printed in the page caption.
	BandName string
	// DepthBands is 3, or 2 to fold the mid band into the front band.
	DepthBands int
	// LabelBudget is the longest label printed without an ellipsis.
	LabelBudget int
}

// DefaultOptions returns a three-band layout with 14 character labels.
func DefaultOptions() Options {
	return Options{DepthBands: 3, LabelBudget: defaultLabelBudget}
}

// OptionsFromConfig reads layout options from the band and stage sections.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	opts.BandName = cfg.Band.Name
	if cfg.Stage.DepthBands != 0 {
		opts.DepthBands = cfg.Stage.DepthBands
	}
	if cfg.Stage.LabelBudget != 0 {
		opts.LabelBudget = cfg.Stage.LabelBudget
	}
	return opts
}

func (o Options) normalized() Options {
	if o.DepthBands != 2 {
		o.DepthBands = 3
	}
	if o.LabelBudget < 2 {
		o.LabelBudget = defaultLabelBudget
	}
	return o
}

// Grid maps stage positions to cell centres.
type Grid struct {
	depthX   []float64
	widthY   [3]float64
	dividers []float64
	bands    int
}

// NewGrid returns the grid for 2 or 3 depth bands. Any other count selects
// 3.
func NewGrid(depthBands int) Grid {
	g := Grid{widthY: [3]float64{
		StageY + round(StageH/6.0),
		StageY + round(StageH/2.0),
		StageY + StageH - round(StageH/6.0),
	}}
	if depthBands == 2 {
		g.bands = 2
		g.depthX = []float64{StageX + round(StageW/4.0), StageX + StageW - round(StageW/4.0)}
		g.dividers = []float64{StageX + round(StageW/2.0)}
		return g
	}
	g.bands = 3
	g.depthX = []float64{StageX + round(StageW/6.0), StageX + round(StageW/2.0), StageX + StageW - round(StageW/6.0)}
	g.dividers = []float64{StageX + round(StageW/3.0), StageX + StageW - round(StageW/3.0)}
	return g
}

// Cell returns the centre of pos. Unset and unknown positions report false.
func (g Grid) Cell(pos equipment.StagePosition) (scene.Point, bool) {
	d, w := pos.Depth(), pos.Width()
	if d == equipment.DepthNone || w == equipment.WidthNone {
		return scene.Point{}, false
	}
	col := int(d)
	if g.bands == 2 && d != equipment.DepthBack {
		col = 1
	}
	return scene.Point{X: g.depthX[col], Y: g.widthY[w]}, true
}

// CenterY is the stage's vertical centre line, where the console exit runs.
func (g Grid) CenterY() float64 {
	return g.widthY[equipment.WidthCenter]
}

// Dividers returns the x coordinates of the depth band separators.
func (g Grid) Dividers() []float64 {
	return append([]float64(nil), g.dividers...)
}

// ClusterOffsets returns the sub-positions of n items sharing one cell,
// relative to the cell centre.
func ClusterOffsets(n int) []scene.Point {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []scene.Point{{}}
	case n == 2:
		return []scene.Point{{X: -90}, {X: 90}}
	case n == 3:
		return []scene.Point{{X: -120}, {}, {X: 120}}
	case n == 4:
		return []scene.Point{{X: -90, Y: -80}, {X: 90, Y: -80}, {X: -90, Y: 80}, {X: 90, Y: 80}}
	}
	out := make([]scene.Point, n)
	for i := range out {
		out[i] = scene.Point{X: float64(i%3-1) * clusterStep, Y: float64(i/3) * clusterStep}
	}
	return out
}

func round(v float64) float64 {
	return math.Round(v)
}
