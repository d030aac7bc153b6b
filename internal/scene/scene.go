package scene

import (
	"slices"
)

// Layer orders painting. Lower layers are drawn first.
type Layer int

const (
	LayerBackground Layer = iota
	LayerStage
	LayerCables
	LayerInstruments
	LayerAmplifiers
	LayerDIBoxes
	LayerAmpMics
	LayerDrumMics
)

func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerStage:
		return "stage"
	case LayerCables:
		return "cables"
	case LayerInstruments:
		return "instruments"
	case LayerAmplifiers:
		return "amplifiers"
	case LayerDIBoxes:
		return "di-boxes"
	case LayerAmpMics:
		return "amp-mics"
	case LayerDrumMics:
		return "drum-mics"
	}
	return "unknown"
}

// Kind identifies a node's shape.
type Kind string

const (
	KindRect     Kind = "rect"
	KindLine     Kind = "line"
	KindPolyline Kind = "polyline"
	KindCurve    Kind = "curve"
	KindPolygon  Kind = "polygon"
	KindText     Kind = "text"
	KindIcon     Kind = "icon"
	KindLabel    Kind = "label"
)

// Point is a position in view units.
type Point struct {
	X, Y float64
}

// Style holds paint attributes. An empty Fill or Stroke paints nothing.
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	Dash        []float64
	Opacity     float64
}

// Node is one drawable element.
//
// Geometry by kind:
//   - rect: X, Y, W, H, Radius
//   - line, polyline, polygon: Points
//   - curve: Points = start, control 1, control 2, end
//   - text: Points[0] is the anchor
//   - icon, label: centred on Points[0] with size W × H
type Node struct {
	Kind   Kind
	Layer  Layer
	Role   string
	Points []Point
	X, Y   float64
	W, H   float64
	Radius float64
	Style  Style

	Text       string
	FontSize   float64
	FontWeight string
	Anchor     string
	// TextFill colours label text.
	TextFill string

	// Rotate is applied in degrees about the node's centre.
	Rotate float64
	// FlipY mirrors icons vertically about their centre.
	FlipY  bool
	Markup string
	Key    string
}

// Center returns the point icons and labels are placed around.
func (n Node) Center() Point {
	switch n.Kind {
	case KindRect:
		return Point{n.X + n.W/2, n.Y + n.H/2}
	}
	if len(n.Points) == 0 {
		return Point{}
	}
	return n.Points[0]
}

// Scene is a fixed-size drawing.
type Scene struct {
	Width    float64
	Height   float64
	WidthMM  float64
	HeightMM float64
	nodes    []Node
}

// Nodes returns every node ordered by layer, keeping insertion order within a
// layer.
func (s *Scene) Nodes() []Node {
	out := slices.Clone(s.nodes)
	slices.SortStableFunc(out, func(a, b Node) int { return int(a.Layer) - int(b.Layer) })
	return out
}

// NodesIn returns the nodes of one layer in insertion order.
func (s *Scene) NodesIn(layer Layer) []Node {
	var out []Node
	for _, n := range s.nodes {
		if n.Layer == layer {
			out = append(out, n)
		}
	}
	return out
}

// WithRole returns the nodes tagged with role in painting order.
func (s *Scene) WithRole(role string) []Node {
	var out []Node
	for _, n := range s.Nodes() {
		if n.Role == role {
			out = append(out, n)
		}
	}
	return out
}

// Len returns the number of nodes.
func (s *Scene) Len() int {
	return len(s.nodes)
}
