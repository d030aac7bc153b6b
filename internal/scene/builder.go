package scene

import (
	"cmp"
	"strings"
)

// Builder accumulates nodes on a current layer.
type Builder struct {
	scene *Scene
	layer Layer
}

// NewBuilder starts a scene of w × h view units printed at wmm × hmm.
func NewBuilder(w, h, wmm, hmm float64) *Builder {
	return &Builder{scene: &Scene{Width: w, Height: h, WidthMM: wmm, HeightMM: hmm}}
}

// On switches the layer subsequent nodes are added to.
func (b *Builder) On(layer Layer) *Builder {
	b.layer = layer
	return b
}

func (b *Builder) add(n Node) {
	n.Layer = b.layer
	b.scene.nodes = append(b.scene.nodes, n)
}

// AddRect adds an axis-aligned rectangle.
func (b *Builder) AddRect(role string, x, y, w, h, radius float64, style Style) {
	b.add(Node{Kind: KindRect, Role: role, X: x, Y: y, W: w, H: h, Radius: radius, Style: style})
}

// AddLine adds a straight segment.
func (b *Builder) AddLine(role string, from, to Point, style Style) {
	b.add(Node{Kind: KindLine, Role: role, Points: []Point{from, to}, Style: style})
}

// AddPolyline adds an open path through points.
func (b *Builder) AddPolyline(role string, points []Point, style Style) {
	if len(points) < 2 {
		return
	}
	b.add(Node{Kind: KindPolyline, Role: role, Points: append([]Point(nil), points...), Style: style})
}

// AddCurve adds a cubic Bézier from start to end.
func (b *Builder) AddCurve(role string, start, c1, c2, end Point, style Style) {
	b.add(Node{Kind: KindCurve, Role: role, Points: []Point{start, c1, c2, end}, Style: style})
}

// Cable is a signal run. Curved cables carry exactly four points: start,
// two controls, end.
type Cable struct {
	Points []Point
	Curved bool
	Style  Style
}

// AddCable adds a cable as a cubic curve or an open polyline.
func (b *Builder) AddCable(role string, c Cable) {
	if c.Curved && len(c.Points) == 4 {
		b.AddCurve(role, c.Points[0], c.Points[1], c.Points[2], c.Points[3], c.Style)
		return
	}
	b.AddPolyline(role, c.Points, c.Style)
}

// AddPolygon adds a closed filled shape.
func (b *Builder) AddPolygon(role string, points []Point, style Style) {
	if len(points) < 3 {
		return
	}
	b.add(Node{Kind: KindPolygon, Role: role, Points: append([]Point(nil), points...), Style: style})
}

// Text describes a text run.
type Text struct {
	At     Point
	Value  string
	Size   float64
	Weight string
	Anchor string
	Fill   string
	Rotate float64
}

// AddText adds a text run. Blank text is dropped.
func (b *Builder) AddText(role string, t Text) {
	if strings.TrimSpace(t.Value) == "" {
		return
	}
	b.add(Node{
		Kind:       KindText,
		Role:       role,
		Points:     []Point{t.At},
		Text:       t.Value,
		FontSize:   t.Size,
		FontWeight: t.Weight,
		Anchor:     t.Anchor,
		Rotate:     t.Rotate,
		Style:      Style{Fill: t.Fill},
	})
}

// Icon describes a glyph placed by its centre.
type Icon struct {
	Key    string
	Markup string
	Center Point
	Size   float64
	Rotate float64
	FlipY  bool
}

// AddIcon adds a glyph. Icons without markup leave blank space and add no
// node.
func (b *Builder) AddIcon(role string, icon Icon) bool {
	if strings.TrimSpace(icon.Markup) == "" {
		return false
	}
	b.add(Node{
		Kind:   KindIcon,
		Role:   role,
		Key:    icon.Key,
		Markup: icon.Markup,
		Points: []Point{icon.Center},
		W:      icon.Size,
		H:      icon.Size,
		Rotate: icon.Rotate,
		FlipY:  icon.FlipY,
	})
	return true
}

// Label describes a rounded chip with centred text.
type Label struct {
	Center Point
	Text   string
	W, H   float64
	Rotate float64
	Size   float64
	Radius float64
	// Fill and TextFill default to a white chip with dark text.
	Fill     string
	TextFill string
}

// AddLabel adds a label chip. Blank text is dropped.
func (b *Builder) AddLabel(role string, l Label) {
	if strings.TrimSpace(l.Text) == "" {
		return
	}
	style := Style{Fill: "#ffffff", Stroke: "#333333", StrokeWidth: 1}
	if l.Fill != "" {
		style = Style{Fill: l.Fill}
	}
	radius := l.Radius
	if radius == 0 {
		radius = l.H / 2
	}
	b.add(Node{
		Kind:     KindLabel,
		Role:     role,
		Points:   []Point{l.Center},
		W:        l.W,
		H:        l.H,
		Radius:   radius,
		Text:     l.Text,
		FontSize: l.Size,
		Rotate:   l.Rotate,
		Style:    style,
		TextFill: cmp.Or(l.TextFill, "#111111"),
	})
}

// Build returns the finished scene. The builder must not be reused.
func (b *Builder) Build() *Scene {
	return b.scene
}
