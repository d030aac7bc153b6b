package scene

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/fogleman/gg"
)

// RenderPNG rasterizes sc at scale pixels per view unit. Icons are drawn as
// outlined placeholders carrying their key since their markup is vector data.
func RenderPNG(w io.Writer, sc *Scene, scale float64) error {
	if scale <= 0 {
		return errors.New("render png: scale must be positive")
	}
	width := int(math.Ceil(sc.Width * scale))
	height := int(math.Ceil(sc.Height * scale))
	dc := gg.NewContext(width, height)
	dc.SetHexColor("#ffffff")
	dc.Clear()
	dc.Scale(scale, scale)

	for _, n := range sc.Nodes() {
		drawNode(dc, n)
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	return nil
}

func drawNode(dc *gg.Context, n Node) {
	dc.Push()
	defer dc.Pop()

	switch n.Kind {
	case KindRect:
		if n.Radius > 0 {
			dc.DrawRoundedRectangle(n.X, n.Y, n.W, n.H, n.Radius)
		} else {
			dc.DrawRectangle(n.X, n.Y, n.W, n.H)
		}
		paint(dc, n.Style)
	case KindLine, KindPolyline:
		tracePath(dc, n.Points)
		paint(dc, withNoFill(n.Style))
	case KindPolygon:
		tracePath(dc, n.Points)
		dc.ClosePath()
		paint(dc, n.Style)
	case KindCurve:
		if len(n.Points) < 4 {
			return
		}
		p := n.Points
		dc.MoveTo(p[0].X, p[0].Y)
		dc.CubicTo(p[1].X, p[1].Y, p[2].X, p[2].Y, p[3].X, p[3].Y)
		paint(dc, withNoFill(n.Style))
	case KindText:
		at := n.Center()
		rotateAbout(dc, n.Rotate, at)
		setColor(dc, n.Style.Fill, "#111111")
		dc.DrawStringAnchored(n.Text, at.X, at.Y, anchorX(n.Anchor), 0)
	case KindIcon:
		c := n.Center()
		rotateAbout(dc, n.Rotate, c)
		dc.DrawRoundedRectangle(c.X-n.W/2, c.Y-n.H/2, n.W, n.H, 6)
		dc.SetHexColor("#999999")
		dc.SetLineWidth(1)
		dc.SetDash(3, 3)
		dc.Stroke()
		dc.SetDash()
		dc.SetHexColor("#555555")
		dc.DrawStringAnchored(n.Key, c.X, c.Y, 0.5, 0.5)
	case KindLabel:
		c := n.Center()
		rotateAbout(dc, n.Rotate, c)
		dc.DrawRoundedRectangle(c.X-n.W/2, c.Y-n.H/2, n.W, n.H, n.Radius)
		paint(dc, n.Style)
		setColor(dc, n.TextFill, "#111111")
		dc.DrawStringAnchored(n.Text, c.X, c.Y, 0.5, 0.5)
	}
}

func tracePath(dc *gg.Context, points []Point) {
	for i, p := range points {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
			continue
		}
		dc.LineTo(p.X, p.Y)
	}
}

func paint(dc *gg.Context, s Style) {
	fill := s.Fill != "" && s.Fill != "none"
	stroke := s.Stroke != "" && s.Stroke != "none"
	if fill {
		setColor(dc, s.Fill, "#000000")
		if stroke {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	if stroke {
		setColor(dc, s.Stroke, "#000000")
		dc.SetLineWidth(max(s.StrokeWidth, 1))
		dc.SetDash(s.Dash...)
		dc.Stroke()
		dc.SetDash()
	}
	if !fill && !stroke {
		dc.ClearPath()
	}
}

func setColor(dc *gg.Context, hex, fallback string) {
	if hex == "" || hex[0] != '#' {
		hex = fallback
	}
	dc.SetHexColor(hex)
}

func rotateAbout(dc *gg.Context, deg float64, about Point) {
	if deg != 0 {
		dc.RotateAbout(gg.Radians(deg), about.X, about.Y)
	}
}

func anchorX(anchor string) float64 {
	switch anchor {
	case "middle":
		return 0.5
	case "end":
		return 1
	}
	return 0
}
