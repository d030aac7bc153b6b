package scene

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// svgWriter remembers the first write error so rendering code stays linear.
type svgWriter struct {
	w   *bufio.Writer
	err error
}

func (s *svgWriter) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

// RenderSVG writes sc as a standalone SVG document sized to its physical page.
func RenderSVG(w io.Writer, sc *Scene) error {
	out := &svgWriter{w: bufio.NewWriter(w)}
	out.printf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%smm" height="%smm" font-family="Arial, Helvetica, sans-serif">`+"\n",
		num(sc.Width), num(sc.Height), num(sc.WidthMM), num(sc.HeightMM))
	for _, n := range sc.Nodes() {
		writeNode(out, n)
	}
	out.printf("</svg>\n")
	if out.err != nil {
		return fmt.Errorf("render svg: %w", out.err)
	}
	if err := out.w.Flush(); err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	return nil
}

// SVGString renders sc into a string.
func SVGString(sc *Scene) (string, error) {
	var b strings.Builder
	if err := RenderSVG(&b, sc); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeNode(out *svgWriter, n Node) {
	switch n.Kind {
	case KindRect:
		out.printf(`<rect x="%s" y="%s" width="%s" height="%s"%s%s/>`+"\n",
			num(n.X), num(n.Y), num(n.W), num(n.H), radiusAttr(n.Radius), styleAttrs(n.Style))
	case KindLine:
		if len(n.Points) < 2 {
			return
		}
		out.printf(`<line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`+"\n",
			num(n.Points[0].X), num(n.Points[0].Y), num(n.Points[1].X), num(n.Points[1].Y), styleAttrs(n.Style))
	case KindPolyline:
		out.printf(`<polyline points="%s"%s/>`+"\n", pointList(n.Points), styleAttrs(withNoFill(n.Style)))
	case KindPolygon:
		out.printf(`<polygon points="%s"%s/>`+"\n", pointList(n.Points), styleAttrs(n.Style))
	case KindCurve:
		if len(n.Points) < 4 {
			return
		}
		p := n.Points
		out.printf(`<path d="M %s,%s C %s,%s %s,%s %s,%s"%s/>`+"\n",
			num(p[0].X), num(p[0].Y), num(p[1].X), num(p[1].Y), num(p[2].X), num(p[2].Y), num(p[3].X), num(p[3].Y),
			styleAttrs(withNoFill(n.Style)))
	case KindText:
		at := n.Center()
		out.printf(`<text x="%s" y="%s"%s%s%s%s%s>%s</text>`+"\n",
			num(at.X), num(at.Y),
			optAttr("text-anchor", n.Anchor),
			optAttr("font-size", numOrEmpty(n.FontSize)),
			optAttr("font-weight", n.FontWeight),
			optAttr("fill", n.Style.Fill),
			rotateAttr(n.Rotate, at),
			xmlEscaper.Replace(n.Text))
	case KindIcon:
		c := n.Center()
		transform := ""
		if n.Rotate != 0 {
			transform = fmt.Sprintf("rotate(%s %s %s)", num(n.Rotate), num(c.X), num(c.Y))
		}
		if n.FlipY {
			transform = strings.TrimSpace(fmt.Sprintf("translate(0,%s) scale(1,-1) %s", num(2*c.Y), transform))
		}
		out.printf(`<image href="%s" x="%s" y="%s" width="%s" height="%s"%s/>`+"\n",
			xmlEscaper.Replace(DataURI(n.Markup)),
			num(c.X-n.W/2), num(c.Y-n.H/2), num(n.W), num(n.H),
			optAttr("transform", transform))
	case KindLabel:
		c := n.Center()
		out.printf(`<g%s>`, rotateAttr(n.Rotate, c))
		out.printf(`<rect x="%s" y="%s" width="%s" height="%s"%s%s/>`,
			num(c.X-n.W/2), num(c.Y-n.H/2), num(n.W), num(n.H), radiusAttr(n.Radius), styleAttrs(n.Style))
		size := n.FontSize
		if size == 0 {
			size = 9
		}
		out.printf(`<text x="%s" y="%s" text-anchor="middle" font-size="%s" fill="%s">%s</text>`,
			num(c.X), num(c.Y+size*0.38), num(size), xmlEscaper.Replace(cmp.Or(n.TextFill, "#111111")), xmlEscaper.Replace(n.Text))
		out.printf("</g>\n")
	}
}

// DataURI embeds SVG markup as a percent-encoded data URI.
func DataURI(markup string) string {
	return "data:image/svg+xml," + url.PathEscape(strings.TrimSpace(markup))
}

func withNoFill(s Style) Style {
	if s.Fill == "" {
		s.Fill = "none"
	}
	return s
}

func styleAttrs(s Style) string {
	var b strings.Builder
	b.WriteString(optAttr("fill", s.Fill))
	b.WriteString(optAttr("stroke", s.Stroke))
	b.WriteString(optAttr("stroke-width", numOrEmpty(s.StrokeWidth)))
	if len(s.Dash) > 0 {
		parts := make([]string, len(s.Dash))
		for i, d := range s.Dash {
			parts[i] = num(d)
		}
		b.WriteString(optAttr("stroke-dasharray", strings.Join(parts, ",")))
	}
	if s.Opacity > 0 && s.Opacity < 1 {
		b.WriteString(optAttr("opacity", num(s.Opacity)))
	}
	return b.String()
}

func optAttr(name, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf(` %s="%s"`, name, xmlEscaper.Replace(value))
}

func radiusAttr(r float64) string {
	if r <= 0 {
		return ""
	}
	return fmt.Sprintf(` rx="%s"`, num(r))
}

func rotateAttr(deg float64, about Point) string {
	if deg == 0 {
		return ""
	}
	return fmt.Sprintf(` transform="rotate(%s %s %s)"`, num(deg), num(about.X), num(about.Y))
}

func pointList(points []Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = num(p.X) + "," + num(p.Y)
	}
	return strings.Join(parts, " ")
}

// num formats view units with at most two decimals.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func numOrEmpty(v float64) string {
	if v == 0 {
		return ""
	}
	return num(v)
}
