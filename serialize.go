package stage

import (
	"fmt"
	"html"
	"image/color"
	"strconv"
	"strings"
)

// ToObject returns the shape's attributes as a plain map, suitable for
// JSON or YAML encoding. The stage cache is never serialized.
func (s *Shape) ToObject() map[string]any {
	w, h := s.src.Size()
	obj := map[string]any{
		"type":            s.kind,
		"left":            s.Left,
		"top":             s.Top,
		"width":           w,
		"height":          h,
		"angle":           s.Angle,
		"scaleX":          s.ScaleX,
		"scaleY":          s.ScaleY,
		"visible":         s.Visible,
		"src":             s.Src,
		"fill":            colorString(s.Background),
		"stroke":          colorString(s.Stroke),
		"strokeWidth":     s.StrokeWidth,
		"strokeDashArray": dashOrNil(s.StrokeDash),
	}
	if s.page >= 0 {
		obj["page"] = s.page
	}
	return obj
}

// SVG returns the shape as an SVG group: an image of the content, offset so
// the group origin is the shape centre, followed by the outline rectangle
// when a stroke is set.
func (s *Shape) SVG() string {
	w, h := s.src.Size()
	var b strings.Builder

	fmt.Fprintf(&b, `<g transform="translate(%s %s) rotate(%s) scale(%s %s)">`,
		num(s.Left), num(s.Top), num(s.Angle), num(s.ScaleX), num(s.ScaleY))
	fmt.Fprintf(&b, `<image xlink:href="%s" transform="translate(%s %s)" width="%s" height="%s"></image>`,
		html.EscapeString(s.Src), num(-w/2), num(-h/2), num(w), num(h))

	if s.Stroke != nil || len(s.StrokeDash) > 0 {
		fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s" style="%s"/>`,
			num(-w/2), num(-h/2), num(w), num(h), s.svgStrokeStyle())
	}
	b.WriteString("</g>")
	return b.String()
}

func (s *Shape) svgStrokeStyle() string {
	stroke := "none"
	if s.Stroke != nil {
		stroke = colorString(s.Stroke)
	}
	style := fmt.Sprintf("stroke: %s; stroke-width: %s; fill: none;", stroke, num(s.StrokeWidth))
	if len(s.StrokeDash) > 0 {
		parts := make([]string, len(s.StrokeDash))
		for i, d := range s.StrokeDash {
			parts[i] = num(d)
		}
		style += " stroke-dasharray: " + strings.Join(parts, " ") + ";"
	}
	return style
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// colorString formats c as #rrggbb, or rgba() when it is translucent.
// A nil color formats as the empty string.
func colorString(c color.Color) string {
	if c == nil {
		return ""
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", n.R, n.G, n.B, strconv.FormatFloat(float64(n.A)/255, 'f', 3, 64))
}

func dashOrNil(d []float64) any {
	if len(d) == 0 {
		return nil
	}
	return append([]float64(nil), d...)
}
