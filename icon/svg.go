package icon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// visualTags are the element names whose fill and stroke attributes are
// rewritten when recoloring.
var visualTags = map[string]bool{
	"path": true, "circle": true, "rect": true, "polygon": true,
	"ellipse": true, "polyline": true, "line": true, "text": true, "g": true,
}

// animationTags are skipped entirely during recoloring so embedded SMIL
// animations keep their animated values.
var animationTags = map[string]bool{
	"animate": true, "animateTransform": true, "animateMotion": true,
	"set": true, "style": true,
}

// parseSVG parses SVG bytes into a document rooted at an <svg> element.
func parseSVG(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return nil, fmt.Errorf("not an svg document")
	}
	return doc, nil
}

func renderSVG(doc *etree.Document) ([]byte, error) {
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize svg: %w", err)
	}
	return data, nil
}

var nonNumericPattern = regexp.MustCompile(`[^\d.]`)

// numericPrefix strips units like "px" or "em" from a dimension value.
func numericPrefix(s, fallback string) string {
	v := nonNumericPattern.ReplaceAllString(s, "")
	if v == "" {
		return fallback
	}
	return v
}

// ensureViewBox synthesizes a viewBox from width/height when the root
// element has none, so later size changes scale instead of crop.
func ensureViewBox(root *etree.Element) {
	if root.SelectAttrValue("viewBox", "") != "" {
		return
	}
	w := numericPrefix(root.SelectAttrValue("width", "24"), "24")
	h := numericPrefix(root.SelectAttrValue("height", "24"), "24")
	root.CreateAttr("viewBox", fmt.Sprintf("0 0 %s %s", w, h))
}

// setSize sets width and height on the root element.
func setSize(root *etree.Element, size int) {
	root.CreateAttr("width", strconv.Itoa(size))
	root.CreateAttr("height", strconv.Itoa(size))
}

// viewBoxRect returns the root viewBox, defaulting to 0 0 24 24.
func viewBoxRect(root *etree.Element) (x, y, w, h float64) {
	x, y, w, h = 0, 0, 24, 24
	parts := strings.Fields(strings.ReplaceAll(root.SelectAttrValue("viewBox", ""), ",", " "))
	if len(parts) != 4 {
		return
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, 0, 24, 24
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], vals[3]
}

// recolor rewrites fill and stroke on visual elements to the given paint
// value. Animation elements are left untouched so SMIL attributes survive,
// fills of none/transparent/currentColor are preserved, and <style> blocks
// that set fills are removed because they would override the attributes.
func recolor(root *etree.Element, paint string) {
	removeFillStyles(root)
	recolorWalk(root, paint)
}

func recolorWalk(el *etree.Element, paint string) {
	if animationTags[el.Tag] {
		return
	}
	if visualTags[el.Tag] {
		fill := el.SelectAttrValue("fill", "")
		lower := strings.ToLower(fill)
		switch {
		case fill != "" && lower != "none" && lower != "transparent" && lower != "currentcolor":
			el.CreateAttr("fill", paint)
		case fill == "" && el.Tag != "g":
			el.CreateAttr("fill", paint)
		}
		if stroke := el.SelectAttrValue("stroke", ""); stroke != "" {
			lower := strings.ToLower(stroke)
			if lower != "none" && lower != "transparent" {
				el.CreateAttr("stroke", paint)
			}
		}
	}
	for _, child := range el.ChildElements() {
		recolorWalk(child, paint)
	}
}

func removeFillStyles(root *etree.Element) {
	var doomed []*etree.Element
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if child.Tag == "style" && strings.Contains(child.Text(), "fill") {
				doomed = append(doomed, child)
				continue
			}
			walk(child)
		}
	}
	walk(root)
	for _, el := range doomed {
		if p := el.Parent(); p != nil {
			p.RemoveChild(el)
		}
	}
}

// gradientCoords maps a direction to linearGradient endpoints.
func gradientCoords(dir Direction) (x1, y1, x2, y2 string) {
	switch dir {
	case DirectionVertical:
		return "0%", "0%", "0%", "100%"
	case DirectionDiagonal:
		return "0%", "0%", "100%", "100%"
	default:
		return "0%", "0%", "100%", "0%"
	}
}

// gradientDef builds a <linearGradient> element with two stops.
func gradientDef(id string, g *Gradient) *etree.Element {
	x1, y1, x2, y2 := gradientCoords(g.direction())
	lg := etree.NewElement("linearGradient")
	lg.CreateAttr("id", id)
	lg.CreateAttr("x1", x1)
	lg.CreateAttr("y1", y1)
	lg.CreateAttr("x2", x2)
	lg.CreateAttr("y2", y2)
	for _, stop := range []struct {
		offset, color string
	}{
		{"0%", g.From},
		{"100%", g.To},
	} {
		s := lg.CreateElement("stop")
		s.CreateAttr("offset", stop.offset)
		s.CreateAttr("stop-color", stop.color)
		s.CreateAttr("stop-opacity", "1")
	}
	return lg
}

// applyGradient injects a gradient definition and points all recolorable
// fills and strokes at it.
func applyGradient(root *etree.Element, g *Gradient) {
	defs := etree.NewElement("defs")
	defs.AddChild(gradientDef("iconGradient", g))
	root.InsertChildAt(0, defs)
	recolor(root, "url(#iconGradient)")
}

// wrapBackground rebuilds the document as a size x size canvas with a
// rounded background rect behind the icon, the icon centered and scaled to
// 70% of the canvas. An outline stroke shrinks the rect so the stroke stays
// inside the canvas.
func wrapBackground(doc *etree.Document, size int, req *Request) (*etree.Document, error) {
	root := doc.Root()
	vbX, vbY, vbW, vbH := viewBoxRect(root)

	out := etree.NewDocument()
	svg := out.CreateElement("svg")
	svg.CreateAttr("xmlns", svgNamespace)
	svg.CreateAttr("width", strconv.Itoa(size))
	svg.CreateAttr("height", strconv.Itoa(size))
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", size, size))

	bgFill := "none"
	switch {
	case req.BgGradient != nil:
		defs := svg.CreateElement("defs")
		defs.AddChild(gradientDef("bgGradient", req.BgGradient))
		bgFill = "url(#bgGradient)"
	case req.BgColor != "":
		bgFill = req.BgColor
	}

	// Stroke-safe geometry: SVG strokes straddle the edge, so the rect
	// shrinks by half the stroke width on each side.
	halfStroke := 0.0
	if req.OutlineWidth > 0 {
		halfStroke = float64(req.OutlineWidth) / 2
	}
	rectSize := float64(size) - float64(req.OutlineWidth)
	rectRadius := float64(req.BorderRadius) - halfStroke
	if rectRadius < 0 {
		rectRadius = 0
	}

	rect := svg.CreateElement("rect")
	rect.CreateAttr("x", formatFloat(halfStroke))
	rect.CreateAttr("y", formatFloat(halfStroke))
	rect.CreateAttr("width", formatFloat(rectSize))
	rect.CreateAttr("height", formatFloat(rectSize))
	rect.CreateAttr("rx", formatFloat(rectRadius))
	rect.CreateAttr("ry", formatFloat(rectRadius))
	rect.CreateAttr("fill", bgFill)
	if req.OutlineWidth > 0 && req.OutlineColor != "" {
		rect.CreateAttr("stroke", req.OutlineColor)
		rect.CreateAttr("stroke-width", strconv.Itoa(req.OutlineWidth))
	}

	maxDim := vbW
	if vbH > maxDim {
		maxDim = vbH
	}
	if maxDim <= 0 {
		maxDim = 24
	}
	scale := float64(size) / maxDim * 0.7

	group := svg.CreateElement("g")
	group.CreateAttr("transform", fmt.Sprintf(
		"translate(%s,%s) scale(%s) translate(%s,%s)",
		formatFloat(float64(size)/2),
		formatFloat(float64(size)/2),
		formatFloat(scale),
		formatFloat(-(vbX+vbW/2)),
		formatFloat(-(vbY+vbH/2)),
	))
	for _, child := range root.ChildElements() {
		group.AddChild(child.Copy())
	}
	return out, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
