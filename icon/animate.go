package icon

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
)

// Animation preset names.
const (
	AnimationSpin  = "spin"
	AnimationPulse = "pulse"
	AnimationFlipH = "flip-h"
	AnimationFlipV = "flip-v"
)

var animationDefaults = map[string]time.Duration{
	AnimationSpin:  4 * time.Second,
	AnimationPulse: 1500 * time.Millisecond,
	AnimationFlipH: time.Second,
	AnimationFlipV: time.Second,
}

type animationSpec struct {
	kind string
	dur  time.Duration
}

// parseAnimation parses "preset" or "preset:duration" where duration is a
// Go-style value ("500ms", "2s") or a bare number of seconds.
func parseAnimation(s string) (*animationSpec, error) {
	kind := strings.ToLower(strings.TrimSpace(s))
	durPart := ""
	if i := strings.IndexByte(kind, ':'); i >= 0 {
		kind, durPart = kind[:i], kind[i+1:]
	}
	def, ok := animationDefaults[kind]
	if !ok {
		return nil, fmt.Errorf("unknown animation preset %q (expected spin, pulse, flip-h, or flip-v)", kind)
	}
	dur := def
	if durPart != "" {
		d, err := parseDurationValue(durPart)
		if err != nil {
			return nil, fmt.Errorf("invalid animation duration %q: %w", durPart, err)
		}
		dur = d
	}
	return &animationSpec{kind: kind, dur: dur}, nil
}

func parseDurationValue(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	// Bare numbers are seconds.
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		s += "s"
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive")
	}
	return d, nil
}

func durAttr(d time.Duration) string {
	return formatFloat(d.Seconds()) + "s"
}

// applyAnimation injects a SMIL animateTransform for the preset around the
// icon content. Spin rotates the target group about the viewBox center;
// pulse and the flips scale an inner group about the center via
// transform-origin, the flips with long holds between quick inversions.
func applyAnimation(doc *etree.Document, spec *animationSpec) {
	root := doc.Root()
	vbX, vbY, vbW, vbH := viewBoxRect(root)
	cx := vbX + vbW/2
	cy := vbY + vbH/2

	target := animationTarget(root)
	if target == nil {
		return
	}

	switch spec.kind {
	case AnimationSpin:
		anim := target.CreateElement("animateTransform")
		anim.CreateAttr("attributeName", "transform")
		anim.CreateAttr("attributeType", "XML")
		anim.CreateAttr("type", "rotate")
		anim.CreateAttr("from", fmt.Sprintf("0 %s %s", formatFloat(cx), formatFloat(cy)))
		anim.CreateAttr("to", fmt.Sprintf("360 %s %s", formatFloat(cx), formatFloat(cy)))
		anim.CreateAttr("dur", durAttr(spec.dur))
		anim.CreateAttr("repeatCount", "indefinite")
		anim.CreateAttr("calcMode", "linear")

	case AnimationPulse:
		group := centeredScaleGroup(target, cx, cy)
		anim := group.CreateElement("animateTransform")
		anim.CreateAttr("attributeName", "transform")
		anim.CreateAttr("attributeType", "XML")
		anim.CreateAttr("type", "scale")
		anim.CreateAttr("values", "1 1;0.1 0.1;1 1")
		anim.CreateAttr("keyTimes", "0;0.5;1")
		anim.CreateAttr("dur", durAttr(spec.dur))
		anim.CreateAttr("repeatCount", "indefinite")
		anim.CreateAttr("calcMode", "spline")
		anim.CreateAttr("keySplines", "0.42 0 0.58 1;0.42 0 0.58 1")

	case AnimationFlipH, AnimationFlipV:
		// Each cycle holds for four flip durations, flips, holds again,
		// and flips back.
		flip := spec.dur.Seconds()
		stay := flip * 4
		total := 2 * (stay + flip)
		t1 := stay / total
		t2 := (stay + flip*0.5) / total
		t3 := (stay + flip) / total
		t4 := (stay + flip + stay) / total
		t5 := (stay + flip + stay + flip*0.5) / total

		values := "1 1;1 1;-1 1;1 1;1 1;-1 1;1 1"
		if spec.kind == AnimationFlipV {
			values = "1 1;1 1;1 -1;1 1;1 1;1 -1;1 1"
		}

		group := centeredScaleGroup(target, cx, cy)
		anim := group.CreateElement("animateTransform")
		anim.CreateAttr("attributeName", "transform")
		anim.CreateAttr("attributeType", "XML")
		anim.CreateAttr("type", "scale")
		anim.CreateAttr("values", values)
		anim.CreateAttr("keyTimes", fmt.Sprintf("0;%.6f;%.6f;%.6f;%.6f;%.6f;1", t1, t2, t3, t4, t5))
		anim.CreateAttr("dur", fmt.Sprintf("%.3fs", total))
		anim.CreateAttr("repeatCount", "indefinite")
		anim.CreateAttr("calcMode", "spline")
		anim.CreateAttr("keySplines", strings.TrimSuffix(strings.Repeat("0.42 0 0.58 1;", 6), ";"))
	}
}

// animationTarget returns a <g> wrapping the root's visual children,
// creating one when the content is not already grouped. Returns nil when
// the root has no visual children.
func animationTarget(root *etree.Element) *etree.Element {
	var first *etree.Element
	for _, child := range root.ChildElements() {
		if child.Tag == "defs" {
			continue
		}
		if child.Tag == "g" {
			return child
		}
		if first == nil {
			first = child
		}
	}
	if first == nil {
		return nil
	}
	group := etree.NewElement("g")
	for _, child := range root.ChildElements() {
		if child.Tag == "defs" {
			continue
		}
		root.RemoveChild(child)
		group.AddChild(child)
	}
	root.AddChild(group)
	return group
}

// centeredScaleGroup moves target's children into a fresh inner group whose
// transform origin is the viewBox center, so scale animations stay centered.
func centeredScaleGroup(target *etree.Element, cx, cy float64) *etree.Element {
	group := etree.NewElement("g")
	for _, child := range target.ChildElements() {
		target.RemoveChild(child)
		group.AddChild(child)
	}
	group.CreateAttr("transform-box", "view-box")
	group.CreateAttr("transform-origin", fmt.Sprintf("%spx %spx", formatFloat(cx), formatFloat(cy)))
	target.AddChild(group)
	return group
}
