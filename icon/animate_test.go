package icon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnimation(t *testing.T) {
	spec, err := parseAnimation("spin")
	require.NoError(t, err)
	assert.Equal(t, AnimationSpin, spec.kind)
	assert.Equal(t, 4*time.Second, spec.dur)

	spec, err = parseAnimation("pulse:500ms")
	require.NoError(t, err)
	assert.Equal(t, AnimationPulse, spec.kind)
	assert.Equal(t, 500*time.Millisecond, spec.dur)

	// Bare numbers are seconds.
	spec, err = parseAnimation("flip-h:2")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, spec.dur)

	spec, err = parseAnimation("FLIP-V")
	require.NoError(t, err)
	assert.Equal(t, AnimationFlipV, spec.kind)
	assert.Equal(t, time.Second, spec.dur)

	_, err = parseAnimation("wobble")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wobble")

	_, err = parseAnimation("spin:-1s")
	require.Error(t, err)

	_, err = parseAnimation("spin:fast")
	require.Error(t, err)
}

func TestApplyAnimationSpin(t *testing.T) {
	doc := mustParse(t, []byte(sampleSVG))
	applyAnimation(doc, &animationSpec{kind: AnimationSpin, dur: 2 * time.Second})

	// Content wrapped in a group carrying the animateTransform.
	group := doc.Root().FindElement("./g")
	require.NotNil(t, group)
	assert.NotNil(t, group.FindElement("./path"))

	anim := group.FindElement("./animateTransform")
	require.NotNil(t, anim)
	assert.Equal(t, "rotate", anim.SelectAttrValue("type", ""))
	assert.Equal(t, "0 12 12", anim.SelectAttrValue("from", ""))
	assert.Equal(t, "360 12 12", anim.SelectAttrValue("to", ""))
	assert.Equal(t, "2s", anim.SelectAttrValue("dur", ""))
	assert.Equal(t, "indefinite", anim.SelectAttrValue("repeatCount", ""))
}

func TestApplyAnimationPulse(t *testing.T) {
	doc := mustParse(t, []byte(sampleSVG))
	applyAnimation(doc, &animationSpec{kind: AnimationPulse, dur: 1500 * time.Millisecond})

	inner := doc.Root().FindElement("./g/g")
	require.NotNil(t, inner)
	assert.Equal(t, "view-box", inner.SelectAttrValue("transform-box", ""))
	assert.Equal(t, "12px 12px", inner.SelectAttrValue("transform-origin", ""))

	anim := inner.FindElement("./animateTransform")
	require.NotNil(t, anim)
	assert.Equal(t, "scale", anim.SelectAttrValue("type", ""))
	assert.Equal(t, "1 1;0.1 0.1;1 1", anim.SelectAttrValue("values", ""))
	assert.Equal(t, "1.5s", anim.SelectAttrValue("dur", ""))
}

func TestApplyAnimationFlip(t *testing.T) {
	doc := mustParse(t, []byte(sampleSVG))
	applyAnimation(doc, &animationSpec{kind: AnimationFlipH, dur: time.Second})

	anim := doc.Root().FindElement("./g/g/animateTransform")
	require.NotNil(t, anim)
	assert.Equal(t, "1 1;1 1;-1 1;1 1;1 1;-1 1;1 1", anim.SelectAttrValue("values", ""))
	// Cycle is ten flip durations: two 4x holds plus two flips.
	assert.Equal(t, "10.000s", anim.SelectAttrValue("dur", ""))

	keyTimes := anim.SelectAttrValue("keyTimes", "")
	assert.Contains(t, keyTimes, "0;0.400000;")
	assert.Contains(t, keyTimes, ";1")

	doc = mustParse(t, []byte(sampleSVG))
	applyAnimation(doc, &animationSpec{kind: AnimationFlipV, dur: time.Second})
	anim = doc.Root().FindElement("./g/g/animateTransform")
	require.NotNil(t, anim)
	assert.Equal(t, "1 1;1 1;1 -1;1 1;1 1;1 -1;1 1", anim.SelectAttrValue("values", ""))
}

func TestApplyAnimationReusesExistingGroup(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><defs/><g id="icon"><path d="M0 0"/></g></svg>`
	doc := mustParse(t, []byte(svg))
	applyAnimation(doc, &animationSpec{kind: AnimationSpin, dur: time.Second})

	groups := doc.Root().FindElements("./g")
	require.Len(t, groups, 1)
	assert.Equal(t, "icon", groups[0].SelectAttrValue("id", ""))
	assert.NotNil(t, groups[0].FindElement("./animateTransform"))
}

func TestApplyAnimationNoContent(t *testing.T) {
	doc := mustParse(t, []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"></svg>`))
	applyAnimation(doc, &animationSpec{kind: AnimationSpin, dur: time.Second})
	assert.Nil(t, doc.Root().FindElement("./animateTransform"))
}

func TestFlipScaleAt(t *testing.T) {
	assert.Equal(t, 1.0, flipScaleAt(0))
	assert.Equal(t, 1.0, flipScaleAt(0.2))
	// Midpoints of the two sweeps hit full inversion.
	assert.InDelta(t, -1.0, flipScaleAt(0.45), 0.01)
	assert.Equal(t, 1.0, flipScaleAt(0.7))
	assert.InDelta(t, -1.0, flipScaleAt(0.95), 0.01)
}
