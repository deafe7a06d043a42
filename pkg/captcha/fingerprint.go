package captcha

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/rand"
)

// Fingerprint is the opaque replay token for one render: every random
// decision taken while drawing, serialized so the identical image can be
// redrawn later without storing pixels. It survives round trips through the
// session store and request parameters verbatim. A fingerprint is only
// meaningful together with the exact phrase it was captured for.
type Fingerprint string

var ErrBadFingerprint = errors.New("captcha: malformed fingerprint")

// lineDecision is one distortion line stroke.
type lineDecision struct {
	X1, Y1, X2, Y2 float64
	Color          [3]uint8
	Width          float64
}

// glyphDecision holds the per-character transform parameters.
type glyphDecision struct {
	Angle   float64 // rotation around the glyph anchor, radians
	Shear   float64 // horizontal shear factor
	OffsetY float64 // vertical jitter in pixels
	Scale   float64 // relative font scale
	Font    int     // index into the embedded font set
}

// noiseDecision is a single noise pixel.
type noiseDecision struct {
	X, Y int
}

// renderDecisions captures everything a render call would otherwise decide at
// random. Replaying the same decisions reproduces the same geometry.
type renderDecisions struct {
	Background  [3]uint8        `json:"bg"`
	Ink         [3]uint8        `json:"ink"`
	LinesBehind []lineDecision  `json:"lb"`
	LinesFront  []lineDecision  `json:"lf"`
	Glyphs      []glyphDecision `json:"g"`
	Noise       []noiseDecision `json:"n"`
}

// captureFingerprint encodes decisions into an opaque string token.
func captureFingerprint(d *renderDecisions) (Fingerprint, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return Fingerprint(base64.RawURLEncoding.EncodeToString(raw)), nil
}

// replay decodes the token back into render decisions.
func (f Fingerprint) replay() (*renderDecisions, error) {
	raw, err := base64.RawURLEncoding.DecodeString(string(f))
	if err != nil {
		return nil, ErrBadFingerprint
	}
	var d renderDecisions
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, ErrBadFingerprint
	}
	d.sanitize()
	return &d, nil
}

// sanitize bounds decoded glyph parameters. The token round-trips through
// external session backends, so values that decode but fall outside the
// ranges rollDecisions produces must not reach the renderer.
func (d *renderDecisions) sanitize() {
	for i := range d.Glyphs {
		g := &d.Glyphs[i]
		if g.Font < 0 || g.Font >= fontCount {
			g.Font = 0
		}
		if g.Scale < 0.5 || g.Scale > 1.5 {
			g.Scale = 1
		}
	}
}

// rollDecisions generates fresh random decisions for a phrase of glyphCount
// characters on a w×h canvas.
func rollDecisions(glyphCount, w, h, lineCount, noiseCount int) *renderDecisions {
	d := &renderDecisions{
		Background: [3]uint8{randByte(200, 255), randByte(200, 255), randByte(200, 255)},
		Ink:        [3]uint8{randByte(0, 100), randByte(0, 100), randByte(0, 100)},
	}

	for i := 0; i < lineCount; i++ {
		line := lineDecision{
			X1:    rand.Float64() * float64(w),
			Y1:    rand.Float64() * float64(h),
			X2:    rand.Float64() * float64(w),
			Y2:    rand.Float64() * float64(h),
			Color: [3]uint8{randByte(60, 200), randByte(60, 200), randByte(60, 200)},
			Width: 1 + rand.Float64()*1.5,
		}
		if i%2 == 0 {
			d.LinesBehind = append(d.LinesBehind, line)
		} else {
			d.LinesFront = append(d.LinesFront, line)
		}
	}

	for i := 0; i < glyphCount; i++ {
		d.Glyphs = append(d.Glyphs, glyphDecision{
			Angle:   (rand.Float64()*2 - 1) * 0.35,
			Shear:   (rand.Float64()*2 - 1) * 0.25,
			OffsetY: (rand.Float64()*2 - 1) * float64(h) / 8,
			Scale:   0.85 + rand.Float64()*0.3,
			Font:    rand.Intn(fontCount),
		})
	}

	for i := 0; i < noiseCount; i++ {
		d.Noise = append(d.Noise, noiseDecision{
			X: rand.Intn(w),
			Y: rand.Intn(h),
		})
	}

	return d
}

func randByte(lo, hi int) uint8 {
	return uint8(lo + rand.Intn(hi-lo+1))
}
