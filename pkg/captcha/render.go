package captcha

import (
	"bytes"
	"errors"
	"image/jpeg"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

var ErrInvalidDimensions = errors.New("captcha: invalid image dimensions")

// fonts are the embedded typefaces a glyph decision picks from.
var fonts = mustParseFonts(goregular.TTF, gobold.TTF, goitalic.TTF)

const fontCount = 3

func mustParseFonts(data ...[]byte) []*truetype.Font {
	parsed := make([]*truetype.Font, 0, len(data))
	for _, ttf := range data {
		f, err := truetype.Parse(ttf)
		if err != nil {
			panic(err)
		}
		parsed = append(parsed, f)
	}
	return parsed
}

// Renderer draws a phrase with random distortions into a JPEG image.
// The zero value is not usable; use NewRenderer.
type Renderer struct {
	// JPEGQuality is passed to the encoder, 1..100.
	JPEGQuality int
}

func NewRenderer(jpegQuality int) *Renderer {
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = 90
	}
	return &Renderer{JPEGQuality: jpegQuality}
}

// Render draws phrase onto a w×h canvas and encodes it as JPEG. When fp is
// empty, fresh random distortion decisions are taken and captured into the
// returned Fingerprint; when fp is non-empty its decisions are replayed so the
// output matches the earlier image for the same phrase and dimensions. The
// renderer never touches session state.
func (r *Renderer) Render(phrase string, w, h int, fp Fingerprint) ([]byte, Fingerprint, error) {
	if w <= 0 || h <= 0 {
		return nil, "", ErrInvalidDimensions
	}

	runes := []rune(phrase)

	var d *renderDecisions
	if fp == "" {
		lineCount := max(2, w*h/2000)
		noiseCount := w * h / 30
		d = rollDecisions(len(runes), w, h, lineCount, noiseCount)
		captured, err := captureFingerprint(d)
		if err != nil {
			return nil, "", err
		}
		fp = captured
	} else {
		replayed, err := fp.replay()
		if err != nil {
			return nil, "", err
		}
		d = replayed
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB255(int(d.Background[0]), int(d.Background[1]), int(d.Background[2]))
	dc.Clear()

	drawLines(dc, d.LinesBehind)
	drawGlyphs(dc, d, runes, w, h)
	drawLines(dc, d.LinesFront)

	dc.SetRGB255(int(d.Ink[0]), int(d.Ink[1]), int(d.Ink[2]))
	for _, n := range d.Noise {
		dc.SetPixel(n.X, n.Y)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dc.Image(), &jpeg.Options{Quality: r.JPEGQuality}); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fp, nil
}

func drawLines(dc *gg.Context, lines []lineDecision) {
	for _, l := range lines {
		dc.SetRGB255(int(l.Color[0]), int(l.Color[1]), int(l.Color[2]))
		dc.SetLineWidth(l.Width)
		dc.DrawLine(l.X1, l.Y1, l.X2, l.Y2)
		dc.Stroke()
	}
}

func drawGlyphs(dc *gg.Context, d *renderDecisions, runes []rune, w, h int) {
	if len(runes) == 0 {
		return
	}

	dc.SetRGB255(int(d.Ink[0]), int(d.Ink[1]), int(d.Ink[2]))
	baseSize := float64(h) * 0.62
	step := float64(w) / float64(len(runes)+1)

	for i, ch := range runes {
		var g glyphDecision
		if i < len(d.Glyphs) {
			g = d.Glyphs[i]
		} else {
			g.Scale = 1
		}

		face := truetype.NewFace(fonts[g.Font%fontCount], &truetype.Options{
			Size: baseSize * g.Scale,
		})
		dc.SetFontFace(face)

		cx := step * float64(i+1)
		cy := float64(h)/2 + g.OffsetY

		dc.Push()
		dc.RotateAbout(g.Angle, cx, cy)
		dc.ShearAbout(g.Shear, 0, cx, cy)
		dc.DrawStringAnchored(string(ch), cx, cy, 0.5, 0.5)
		dc.Pop()
	}
}
