package captcha

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint_RoundTrip(t *testing.T) {
	rolled := rollDecisions(6, 150, 40, 3, 50)

	fp, err := captureFingerprint(rolled)
	require.NoError(t, err)
	assert.NotEmpty(t, fp)

	replayed, err := fp.replay()
	require.NoError(t, err)
	assert.Equal(t, rolled, replayed)
}

func TestFingerprint_Replay_Malformed(t *testing.T) {
	_, err := Fingerprint("%%not-base64%%").replay()
	assert.ErrorIs(t, err, ErrBadFingerprint)

	// valid base64, garbage payload
	_, err = Fingerprint("bm90LWpzb24").replay()
	assert.ErrorIs(t, err, ErrBadFingerprint)
}

func TestFingerprint_Replay_BoundsGlyphParams(t *testing.T) {
	d := rollDecisions(3, 150, 40, 0, 0)
	d.Glyphs[0].Font = -2
	d.Glyphs[1].Font = 99
	d.Glyphs[2].Scale = 0

	fp, err := captureFingerprint(d)
	require.NoError(t, err)

	replayed, err := fp.replay()
	require.NoError(t, err)
	for _, g := range replayed.Glyphs {
		assert.GreaterOrEqual(t, g.Font, 0)
		assert.Less(t, g.Font, fontCount)
		assert.GreaterOrEqual(t, g.Scale, 0.5)
		assert.LessOrEqual(t, g.Scale, 1.5)
	}
}

func TestRollDecisions_Shape(t *testing.T) {
	d := rollDecisions(6, 150, 40, 5, 100)

	assert.Len(t, d.Glyphs, 6)
	assert.Len(t, d.Noise, 100)
	assert.Len(t, d.LinesBehind, 3) // even indexes of 5
	assert.Len(t, d.LinesFront, 2)

	for _, g := range d.Glyphs {
		assert.GreaterOrEqual(t, g.Font, 0)
		assert.Less(t, g.Font, fontCount)
		assert.InDelta(t, 1.0, g.Scale, 0.16)
	}
	for _, n := range d.Noise {
		assert.GreaterOrEqual(t, n.X, 0)
		assert.Less(t, n.X, 150)
		assert.GreaterOrEqual(t, n.Y, 0)
		assert.Less(t, n.Y, 40)
	}
}
