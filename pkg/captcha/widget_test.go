package captcha

import (
	"strings"
	"testing"

	"github.com/code-100-precent/LingCaptcha/pkg/captcha/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidget_Render(t *testing.T) {
	m := newTestManager(Options{})
	sess, _, _ := newTestSession()

	w := NewWidget("", m, sess)
	vm := w.Render("/captcha")

	assert.Equal(t, "captcha_element", vm.Name)
	assert.Equal(t, "captcha-captcha_element", vm.ID)
	assert.True(t, strings.HasPrefix(vm.ImageURL, "/captcha?rand="))
	assert.True(t, vm.Required)
	assert.False(t, vm.WithAudio)
	assert.Empty(t, vm.AudioURL)
	assert.False(t, vm.Error)

	// cache buster changes per render
	vm2 := w.Render("/captcha")
	assert.NotEqual(t, vm.ImageURL, vm2.ImageURL)
}

func TestWidget_Render_WithAudio(t *testing.T) {
	idx := audio.Index{}
	idx.Add(audio.ClipKey{Char: "a"}, audio.ClipSource{Name: "a.mp3", Data: []byte("AAA")})
	m := newTestManager(Options{}, &indexRepo{idx: idx})
	sess, _, _ := newTestSession()

	vm := NewWidget("signup_captcha", m, sess).Render("/captcha")

	assert.Equal(t, "signup_captcha", vm.Name)
	assert.True(t, vm.WithAudio)
	assert.Contains(t, vm.AudioURL, "audio=1")
}

func TestWidget_Validate(t *testing.T) {
	m := newTestManager(Options{KeepPhraseOnSuccess: true})
	sess, _, clock := newTestSession()
	require.NoError(t, sess.Store(Challenge{Phrase: "abc123", IssuedAt: clock.Now()}))

	w := NewWidget("", m, sess)

	res := w.Validate("abc123")
	assert.True(t, res.Accepted)
	assert.Empty(t, res.Message)

	// accepted value is retained for redisplay
	vm := w.Render("/captcha")
	assert.Equal(t, "abc123", vm.Value)
	assert.False(t, vm.Error)
}

func TestWidget_Validate_Rejected(t *testing.T) {
	m := newTestManager(Options{})
	sess, _, clock := newTestSession()
	require.NoError(t, sess.Store(Challenge{Phrase: "abc123", IssuedAt: clock.Now()}))

	w := NewWidget("", m, sess)

	res := w.Validate("wrong1")
	assert.False(t, res.Accepted)
	assert.Equal(t, "incorrect", res.Message)

	vm := w.Render("/captcha")
	assert.Empty(t, vm.Value)
	assert.True(t, vm.Error)
	assert.Equal(t, "incorrect", vm.ErrorMessage)
}
