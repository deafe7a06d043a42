package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("LINGCAPTCHA_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("LINGCAPTCHA_TEST_KEY"))
	assert.Equal(t, "", GetEnv("LINGCAPTCHA_TEST_MISSING"))
}

func TestGetIntEnv(t *testing.T) {
	t.Setenv("LINGCAPTCHA_TEST_INT", "42")
	assert.Equal(t, int64(42), GetIntEnv("LINGCAPTCHA_TEST_INT"))

	t.Setenv("LINGCAPTCHA_TEST_INT", "not-a-number")
	assert.Equal(t, int64(0), GetIntEnv("LINGCAPTCHA_TEST_INT"))

	assert.Equal(t, int64(0), GetIntEnv("LINGCAPTCHA_TEST_MISSING"))
}

func TestGetBoolEnv(t *testing.T) {
	t.Setenv("LINGCAPTCHA_TEST_BOOL", "true")
	assert.True(t, GetBoolEnv("LINGCAPTCHA_TEST_BOOL"))

	t.Setenv("LINGCAPTCHA_TEST_BOOL", "0")
	assert.False(t, GetBoolEnv("LINGCAPTCHA_TEST_BOOL"))

	assert.False(t, GetBoolEnv("LINGCAPTCHA_TEST_MISSING"))
}

func TestRandText(t *testing.T) {
	s := RandText(12)
	assert.Len(t, s, 12)
	for _, ch := range s {
		assert.True(t, ch >= 'a' && ch <= 'z')
	}
}

func TestRandString(t *testing.T) {
	s := RandString(16)
	assert.Len(t, s, 16)
	assert.NotEqual(t, s, RandString(16))
}
