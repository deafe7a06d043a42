package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	require.NoError(t, Load())
	cfg := GlobalConfig

	assert.Equal(t, ":7073", cfg.Server.Addr)
	assert.Equal(t, "development", cfg.Server.Mode)
	assert.Equal(t, "/admin", cfg.Server.AdminPrefix)
	assert.Equal(t, "local", cfg.Cache.Type)

	assert.Equal(t, 150, cfg.Captcha.Width)
	assert.Equal(t, 40, cfg.Captcha.Height)
	assert.Equal(t, 6, cfg.Captcha.PhraseLength)
	assert.Equal(t, 10*time.Minute, cfg.Captcha.TTL)
	assert.True(t, cfg.Captcha.ConsumeOnSuccess)
	assert.Equal(t, 90, cfg.Captcha.JPEGQuality)
	assert.Equal(t, "en", cfg.Captcha.DefaultLocale)

	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CAPTCHA_WIDTH", "200")
	t.Setenv("CAPTCHA_TTL", "5m")
	t.Setenv("CAPTCHA_CONSUME_ON_SUCCESS", "false")
	t.Setenv("CAPTCHA_DEFAULT_LOCALE", "fr")
	t.Setenv("ADDR", ":9999")

	require.NoError(t, Load())
	cfg := GlobalConfig

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, 200, cfg.Captcha.Width)
	assert.Equal(t, 5*time.Minute, cfg.Captcha.TTL)
	assert.False(t, cfg.Captcha.ConsumeOnSuccess)
	assert.Equal(t, "fr", cfg.Captcha.DefaultLocale)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("CAPTCHA_TTL", "not-a-duration")

	require.NoError(t, Load())
	assert.Equal(t, 10*time.Minute, GlobalConfig.Captcha.TTL)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Load())

	bad := *GlobalConfig
	bad.Database.DSN = ""
	assert.Error(t, bad.Validate())

	bad = *GlobalConfig
	bad.Server.Addr = ""
	assert.Error(t, bad.Validate())

	bad = *GlobalConfig
	bad.Captcha.Width = 0
	assert.Error(t, bad.Validate())

	bad = *GlobalConfig
	bad.Captcha.PhraseLength = 0
	assert.Error(t, bad.Validate())
}
