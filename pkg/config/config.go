package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/code-100-precent/LingCaptcha/pkg/cache"
	"github.com/code-100-precent/LingCaptcha/pkg/logger"
	"github.com/code-100-precent/LingCaptcha/pkg/utils"
)

// Config main configuration structure
type Config struct {
	Server   ServerConfig     `mapstructure:"server"`
	Database DatabaseConfig   `mapstructure:"database"`
	Log      logger.LogConfig `mapstructure:"log"`
	Cache    cache.Config     `mapstructure:"cache"`
	Auth     AuthConfig       `mapstructure:"auth"`
	Captcha  CaptchaConfig    `mapstructure:"captcha"`
}

// ServerConfig server configuration
type ServerConfig struct {
	Name        string `env:"SERVER_NAME"`
	Addr        string `env:"ADDR"`
	Mode        string `env:"MODE"`
	APIPrefix   string `env:"API_PREFIX"`
	AdminPrefix string `env:"ADMIN_PREFIX"`
}

// DatabaseConfig database configuration
type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER"`
	DSN    string `env:"DSN"`
}

// AuthConfig session configuration
type AuthConfig struct {
	SessionSecret string `env:"SESSION_SECRET"`
	SessionMaxAge int    `env:"SESSION_MAX_AGE"`
}

// CaptchaConfig captcha challenge configuration
type CaptchaConfig struct {
	Width            int           `env:"CAPTCHA_WIDTH"`
	Height           int           `env:"CAPTCHA_HEIGHT"`
	PhraseLength     int           `env:"CAPTCHA_PHRASE_LENGTH"`
	Alphabet         string        `env:"CAPTCHA_ALPHABET"`
	TTL              time.Duration `env:"CAPTCHA_TTL"`
	ConsumeOnSuccess bool          `env:"CAPTCHA_CONSUME_ON_SUCCESS"`
	JPEGQuality      int           `env:"CAPTCHA_JPEG_QUALITY"`
	DefaultLocale    string        `env:"CAPTCHA_DEFAULT_LOCALE"`
	AudioFilesDir    string        `env:"CAPTCHA_AUDIO_FILES_DIRECTORY"`
	AudioUploadDir   string        `env:"CAPTCHA_AUDIO_UPLOAD_DIR"`
}

var GlobalConfig *Config

func Load() error {
	// 1. Load .env file based on environment (don't error if it doesn't exist, use default values)
	env := os.Getenv("APP_ENV")
	err := utils.LoadEnv(env)
	if err != nil {
		// Only log when .env file doesn't exist, don't affect startup
		log.Printf("Note: .env file not found or failed to load: %v (using default values)", err)
	}

	// 2. Load global configuration
	GlobalConfig = &Config{
		Server: ServerConfig{
			Name:        getStringOrDefault("SERVER_NAME", "LingCaptcha"),
			Addr:        getStringOrDefault("ADDR", ":7073"),
			Mode:        getStringOrDefault("MODE", "development"),
			APIPrefix:   getStringOrDefault("API_PREFIX", "/api"),
			AdminPrefix: getStringOrDefault("ADMIN_PREFIX", "/admin"),
		},
		Database: DatabaseConfig{
			Driver: getStringOrDefault("DB_DRIVER", "sqlite"),
			DSN:    getStringOrDefault("DSN", "./lingcaptcha.db"),
		},
		Log: logger.LogConfig{
			Level:      getStringOrDefault("LOG_LEVEL", "info"),
			Filename:   getStringOrDefault("LOG_FILENAME", "./logs/app.log"),
			MaxSize:    getIntOrDefault("LOG_MAX_SIZE", 100),
			MaxAge:     getIntOrDefault("LOG_MAX_AGE", 30),
			MaxBackups: getIntOrDefault("LOG_MAX_BACKUPS", 5),
			Daily:      getBoolOrDefault("LOG_DAILY", true),
		},
		Cache: loadCacheConfig(),
		Auth: AuthConfig{
			SessionSecret: getStringOrDefault("SESSION_SECRET", generateDefaultSessionSecret()),
			SessionMaxAge: getIntOrDefault("SESSION_MAX_AGE", 86400),
		},
		Captcha: CaptchaConfig{
			Width:            getIntOrDefault("CAPTCHA_WIDTH", 150),
			Height:           getIntOrDefault("CAPTCHA_HEIGHT", 40),
			PhraseLength:     getIntOrDefault("CAPTCHA_PHRASE_LENGTH", 6),
			Alphabet:         getStringOrDefault("CAPTCHA_ALPHABET", ""),
			TTL:              parseDuration(getStringOrDefault("CAPTCHA_TTL", "10m"), 10*time.Minute),
			ConsumeOnSuccess: getBoolOrDefault("CAPTCHA_CONSUME_ON_SUCCESS", true),
			JPEGQuality:      getIntOrDefault("CAPTCHA_JPEG_QUALITY", 90),
			DefaultLocale:    getStringOrDefault("CAPTCHA_DEFAULT_LOCALE", "en"),
			AudioFilesDir:    getStringOrDefault("CAPTCHA_AUDIO_FILES_DIRECTORY", ""),
			AudioUploadDir:   getStringOrDefault("CAPTCHA_AUDIO_UPLOAD_DIR", "./audio_files"),
		},
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("database DSN is required")
	}

	if c.Server.Addr == "" {
		return errors.New("server address is required")
	}

	if c.Captcha.Width <= 0 || c.Captcha.Height <= 0 {
		return errors.New("captcha dimensions must be positive")
	}

	if c.Captcha.PhraseLength < 1 {
		return errors.New("captcha phrase length must be at least 1")
	}

	return nil
}

// getStringOrDefault gets environment variable value, returns default if empty
func getStringOrDefault(key, defaultValue string) string {
	value := utils.GetEnv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getBoolOrDefault gets boolean environment variable value, returns default if empty
func getBoolOrDefault(key string, defaultValue bool) bool {
	value := utils.GetEnv(key)
	if value == "" {
		return defaultValue
	}
	return utils.GetBoolEnv(key)
}

// getIntOrDefault gets integer environment variable value, returns default if empty
func getIntOrDefault(key string, defaultValue int) int {
	value := utils.GetIntEnv(key)
	if value == 0 {
		return defaultValue
	}
	return int(value)
}

// parseDuration parses duration string with default fallback
func parseDuration(s string, defaultVal time.Duration) time.Duration {
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultVal
	}
	return d
}

// generateDefaultSessionSecret generates default session secret (for development only)
func generateDefaultSessionSecret() string {
	if secret := utils.GetEnv("SESSION_SECRET"); secret != "" {
		return secret
	}
	return "default-secret-key-change-in-production-" + utils.RandText(16)
}

// loadCacheConfig loads cache configuration with all default values
func loadCacheConfig() cache.Config {
	cacheType := utils.GetEnv("CACHE_TYPE")
	if cacheType == "" {
		cacheType = "local"
	}
	redisAddr := utils.GetEnv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPoolSize := int(utils.GetIntEnv("REDIS_POOL_SIZE"))
	if redisPoolSize == 0 {
		redisPoolSize = 10
	}
	redisMinIdleConns := int(utils.GetIntEnv("REDIS_MIN_IDLE_CONNS"))
	if redisMinIdleConns == 0 {
		redisMinIdleConns = 5
	}
	localMaxSize := int(utils.GetIntEnv("LOCAL_CACHE_MAX_SIZE"))
	if localMaxSize == 0 {
		localMaxSize = 1000
	}
	return cache.Config{
		Type: cacheType,
		Redis: cache.RedisConfig{
			Addr:         redisAddr,
			Password:     utils.GetEnv("REDIS_PASSWORD"),
			DB:           int(utils.GetIntEnv("REDIS_DB")),
			PoolSize:     redisPoolSize,
			MinIdleConns: redisMinIdleConns,
			DialTimeout:  parseDuration(utils.GetEnv("REDIS_DIAL_TIMEOUT"), 5*time.Second),
			ReadTimeout:  parseDuration(utils.GetEnv("REDIS_READ_TIMEOUT"), 3*time.Second),
			WriteTimeout: parseDuration(utils.GetEnv("REDIS_WRITE_TIMEOUT"), 3*time.Second),
			IdleTimeout:  parseDuration(utils.GetEnv("REDIS_IDLE_TIMEOUT"), 5*time.Minute),
		},
		Local: cache.LocalConfig{
			MaxSize:           localMaxSize,
			DefaultExpiration: parseDuration(utils.GetEnv("LOCAL_CACHE_DEFAULT_EXPIRATION"), 5*time.Minute),
			CleanupInterval:   parseDuration(utils.GetEnv("LOCAL_CACHE_CLEANUP_INTERVAL"), 10*time.Minute),
		},
	}
}
