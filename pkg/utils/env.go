package utils

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv loads .env files for the given environment.
// ".env.<env>" overrides the base ".env" when APP_ENV is set.
func LoadEnv(env string) error {
	if env != "" {
		if err := godotenv.Load(".env." + env); err == nil {
			_ = godotenv.Load(".env")
			return nil
		}
	}
	return godotenv.Load(".env")
}

// GetEnv gets an environment variable value
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetIntEnv gets an integer environment variable value, 0 if unset or invalid
func GetIntEnv(key string) int64 {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// GetBoolEnv gets a boolean environment variable value
func GetBoolEnv(key string) bool {
	v := os.Getenv(key)
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
