// config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

const envPrefix = "FOODGRAM_"

// ErrMissingJWTSecret is returned when neither the YAML file nor
// FOODGRAM_JWT_SECRET sets a token signing key.
var ErrMissingJWTSecret = errors.New("config: jwt_secret must be set")

// ReadConfig reads the configuration from the YAML file, then applies
// FOODGRAM_* environment overrides (a .env file in the working directory is
// loaded first when present) and defaults.
func ReadConfig(filePath string) (*entity.Config, error) {
	var config entity.Config

	// Read the YAML file content
	data, err := os.ReadFile(filePath)
	if err != nil {
		logger.Error("unable to read file", zap.String("path", filePath), zap.Error(err))
		return nil, err
	}

	// Unmarshal the YAML data into the Config struct
	if err := yaml.Unmarshal(data, &config); err != nil {
		logger.Error("unable to unmarshal YAML", zap.Error(err))
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("unable to load .env", zap.Error(err))
	}
	applyEnv(&config)
	applyDefaults(&config)

	if strings.TrimSpace(config.JWTSecret) == "" {
		logger.Error("jwt secret is not configured")
		return nil, ErrMissingJWTSecret
	}
	return &config, nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn("ignoring non-integer environment value", zap.String("key", envPrefix+key))
		return
	}
	*dst = n
}

func applyEnv(c *entity.Config) {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.BaseURL, "BASE_URL")
	if v, ok := lookup("ALLOWED_ORIGINS"); ok {
		c.Server.AllowedOrigins = strings.Split(v, ",")
	}

	setString(&c.PostgresConfig.Driver, "DB_DRIVER")
	setString(&c.PostgresConfig.Host, "DB_HOST")
	setString(&c.PostgresConfig.User, "DB_USER")
	setString(&c.PostgresConfig.Password, "DB_PASSWORD")
	setString(&c.PostgresConfig.DBName, "DB_NAME")
	setString(&c.PostgresConfig.Port, "DB_PORT")
	setString(&c.PostgresConfig.SSLMode, "DB_SSLMODE")
	setString(&c.PostgresConfig.Path, "DB_PATH")

	setString(&c.JWTSecret, "JWT_SECRET")
	if v, ok := lookup("TOKEN_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.TokenTTL = d
		} else {
			logger.Warn("ignoring invalid token ttl", zap.String("value", v))
		}
	}

	setString(&c.Media.Backend, "MEDIA_BACKEND")
	setString(&c.Media.Root, "MEDIA_ROOT")
	setString(&c.Media.URLPrefix, "MEDIA_URL_PREFIX")
	setString(&c.Media.S3.Bucket, "S3_BUCKET")
	setString(&c.Media.S3.Region, "S3_REGION")
	setString(&c.Media.S3.PublicURL, "S3_PUBLIC_URL")

	setInt(&c.Limits.PageSize, "PAGE_SIZE")
	setInt(&c.Limits.MaxPageSize, "MAX_PAGE_SIZE")
}

func applyDefaults(c *entity.Config) {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:" + c.Server.Port
	}
	c.Server.BaseURL = strings.TrimRight(c.Server.BaseURL, "/")
	if c.TokenTTL <= 0 {
		c.TokenTTL = 24 * time.Hour
	}
	if c.Media.Backend == "" {
		c.Media.Backend = "local"
	}
	if c.Media.Root == "" {
		c.Media.Root = "media"
	}
	if c.Media.URLPrefix == "" {
		c.Media.URLPrefix = "/media"
	}
	if c.Limits.MinCookingTime < 1 {
		c.Limits.MinCookingTime = 1
	}
	if c.Limits.MinIngredientAmount < 1 {
		c.Limits.MinIngredientAmount = 1
	}
	if c.Limits.PageSize <= 0 {
		c.Limits.PageSize = 6
	}
	if c.Limits.MaxPageSize <= 0 {
		c.Limits.MaxPageSize = 100
	}
}
