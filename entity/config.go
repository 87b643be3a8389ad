package entity

import "time"

type Config struct {
	Server         ServerConfig   `yaml:"server"`
	PostgresConfig PostgresConfig `yaml:"database"`
	JWTSecret      string         `yaml:"jwt_secret"`
	TokenTTL       time.Duration  `yaml:"token_ttl"`
	Media          MediaConfig    `yaml:"media"`
	Limits         LimitsConfig   `yaml:"limits"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	BaseURL        string   `yaml:"base_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// PostgresConfig keeps its name for the yaml `database` block; Driver selects
// "postgres" (default) or "sqlite", in which case only Path is used.
type PostgresConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	Port     string `yaml:"port"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
}

type MediaConfig struct {
	Backend   string   `yaml:"backend"` // "local" or "s3"
	Root      string   `yaml:"root"`
	URLPrefix string   `yaml:"url_prefix"`
	S3        S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	PublicURL string `yaml:"public_url"`
}

type LimitsConfig struct {
	MinCookingTime      int `yaml:"min_cooking_time"`
	MinIngredientAmount int `yaml:"min_ingredient_amount"`
	PageSize            int `yaml:"page_size"`
	MaxPageSize         int `yaml:"max_page_size"`
}

// JWTSecretKey returns the signing key as bytes.
func (c *Config) JWTSecretKey() []byte {
	return []byte(c.JWTSecret)
}
