package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting read at process start.
type Config struct {
	Env      string `mapstructure:"APP_ENV"`
	HTTPAddr string `mapstructure:"HTTP_ADDR"`

	Supabase SupabaseConfig `mapstructure:",squash"`
	Database DBConfig       `mapstructure:",squash"`
	Storage  StorageConfig  `mapstructure:",squash"`
	Redis    RedisConfig    `mapstructure:",squash"`
	Log      LogConfig      `mapstructure:",squash"`

	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

type SupabaseConfig struct {
	URL           string `mapstructure:"SUPABASE_URL"`
	AnonKey       string `mapstructure:"SUPABASE_ANON_KEY"`
	JWTSecret     string `mapstructure:"SUPABASE_JWT_SECRET"`
	Bucket        string `mapstructure:"STORAGE_BUCKET"`
	OAuthProvider string `mapstructure:"OAUTH_PROVIDER"`
	SiteURL       string `mapstructure:"SITE_URL"`
}

type DBConfig struct {
	URL         string `mapstructure:"DB_URL"`
	AutoMigrate bool   `mapstructure:"DB_AUTO_MIGRATE"`
}

type StorageConfig struct {
	Provider            string `mapstructure:"STORAGE_PROVIDER"` // "supabase", "cloudinary"
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `mapstructure:"CLOUDINARY_FOLDER"`
}

type RedisConfig struct {
	Addr string `mapstructure:"REDIS_ADDR"`
}

type LogConfig struct {
	Level string `mapstructure:"LOG_LEVEL"`
	File  string `mapstructure:"LOG_FILE"`
}

var defaults = map[string]interface{}{
	"APP_ENV":               "dev",
	"HTTP_ADDR":             ":8080",
	"SUPABASE_URL":          "",
	"SUPABASE_ANON_KEY":     "",
	"SUPABASE_JWT_SECRET":   "",
	"STORAGE_BUCKET":        "post-images",
	"OAUTH_PROVIDER":        "github",
	"SITE_URL":              "http://localhost:3000",
	"DB_URL":                "",
	"DB_AUTO_MIGRATE":       false,
	"STORAGE_PROVIDER":      "supabase",
	"CLOUDINARY_CLOUD_NAME": "",
	"CLOUDINARY_API_KEY":    "",
	"CLOUDINARY_API_SECRET": "",
	"CLOUDINARY_FOLDER":     "post_images",
	"REDIS_ADDR":            "",
	"LOG_LEVEL":             "info",
	"LOG_FILE":              "",
	"CORS_ALLOWED_ORIGINS":  "http://localhost:3000",
}

// Load reads the optional .env file, then the process environment.
// Variables already present in the environment win over the file.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	v := viper.New()
	v.SetConfigType("env")
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Supabase.URL = strings.TrimRight(cfg.Supabase.URL, "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var missing []string
	if c.Supabase.URL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if c.Supabase.AnonKey == "" {
		missing = append(missing, "SUPABASE_ANON_KEY")
	}
	if c.Supabase.JWTSecret == "" {
		missing = append(missing, "SUPABASE_JWT_SECRET")
	}
	if c.Database.URL == "" {
		missing = append(missing, "DB_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	switch c.Storage.Provider {
	case "supabase":
	case "cloudinary":
		if c.Storage.CloudinaryCloudName == "" || c.Storage.CloudinaryAPIKey == "" || c.Storage.CloudinaryAPISecret == "" {
			return fmt.Errorf("cloudinary storage requires CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET")
		}
	default:
		return fmt.Errorf("unknown STORAGE_PROVIDER %q", c.Storage.Provider)
	}
	return nil
}

// LoginURL is where the browser is sent to start the OAuth flow.
func (s SupabaseConfig) LoginURL() string {
	q := url.Values{}
	q.Set("provider", s.OAuthProvider)
	if s.SiteURL != "" {
		q.Set("redirect_to", s.SiteURL)
	}
	return s.URL + "/auth/v1/authorize?" + q.Encode()
}
