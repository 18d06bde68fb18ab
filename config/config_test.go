package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequired(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://demo.supabase.co/")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("SUPABASE_JWT_SECRET", "secret")
	t.Setenv("DB_URL", "postgres://localhost/test")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	assert.NoError(t, err)
	assert.Equal(t, "https://demo.supabase.co", cfg.Supabase.URL)
	assert.Equal(t, "post-images", cfg.Supabase.Bucket)
	assert.Equal(t, "github", cfg.Supabase.OAuthProvider)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "supabase", cfg.Storage.Provider)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("STORAGE_BUCKET", "images")

	cfg, err := FromEnv()
	assert.NoError(t, err)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "images", cfg.Supabase.Bucket)
}

func TestFromEnv_MissingRequired(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")
	t.Setenv("SUPABASE_JWT_SECRET", "")
	t.Setenv("DB_URL", "")

	_, err := FromEnv()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_URL")
	assert.Contains(t, err.Error(), "DB_URL")
}

func TestFromEnv_CloudinaryNeedsCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("STORAGE_PROVIDER", "cloudinary")

	_, err := FromEnv()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cloudinary")
}

func TestLoginURL(t *testing.T) {
	s := SupabaseConfig{URL: "https://demo.supabase.co", OAuthProvider: "github"}
	assert.Equal(t, "https://demo.supabase.co/auth/v1/authorize?provider=github", s.LoginURL())

	s.SiteURL = "http://localhost:3000"
	assert.Equal(t, "https://demo.supabase.co/auth/v1/authorize?provider=github&redirect_to=http%3A%2F%2Flocalhost%3A3000", s.LoginURL())
}
