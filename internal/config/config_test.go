package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadForTest(t *testing.T, file string) (*Config, error) {
	t.Helper()
	// Run from an empty directory so a stray site.yaml never leaks in.
	t.Chdir(t.TempDir())
	return load(viper.New(), file)
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, names := range envBindings {
		for _, name := range names {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := loadForTest(t, "")
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:1337", cfg.CMS.URL)
	assert.Equal(t, 15*time.Second, cfg.CMS.Timeout)
	assert.Equal(t, 60*time.Second, cfg.CMS.Revalidate)
	assert.Equal(t, 8*time.Second, cfg.RefreshDelay)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_EnvAliases(t *testing.T) {
	t.Run("Strapi names are accepted", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("NEXT_PUBLIC_STRAPI_URL", "https://cms.example.org/")
		t.Setenv("STRAPI_API_TOKEN", " secret ")

		cfg, err := loadForTest(t, "")
		require.NoError(t, err)

		assert.Equal(t, "https://cms.example.org", cfg.CMS.URL)
		assert.Equal(t, "secret", cfg.CMS.Token)
	})

	t.Run("CMS_URL wins over aliases", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CMS_URL", "https://primary.example.org")
		t.Setenv("STRAPI_URL", "https://alias.example.org")

		cfg, err := loadForTest(t, "")
		require.NoError(t, err)
		assert.Equal(t, "https://primary.example.org", cfg.CMS.URL)
	})
}

func TestLoad_DevelopmentDisablesRevalidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("NODE_ENV", "development")
	t.Setenv("CMS_REVALIDATE", "5m")

	cfg, err := loadForTest(t, "")
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Zero(t, cfg.CMS.Revalidate)
}

func TestLoad_DurationsFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CMS_TIMEOUT", "3s")
	t.Setenv("CMS_REVALIDATE", "2m")

	cfg, err := loadForTest(t, "")
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.CMS.Timeout)
	assert.Equal(t, 2*time.Minute, cfg.CMS.Revalidate)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte("site_name: Test High\ncms:\n  url: https://yaml.example.org\n"), 0o600))

	cfg, err := load(viper.New(), file)
	require.NoError(t, err)

	assert.Equal(t, "Test High", cfg.SiteName)
	assert.Equal(t, "https://yaml.example.org", cfg.CMS.URL)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Port: "80", CMS: CMSConfig{URL: "https://cms.example.org", Timeout: time.Second}}, false},
		{"relative url", Config{Port: "80", CMS: CMSConfig{URL: "/cms", Timeout: time.Second}}, true},
		{"ftp url", Config{Port: "80", CMS: CMSConfig{URL: "ftp://cms.example.org", Timeout: time.Second}}, true},
		{"zero timeout", Config{Port: "80", CMS: CMSConfig{URL: "https://cms.example.org"}}, true},
		{"empty port", Config{CMS: CMSConfig{URL: "https://cms.example.org", Timeout: time.Second}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
