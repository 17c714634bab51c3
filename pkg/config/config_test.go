package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, types.FetchServer, cfg.Catalog.FetchMode)
	assert.Equal(t, 60*time.Second, cfg.Catalog.Revalidate)
	assert.Len(t, cfg.FilterGroups, 8)
}

func TestLoadYaml(t *testing.T) {
	path := writeFile(t, "storefront.yaml", `
listen_address: ":9000"
country: "no"
catalog:
  url: https://catalog.example.com/products
  fetch_mode: client
  timeout: 3s
filter_groups:
  - id: color
    label: COLOR
    options: [All, Red, Blue]
nav_links: [SHOP, ABOUT]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddress)
	assert.Equal(t, "no", cfg.Country)
	assert.Equal(t, types.FetchClient, cfg.Catalog.FetchMode)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 60*time.Second, cfg.Catalog.Revalidate, "unset keys keep defaults")
	require.Len(t, cfg.FilterGroups, 1)
	assert.Equal(t, []string{"All", "Red", "Blue"}, cfg.FilterGroups[0].Options)
	assert.Equal(t, []string{"SHOP", "ABOUT"}, cfg.NavLinks)
}

func TestEnvOverridesYaml(t *testing.T) {
	path := writeFile(t, "storefront.yaml", "country: dk\n")
	t.Setenv("COUNTRY", "fi")
	t.Setenv("FETCH_MODE", "static")
	t.Setenv("REDIS_URL", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CATALOG_URL", "https://other.example.com/products")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fi", cfg.Country)
	assert.Equal(t, types.FetchStatic, cfg.Catalog.FetchMode)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "https://other.example.com/products", cfg.Catalog.Url)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("fetch mode", func(t *testing.T) {
		t.Setenv("FETCH_MODE", "edge")
		_, err := Load("")
		assert.Error(t, err)
	})
	t.Run("redis db", func(t *testing.T) {
		t.Setenv("REDIS_DB", "first")
		_, err := Load("")
		assert.Error(t, err)
	})
	t.Run("catalog url", func(t *testing.T) {
		t.Setenv("CATALOG_URL", "not a url")
		_, err := Load("")
		assert.Error(t, err)
	})
	t.Run("filter group without All", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", `
filter_groups:
  - id: color
    label: COLOR
    options: [Red, Blue]
`)
		_, err := Load(path)
		assert.ErrorIs(t, err, types.ErrMissingAllOption)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "broken.yaml", "catalog: [unclosed"))
		assert.Error(t, err)
	})
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "SNAPSHOT_DIR=/var/lib/storefront\n")
	t.Setenv("SNAPSHOT_DIR", "")
	os.Unsetenv("SNAPSHOT_DIR")

	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path))
	assert.Equal(t, "/var/lib/storefront", os.Getenv("SNAPSHOT_DIR"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/storefront", cfg.SnapshotDir)
}
