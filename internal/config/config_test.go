package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearSteamEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"STEAM_API_KEY", "VITE_STEAM_API_KEY", "PORT", "STEAM_TIMEOUT", "STEAM_APP_ID"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearSteamEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Empty(t, cfg.Steam.APIKey)
	assert.Equal(t, "221100", cfg.Steam.AppID)
	assert.Equal(t, "https://api.steampowered.com", cfg.Steam.APIBaseURL)
	assert.Equal(t, "https://steamcommunity.com", cfg.Steam.CommunityBaseURL)
	assert.Equal(t, 10*time.Second, cfg.Steam.Timeout)
	assert.Equal(t, DefaultUserAgent, cfg.Steam.UserAgent)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearSteamEnv(t)
	t.Setenv("VITE_STEAM_API_KEY", "vite-key")
	t.Setenv("PORT", "8080")
	t.Setenv("STEAM_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "vite-key", cfg.Steam.APIKey)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Steam.Timeout)
}

func TestLoad_PrimaryKeyWins(t *testing.T) {
	clearSteamEnv(t)
	t.Setenv("STEAM_API_KEY", "primary")
	t.Setenv("VITE_STEAM_API_KEY", "legacy")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.Steam.APIKey)
}

func TestLoadDotEnv(t *testing.T) {
	const key = "WORKSHOP_DOTENV_TEST"
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(key+"=from-env\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte(key+"=from-local\n"), 0o600))
	t.Chdir(dir)

	loaded, err := LoadDotEnv()
	require.NoError(t, err)

	assert.Equal(t, []string{".env.local", ".env"}, loaded)
	assert.Equal(t, "from-local", os.Getenv(key))
}

func TestLoadDotEnv_SkipsMissingAndRejectsMalformed(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.env")
	require.NoError(t, os.WriteFile(bad, []byte("WORKSHOP_DOTENV_BAD='unterminated\n"), 0o600))

	loaded, err := LoadDotEnv(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Empty(t, loaded)

	_, err = LoadDotEnv(bad)
	assert.Error(t, err)
}
