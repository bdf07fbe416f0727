package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadWithoutEnvFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, EnvDevelopment, cfg.Env)
	require.Equal(t, "admin_session", cfg.Session.CookieName)
	require.Equal(t, int64(5*1024*1024), cfg.Upload.MaxBytes)
	require.Equal(t, 5000, cfg.Upload.MaxRows)
	require.Equal(t, "./qrcodes", cfg.QRDir)
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "PORT=9999\nQR_DIR=./images\nUPLOAD_MAX_ROWS=42\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644))
	chdir(t, dir)
	t.Cleanup(func() {
		// godotenv exports the file into the process environment.
		_ = os.Unsetenv("PORT")
		_ = os.Unsetenv("QR_DIR")
		_ = os.Unsetenv("UPLOAD_MAX_ROWS")
	})

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9999, cfg.Port)
	require.Equal(t, "./images", cfg.QRDir)
	require.Equal(t, 42, cfg.Upload.MaxRows)
}
