package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir is t.Chdir for Go toolchains before 1.24, where that method
// does not exist.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldwd) })
}

// A secret set only in .env must come back through Load, since that value
// is what main installs as the token signing key.
func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "JWT_SECRET=operator-secret\nPORT=9090\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	chdir(t, dir)

	// godotenv writes into the process environment; undo it
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("PORT")
	t.Cleanup(func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("PORT")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "operator-secret", cfg.JWTSecret)
	assert.Equal(t, ":9090", cfg.Port)
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir()) // no .env
	os.Unsetenv("PORT")
	os.Unsetenv("MONGO_DB")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "graindb", cfg.MongoDB)
	assert.Equal(t, ":8080", cfg.Port)
}
