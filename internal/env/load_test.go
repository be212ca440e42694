package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), ".env")))
}

func TestLoad_SetsUnsetVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# globe\nGLOBE_LOGLEVEL=debug\nGLOBE_FILTER='EPOCH'\n"), 0644))
	t.Setenv("GLOBE_FILTER", "SCALE")
	t.Setenv("GLOBE_LOGLEVEL", "")
	require.NoError(t, os.Unsetenv("GLOBE_LOGLEVEL"))

	require.NoError(t, Load(path))

	assert.Equal(t, "debug", os.Getenv("GLOBE_LOGLEVEL"))
	assert.Equal(t, "SCALE", os.Getenv("GLOBE_FILTER"))
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("A=1\nB=\"two words\"\n"), 0644))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "two words"}, got)
}
