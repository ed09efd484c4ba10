package cfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, GetVersion())
}

func TestPublicUrl(t *testing.T) {
	c := &Cfg{Port: "8080"}
	assert.Equal(t, "http://localhost:8080", c.PublicUrl())

	c.BaseUrl = "https://feed.polysend.io"
	assert.Equal(t, "https://feed.polysend.io", c.PublicUrl())
}

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Custom Channel\nlanguage: nb\n"), 0o644))

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	require.NotNil(t, seed)

	require.NotNil(t, seed.Title)
	assert.Equal(t, "Custom Channel", *seed.Title)
	require.NotNil(t, seed.Language)
	assert.Equal(t, "nb", *seed.Language)
	// Fields absent from the file stay nil
	assert.Nil(t, seed.Link)
	assert.Nil(t, seed.Copyright)
}

func TestLoadSeedEmptyPath(t *testing.T) {
	seed, err := LoadSeed("")
	require.NoError(t, err)
	assert.Nil(t, seed)
}

func TestLoadSeedMissingFile(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadSeedInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: [unclosed"), 0o644))

	_, err := LoadSeed(path)
	assert.Error(t, err)
}
