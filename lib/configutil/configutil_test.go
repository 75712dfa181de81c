package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string   `json:"name"`
	Count   int      `json:"count"`
	Words   []string `json:"words"`
	Enabled bool     `json:"enabled"`
}

func writeFile(t *testing.T, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")

	_, err := ReadConfig[testConfig](path)
	require.ErrorIs(t, err, os.ErrNotExist)

	writeFile(t, path, `{
		// comments are allowed
		name: "base",
		count: 3,
		words: ["a", "b"],
	}`)
	cfg, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, testConfig{Name: "base", Count: 3, Words: []string{"a", "b"}}, cfg)

	writeFile(t, filepath.Join(dir, "config.local.json5"), `{count: 7}`)
	cfg, err = ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, "base", cfg.Name)
	require.Equal(t, 7, cfg.Count)
}

func TestReadConfigWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	defaults := testConfig{Name: "default", Count: 5, Words: []string{"x"}}

	cfg, err := ReadConfigWithDefaults(path, defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)

	writeFile(t, path, `{name: "custom"}`)
	cfg, err = ReadConfigWithDefaults(path, defaults)
	require.NoError(t, err)
	require.Equal(t, "custom", cfg.Name)
	require.Equal(t, 5, cfg.Count)
	require.Equal(t, []string{"x"}, cfg.Words)

	writeFile(t, path, `{name: `)
	_, err = ReadConfigWithDefaults(path, defaults)
	require.Error(t, err)
}

func TestLocalPath(t *testing.T) {
	require.Equal(t, "a/config.local.json5", localPath("a/config.json5"))
	require.Equal(t, "telemetry.local.json5", localPath("telemetry.json5"))
}
