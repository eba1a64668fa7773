package jgen_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/jgen"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadConfig_WalksUp(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".jgen.yaml"), `
lang: java
environment: env/default.yaml
out: src/main/java
lineDelimiter: crlf
files:
  "legacy/*.yaml": env/legacy.yaml
properties:
  author: test
`)

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	cfg, err := jgen.LoadConfig(nested)
	require.NoError(t, err)

	assert.Equal(t, "java", cfg.Lang)
	assert.Equal(t, "src/main/java", cfg.Out)
	assert.Equal(t, filepath.Join(root, "src", "main", "java"), cfg.OutputRoot())
	assert.Equal(t, "\r\n", cfg.Delimiter())
	assert.Equal(t, map[string]string{"author": "test"}, cfg.Properties)

	assert.Equal(t, filepath.Join(root, "env", "legacy.yaml"), cfg.EnvironmentFor("legacy/ws.yaml"))
	assert.Equal(t, filepath.Join(root, "env", "default.yaml"), cfg.EnvironmentFor("model.yaml"))
}

func TestFindConfig_NotFound(t *testing.T) {
	t.Parallel()

	// The temp dir's ancestors are not expected to carry a config.
	_, err := jgen.FindConfig(t.TempDir())
	if err != nil {
		assert.True(t, errors.Is(err, jgen.ErrConfigNotFound))
	}
}

func TestLoadConfigFile_Invalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "jgen.yaml")
	writeFile(t, path, "lang: [")

	_, err := jgen.LoadConfigFile(path)
	require.Error(t, err)
}

func TestParseLineDelimiter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"", "\n"},
		{"lf", "\n"},
		{"CRLF", "\r\n"},
		{"cr", "\r"},
		{"|", "|"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, jgen.ParseLineDelimiter(tt.in), tt.in)
	}
}
