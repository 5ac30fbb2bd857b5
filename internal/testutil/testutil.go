// Package testutil provides shared test helpers for creating config files and dictionary fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a config file whose dictionary and output
// directories live in tmpDir. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	for _, d := range []string{"dictionaries", "outputs"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0o755))
	}

	configContent := fmt.Sprintf(`outputs:
  export_directory: %s
dictionaries:
  directory: %s
`,
		filepath.Join(tmpDir, "outputs"),
		filepath.Join(tmpDir, "dictionaries"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0o644))
	return cfgPath
}

// AppendConfig adds YAML to the end of a config file. The generated file
// ends inside the dictionaries section, so indented keys extend it.
func AppendConfig(t *testing.T, cfgPath, content string) {
	t.Helper()
	existing, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfgPath, append(existing, []byte(content)...), 0o644))
}

// CreateDictionary writes a dictionary file and returns its path.
func CreateDictionary(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
