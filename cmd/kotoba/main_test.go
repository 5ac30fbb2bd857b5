package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/kotoba/internal/dictionary"
	"github.com/at-ishikawa/kotoba/internal/testutil"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(context.Background(), slog.LevelDebug))
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "kotoba", cmd.Use)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"serve", "quiz", "dictionary", "db"})
}

func TestNewQuizCommand(t *testing.T) {
	cmd := newQuizCommand()

	modeFlag := cmd.Flags().Lookup("mode")
	require.NotNil(t, modeFlag)
	assert.Equal(t, "normal", modeFlag.DefValue)
	assert.Equal(t, "mode", modeFlag.Value.Type())
	assert.Error(t, cmd.Flags().Set("mode", "expert"))
	assert.NoError(t, cmd.Flags().Set("mode", "study"))

	assert.NotNil(t, cmd.Flags().Lookup("dict"))
	assert.NotNil(t, cmd.Flags().Lookup("server"))
	assert.NotNil(t, cmd.Flags().Lookup("connect"))
}

func TestQuizCommand_ConnectWithoutServer(t *testing.T) {
	cmd := newQuizCommand()
	cmd.SetArgs([]string{"--connect"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	assert.ErrorContains(t, err, "--connect requires --server")
}

// writeConfig writes a config whose dictionary directory holds the given files.
func writeConfig(t *testing.T, files map[string]string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	configPath := testutil.SetupTestConfig(t, dir)
	for name, content := range files {
		testutil.CreateDictionary(t, filepath.Join(dir, "dictionaries"), name, content)
	}
	return configPath, dir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDictionaryListCommand(t *testing.T) {
	configPath, dir := writeConfig(t, map[string]string{
		"base.json":    `{}`,
		"jlpt_n5.json": `{}`,
	})

	out, err := runCommand(t, "--config", configPath, "dictionary", "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "* base"))
	assert.Contains(t, lines[0], filepath.Join(dir, "dictionaries", "base.json"))
	assert.True(t, strings.HasPrefix(lines[1], "  jlpt_n5"))
}

func TestDictionaryConfigCommand(t *testing.T) {
	configPath, dir := writeConfig(t, map[string]string{
		"base.json":    `{}`,
		"jlpt_n5.json": `{}`,
	})
	// sources take precedence over the directory
	testutil.AppendConfig(t, configPath, "  default: N5\n  sources:\n    - name: N5\n      path: "+
		filepath.Join(dir, "dictionaries", "jlpt_n5.json")+"\n")

	out, err := runCommand(t, "--config", configPath, "dictionary", "config")
	require.NoError(t, err)

	var got dictionariesOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, dictionariesOutput{
		Dictionaries: dictionariesSection{
			Default: "N5",
			Sources: []dictionary.Source{
				{Name: "N5", Path: filepath.Join(dir, "dictionaries", "jlpt_n5.json")},
			},
		},
	}, got)
}

func TestDictionaryCleanCommand(t *testing.T) {
	content := `{
    "「私」": "(わたし) I, me",
    "僕": "(ぼく) I, me",
    "私": "(わたくし) I (formal)",
    "猫": "(ねこ) cat"
}
`
	tests := []struct {
		name        string
		args        []string
		wantOutput  []string
		wantEntries []dictionary.RawEntry
	}{
		{
			name: "writes the cleaned file",
			wantOutput: []string{
				"Original: 4, Cleaned: 2, Removed: 2",
				"dropped 僕: duplicate meaning",
				"dropped 私: duplicate headword",
			},
			wantEntries: []dictionary.RawEntry{
				{Headword: "私", Gloss: "I, me"},
				{Headword: "猫", Gloss: "cat"},
			},
		},
		{
			name:       "dry run",
			args:       []string{"--dry-run"},
			wantOutput: []string{"Original: 4, Cleaned: 2, Removed: 2"},
			wantEntries: []dictionary.RawEntry{
				{Headword: "「私」", Gloss: "(わたし) I, me"},
				{Headword: "僕", Gloss: "(ぼく) I, me"},
				{Headword: "私", Gloss: "(わたくし) I (formal)"},
				{Headword: "猫", Gloss: "(ねこ) cat"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "base.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			out, err := runCommand(t, append([]string{"dictionary", "clean", path}, tt.args...)...)
			require.NoError(t, err)
			for _, s := range tt.wantOutput {
				assert.Contains(t, out, s)
			}

			got, err := dictionary.ReadRawFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantEntries, got)
		})
	}
}

func TestDictionaryShowAndExportCommands(t *testing.T) {
	configPath, dir := writeConfig(t, map[string]string{
		"base.json": `{"猫": "(ねこ) cat", "コーヒー": "coffee"}`,
	})

	out, err := runCommand(t, "--config", configPath, "dictionary", "show", "base")
	require.NoError(t, err)
	assert.Contains(t, out, "ねこ")
	assert.Contains(t, out, "neko")
	assert.Contains(t, out, "こーひー")
	assert.Contains(t, out, "2 words in")

	outputDir := filepath.Join(dir, "outputs")
	out, err = runCommand(t, "--config", configPath, "dictionary", "export", "base", "--output", outputDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Vocabulary written to: "+filepath.Join(outputDir, "base.md"))

	markdown, err := os.ReadFile(filepath.Join(outputDir, "base.md"))
	require.NoError(t, err)
	assert.Contains(t, string(markdown), "| 猫 | ねこ | neko | cat |")

	_, err = runCommand(t, "--config", configPath, "dictionary", "show", "missing")
	assert.ErrorIs(t, err, dictionary.ErrNotFound)
}

func TestDBMigrateCommand_Disabled(t *testing.T) {
	configPath, _ := writeConfig(t, nil)

	_, err := runCommand(t, "--config", configPath, "db", "migrate")
	assert.ErrorContains(t, err, "database.enabled is false")
}
