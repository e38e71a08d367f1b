package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"tiedye/internal/analytics"
	"tiedye/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSortCommand(t *testing.T) {
	workspace := t.TempDir()
	source := filepath.Join(workspace, "downloads")
	testutils.WriteFiles(t, source, map[string]string{
		"report.pdf": "pdf",
		"notes.txt":  "txt",
	})

	dbPath := filepath.Join(workspace, "analytics.db")
	cfgPath := writeConfig(t, workspace, `
sorter:
  rules:
    - extensions: [".pdf"]
      target_folder: Docs
analytics:
  database: `+dbPath+`
`)

	out, err := runCommand(t, "sort", source, "--config", cfgPath)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(source, "Docs", "report.pdf"))
	assert.FileExists(t, filepath.Join(source, "notes.txt"))
	assert.Contains(t, out, "1 moved")
	assert.Contains(t, out, "report.pdf")

	store, err := analytics.Open(dbPath)
	require.NoError(t, err)
	defer store.Close()
	events, err := store.Events(1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "sort_completed", events[0].Type)
	assert.Equal(t, float64(1), events[0].Details["moved"])
}

func TestSortCommandRequiresSorterSection(t *testing.T) {
	workspace := t.TempDir()
	cfgPath := writeConfig(t, workspace, "paths: {}\n")

	_, err := runCommand(t, "sort", workspace, "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sorter")
}

func TestPathCommands(t *testing.T) {
	workspace := t.TempDir()
	cfgPath := filepath.Join(workspace, "config.yaml")
	target := filepath.Join(workspace, "projects")
	require.NoError(t, os.Mkdir(target, 0755))

	_, err := runCommand(t, "path", "save", "work", target, "--config", cfgPath)
	require.NoError(t, err)

	out, err := runCommand(t, "path", "get", "work", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, target+"\n", out)

	out, err = runCommand(t, "path", "list", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "work")
	assert.Contains(t, out, target)

	_, err = runCommand(t, "path", "remove", "work", "--config", cfgPath)
	require.NoError(t, err)

	_, err = runCommand(t, "path", "get", "work", "--config", cfgPath)
	require.Error(t, err)
}

func TestScaffoldCommands(t *testing.T) {
	workspace := t.TempDir()
	templates := filepath.Join(workspace, "templates")
	projects := filepath.Join(workspace, "projects")
	source := filepath.Join(workspace, "skeleton")
	testutils.WriteFiles(t, source, map[string]string{
		"README.md":    "# skeleton",
		"src/main.txt": "entry",
	})

	dbPath := filepath.Join(workspace, "analytics.db")
	cfgPath := writeConfig(t, workspace, `
scaffolder:
  templates_dir: `+templates+`
  default_project_destination: `+projects+`
analytics:
  database: `+dbPath+`
`)

	_, err := runCommand(t, "scaffold", "save", "go-service", source, "--config", cfgPath)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(templates, "go-service", "src", "main.txt"))

	_, err = runCommand(t, "scaffold", "new", "go-service", "api", "--config", cfgPath)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(projects, "api", "README.md"))

	_, err = runCommand(t, "scaffold", "fav", "go-service", "--config", cfgPath)
	require.NoError(t, err)

	out, err := runCommand(t, "scaffold", "list", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Favorites")
	assert.Contains(t, out, "go-service")

	_, err = runCommand(t, "scaffold", "unfav", "go-service", "--config", cfgPath)
	require.NoError(t, err)

	out, err = runCommand(t, "scaffold", "list", "--config", cfgPath)
	require.NoError(t, err)
	assert.NotContains(t, out, "Favorites")
}
