package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"darkarchiver/internal/config"
	"darkarchiver/internal/log"
	"darkarchiver/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	cfg, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.New().Theme, cfg.Theme)

	_, err = execute(t, "--config", path, "config", "init")
	assert.Error(t, err, "existing file is kept without --force")

	_, err = execute(t, "--config", path, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  mode: fuzzy\n"), 0644))

	out, err := execute(t, "--config", path, "--debug", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# "+path)
	assert.Contains(t, out, "mode: fuzzy")
	assert.Contains(t, out, "debug: true")
}

func TestConfigShowRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transfer:\n  collision: ask\n"), 0644))

	_, err := execute(t, "--config", path, "config", "show")
	assert.Error(t, err)
}

func TestConfigPath(t *testing.T) {
	out, err := execute(t, "--config", "/tmp/x.yaml", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.yaml\n", out)
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}

func TestPreloadAddsFilesAndFolders(t *testing.T) {
	cfg := config.NewTestConfig()
	ctrl, err := newController(cfg)
	require.NoError(t, err)
	t.Cleanup(ctrl.Close)

	dir := t.TempDir()
	files := testutils.CreateOrderedFiles(t, t.TempDir(), "b.txt", "a.txt")
	testutils.CreateOrderedFiles(t, dir, "inner.md")

	preload(ctrl, append(files, dir))

	var got []string
	for _, r := range ctrl.Rows() {
		got = append(got, r.Name)
	}
	assert.ElementsMatch(t, []string{"b.txt", "a.txt", "inner.md"}, got)
}

func TestNewControllerWithWatcher(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.Watch.Enabled = true
	ctrl, err := newController(cfg)
	require.NoError(t, err)
	ctrl.Close()

	cfg.Transfer.Collision = "ask"
	_, err = newController(cfg)
	assert.Error(t, err)
}

func TestSetupLoggingForTerminal(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.Log.File = filepath.Join(t.TempDir(), "darkarchiver.log")

	closer, err := setupLogging(cfg, true)
	require.NoError(t, err)
	require.NotNil(t, closer)
	t.Cleanup(func() {
		log.Configure()
		closer.Close()
	})

	_, err = os.Stat(cfg.Log.File)
	assert.NoError(t, err)

	cfg.Log.File = filepath.Join(t.TempDir(), "missing", "x.log")
	_, err = setupLogging(cfg, true)
	assert.Error(t, err)
}
