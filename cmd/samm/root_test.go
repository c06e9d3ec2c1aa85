package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDirs points the CLI at throwaway config and data directories
func useTempDirs(t *testing.T) (configDir, dataDir string) {
	t.Helper()
	root := t.TempDir()
	configDir = filepath.Join(root, "config")
	dataDir = filepath.Join(root, "data")
	viper.Set("config", configDir)
	viper.Set("data", dataDir)
	viper.Set("yes", true)
	t.Cleanup(func() {
		viper.Set("config", "")
		viper.Set("data", "")
		viper.Set("yes", false)
	})
	return configDir, dataDir
}

// executeCommand runs the root command with args and returns its output
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// fakeGameDir creates a directory that looks like the 2004 release
func fakeGameDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "Sonic Adventure DX")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sonic.exe"), []byte("MZ"), 0644))
	return dir
}

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "samm", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)

	for _, name := range []string{"config", "data", "verbose", "yes", "log-level", "keys"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "flag %s", name)
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"game", "loader", "update", "deps", "profile", "patches", "d3d8to9", "status", "history", "auth"} {
		assert.Contains(t, names, want)
	}
}

func TestGetDirs_FromViper(t *testing.T) {
	configDir, dataDir := useTempDirs(t)

	dirs, err := getDirs()
	require.NoError(t, err)
	assert.Equal(t, configDir, dirs.Config)
	assert.Equal(t, dataDir, dirs.Data)
}

func TestInitService_CreatesDirectories(t *testing.T) {
	configDir, dataDir := useTempDirs(t)

	s, err := initService(rootCmd)
	require.NoError(t, err)
	s.Close()

	assert.DirExists(t, configDir)
	assert.FileExists(t, filepath.Join(dataDir, "samm.db"))
}

func TestCommands_RequireGame(t *testing.T) {
	useTempDirs(t)

	for _, args := range [][]string{
		{"status"},
		{"loader", "check"},
		{"profile", "list"},
		{"patches", "list"},
		{"d3d8to9", "status"},
	} {
		_, err := executeCommand(t, args...)
		require.Error(t, err, "%v", args)
		assert.Contains(t, err.Error(), "no game selected", "%v", args)
	}
}

func TestBoolResult(t *testing.T) {
	assert.NoError(t, boolResult(true, "x"))
	err := boolResult(false, "loader update")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loader update failed")
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "abc1234", shortHash("abc1234567890"))
	assert.Equal(t, "abc", shortHash("abc"))
	assert.Equal(t, "", shortHash(""))
}

func TestBindGlobalFlags_Env(t *testing.T) {
	t.Setenv("SAMM_LOG_LEVEL", "debug")
	assert.Equal(t, "debug", viper.GetString("log-level"))
}
