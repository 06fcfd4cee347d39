package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	dir := t.TempDir()

	c1, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), c1)
	assert.FileExists(t, filepath.Join(dir, configFileName))

	c1.Port = 9090
	c1.Seed = 42
	c1.OpenBrowser = false
	c1.LogLevel = "debug"

	require.NoError(t, Save(dir, c1))

	c2, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, c1, c2)
}

func TestReadOrCreateNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	c, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, c.Port)
}

func TestReadOrCreatePartialFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("seed: 7\n"), fileMode))

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), c.Seed)
	assert.Equal(t, DefaultPort, c.Port)
	assert.Equal(t, DefaultConcurrency, c.Concurrency)
}

func TestReadOrCreateInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("port: 0\nlog_level: loud\n"), fileMode))

	_, err := ReadOrCreate(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Port")
	assert.Contains(t, err.Error(), "LogLevel")
}

func TestReadOrCreateMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("port: [\n"), fileMode))

	_, err := ReadOrCreate(dir)
	assert.Error(t, err)
}

func TestSaveErrors(t *testing.T) {
	assert.Error(t, Save("", Default()))
	assert.Error(t, Save(t.TempDir(), nil))

	c := Default()
	c.Concurrency = 0
	assert.Error(t, Save(t.TempDir(), c))
}

func TestReadOrCreateEmptyDir(t *testing.T) {
	_, err := ReadOrCreate("")
	assert.Error(t, err)
}

func TestGetOrCreateHomeDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir, created, err := GetOrCreateHomeDir("churnpulse-test")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, ".churnpulse-test", filepath.Base(dir))

	_, created, err = GetOrCreateHomeDir(".churnpulse-test")
	require.NoError(t, err)
	assert.False(t, created)

	_, _, err = GetOrCreateHomeDir("")
	assert.Error(t, err)
}
