package tcconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborlang/tyc/internal/tcconfig"
)

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	cfg, err := tcconfig.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, tcconfig.Default(), cfg)
}

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".typecheckrc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trace_unification: true\ncolor: false\nmax_implicit_chain: 8\n"), 0o644))

	cfg, err := tcconfig.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.TraceUnification)
	assert.False(t, cfg.Color)
	assert.Equal(t, 8, cfg.MaxImplicitChain)
}

func TestLoad_ZeroChainFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".typecheckrc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("color: true\n"), 0o644))

	cfg, err := tcconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, tcconfig.DefaultMaxImplicitChain, cfg.MaxImplicitChain)
}

func TestLoad_MalformedYAMLErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".typecheckrc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("color: [this is not a bool\n"), 0o644))

	_, err := tcconfig.Load(path)
	assert.Error(t, err)
}
