package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesSpec(t *testing.T) {
	cfg := Default()
	require.True(t, cfg.Batching)
	require.True(t, cfg.Oracle)
	require.True(t, cfg.Incremental)
	require.True(t, cfg.Rollback)
	require.Equal(t, Preorder, cfg.BranchOrder)
	require.Equal(t, SmallestID, cfg.CanonicalPick)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverlaysTOMLOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "otc.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
oracle = false
branch_order = "postorder"
incertae_sedis_path = "is.txt"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.False(t, cfg.Oracle)
	require.Equal(t, Postorder, cfg.BranchOrder)
	require.Equal(t, "is.txt", cfg.IncertaeSedisPath)
	require.True(t, cfg.Batching, "fields absent from the file should keep their defaults")
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
