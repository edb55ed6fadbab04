package heapopts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAlignment(t *testing.T) {
	for _, alignment := range validAlignments {
		cfg := Config{Alignment: alignment, MaxHeaps: 2}
		assert.NoError(t, cfg.Validate(), "alignment %d should be valid", alignment)
	}

	for _, alignment := range []int{0, 3, 5, 7, 64, -8} {
		cfg := Config{Alignment: alignment, MaxHeaps: 2}
		assert.Error(t, cfg.Validate(), "alignment %d should be rejected", alignment)
	}
}

func TestValidateMaxHeaps(t *testing.T) {
	assert.NoError(t, Config{Alignment: 8, MaxHeaps: MaxHeapCap}.Validate())
	assert.Error(t, Config{Alignment: 8, MaxHeaps: MaxHeapCap + 1}.Validate())
	assert.Error(t, Config{Alignment: 8, MaxHeaps: -1}.Validate())
}

func TestNormalizeDefaultsMaxHeaps(t *testing.T) {
	cfg := Config{Alignment: 8}.Normalize()
	assert.Equal(t, defaultMaxHeaps, cfg.MaxHeaps)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heap.yaml")
	contents := "alignment: 4\nmaxHeaps: 3\nregions:\n  - name: sram\n    size: 4KB\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, regions, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{Alignment: 4, MaxHeaps: 3}, cfg)
	require.Len(t, regions, 1)
	assert.Equal(t, "sram", regions[0].Name)
	assert.Equal(t, "4KB", regions[0].Size)
}

func TestLoadConfigRejectsBadAlignment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alignment: 3\n"), 0o644))

	_, _, err := LoadConfig(path)
	assert.Error(t, err)
}
