// Test Type: Unit Test
// Description: Tests for the process-wide config store and state persistence

package config_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/mjstudio/pkg/config"
	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSetLastFolderWritesState(t *testing.T) {
	fs := testutil.NewMemoryFS()
	cfg, err := config.Load(config.Sources{})
	require.NoError(t, err)
	store := config.NewStore(cfg, fs, "/state/mjstudio/state.toml")

	require.NoError(t, store.SetLastFolder("/home/me/exports"))

	assert.Equal(t, "/home/me/exports", store.LastFolder())
	assert.Equal(t, "/home/me/exports", store.Get().Export.LastFolder)

	data, err := fs.ReadFile("/state/mjstudio/state.toml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "[export]")
	assert.Contains(t, string(data), "last_folder")
	assert.Contains(t, string(data), "/home/me/exports")
}

func TestStoreSaveStateFailure(t *testing.T) {
	fs := testutil.NewMemoryFS()
	fs.WithError("/state/state.toml", stderrors.New("disk full"))
	store := config.NewStore(config.Config{}, fs, "/state/state.toml")

	err := store.SetLastFolder("/x")

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigWrite))
	assert.Equal(t, "/x", store.LastFolder(), "in-memory value is kept")
}

func TestStoreWithoutStatePath(t *testing.T) {
	store := config.NewStore(config.Config{}, testutil.NewMemoryFS(), "")
	assert.NoError(t, store.SetLastFolder("/x"))
}

func TestStoreGetReturnsCopy(t *testing.T) {
	store := config.NewStore(config.Config{Compiler: config.CompilerConfig{Args: []string{"a"}}}, testutil.NewMemoryFS(), "")

	cfg := store.Get()
	cfg.Compiler.Args[0] = "changed"

	assert.Equal(t, "a", store.Get().Compiler.Args[0])
}
