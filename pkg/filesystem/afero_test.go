package filesystem

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFS(t *testing.T) {
	m := NewMemory()
	dir := filepath.Join("/", "data", "templates")

	require.NoError(t, m.MkdirAll(dir, 0755))
	require.NoError(t, m.WriteFile(filepath.Join(dir, "b.json"), []byte("b"), 0644))
	require.NoError(t, m.WriteFile(filepath.Join(dir, "a.json.1.tmp"), []byte("a"), 0644))
	require.NoError(t, m.Rename(filepath.Join(dir, "a.json.1.tmp"), filepath.Join(dir, "a.json")))

	entries, err := m.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	assert.ElementsMatch(t, []string{"a.json", "b.json"}, names)

	data, err := m.ReadFile(filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))

	_, err = m.ReadFile(dir)
	assert.ErrorIs(t, err, fs.ErrInvalid)

	require.NoError(t, m.Remove(filepath.Join(dir, "b.json")))
	_, err = m.Stat(filepath.Join(dir, "b.json"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
