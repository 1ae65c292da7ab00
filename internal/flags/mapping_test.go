package flags

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/cricketfeed/internal/config"
)

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "flags", "mapping.json"))

	m, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, m.IDToName)
	assert.Empty(t, m.IDToPath)
	assert.NotNil(t, m.IDToName)
	assert.NotNil(t, m.IDToPath)
}

func TestFileStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags", "mapping.json")
	s := NewFileStore(path)

	m := NewMapping()
	m.IDToName["182"] = "Oman"
	m.IDToPath["182"] = "/static/flags/by-name/oman.gif"
	require.NoError(t, s.Save(context.Background(), m))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file must not survive a save")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id_to_name":{"182":"Oman"},"id_to_path":{"182":"/static/flags/by-name/oman.gif"}}`, string(raw))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
}

func TestFileStore_PartialKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id_to_name":{"1":"Pakistan"}}`), 0o644))

	m, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Pakistan", m.IDToName["1"])
	assert.NotNil(t, m.IDToPath)
}

func TestMapping_CloneIsDeep(t *testing.T) {
	m := NewMapping()
	m.IDToName["1"] = "A"
	c := m.Clone()
	c.IDToName["1"] = "B"
	assert.Equal(t, "A", m.IDToName["1"])
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	store, pool, err := OpenStore(context.Background(), &config.Config{FlagsStore: config.FlagsStoreFile, StaticDir: dir})
	require.NoError(t, err)
	assert.Nil(t, pool)
	require.IsType(t, &FileStore{}, store)
	assert.Equal(t, filepath.Join(dir, "flags", "mapping.json"), store.(*FileStore).Path())

	store, _, err = OpenStore(context.Background(), &config.Config{FlagsStore: config.FlagsStoreMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	_, _, err = OpenStore(context.Background(), &config.Config{FlagsStore: "redis"})
	assert.Error(t, err)
}
