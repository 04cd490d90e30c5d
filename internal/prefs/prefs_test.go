package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	dir := t.TempDir()
	file, err := OpenFile(filepath.Join(dir, "nested", "prefs.json"))
	require.NoError(t, err)
	db, err := OpenSQLite(filepath.Join(dir, "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"file":   file,
		"sqlite": db,
	}
}

func TestStoresRoundTrip(t *testing.T) {
	t.Parallel()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, "fallback", store.GetString(KeyLocale, "fallback"))
			assert.True(t, store.GetBool(EnabledKey("com.example.x"), true))

			require.NoError(t, store.PutString(KeyLocale, "zh-CN"))
			require.NoError(t, store.PutString(KeyLocale, "ja"))
			require.NoError(t, store.PutBool(KeyThemeDark, true))

			assert.Equal(t, "ja", store.GetString(KeyLocale, ""))
			assert.True(t, store.GetBool(KeyThemeDark, false))
		})
	}
}

func TestUnparsableBoolReadsAsDefault(t *testing.T) {
	t.Parallel()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.PutString("flag", "maybe"))
			assert.True(t, store.GetBool("flag", true))
			assert.False(t, store.GetBool("flag", false))
		})
	}
}

func TestFileStorePersistsAcrossOpens(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prefs.json")
	first, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, first.PutBool(EnabledKey("com.example.x"), false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "1.0", doc.Version)
	assert.Equal(t, "false", doc.Values["plugin.com.example.x.enabled"])

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file is renamed away")

	second, err := OpenFile(path)
	require.NoError(t, err)
	assert.False(t, second.GetBool(EnabledKey("com.example.x"), true))
}

func TestFileStoreRejectsCorruptDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := OpenFile(path)
	require.Error(t, err)
}

func TestSQLiteStorePersistsAcrossOpens(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prefs.db")
	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.PutString(KeyThemeName, "dark"))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()
	assert.Equal(t, "dark", second.GetString(KeyThemeName, ""))

	require.NoError(t, second.Delete(KeyThemeName))
	require.NoError(t, second.Delete(KeyThemeName))
	assert.Empty(t, second.GetString(KeyThemeName, ""))
}

func TestScopeIsolatesPlugins(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	a := Scope(store, PluginPrefix("com.example.a"))
	b := Scope(store, PluginPrefix("com.example.b"))

	require.NoError(t, a.PutString("root", "/src"))
	require.NoError(t, a.PutBool("enabled", false))

	assert.Equal(t, "/src", a.GetString("root", ""))
	assert.Empty(t, b.GetString("root", ""))
	assert.Equal(t, "/src", store.GetString("plugin.com.example.a/root", ""))

	// the scoped "enabled" key does not alias the host-level enabled flag
	assert.True(t, store.GetBool(EnabledKey("com.example.a"), true))
	require.NoError(t, a.Close())
}

func TestOpenSelectsBackend(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	store, err := Open("", "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, store)

	store, err = Open(BackendFile, filepath.Join(dir, "p.json"))
	require.NoError(t, err)
	assert.IsType(t, &File{}, store)

	store, err = Open(BackendSQLite, filepath.Join(dir, "p.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, store)
	require.NoError(t, store.Close())

	_, err = Open("etcd", "")
	require.Error(t, err)
}
