package formatter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/workbench/internal/plugin/plugintest"
)

func TestPluginPanel(t *testing.T) {
	t.Parallel()

	h := plugintest.Load(t, Implementation)
	assert.Equal(t, ID, h.Plugin.Describe().ID)

	panel, ok := h.Plugin.UIHandle().(*Panel)
	require.True(t, ok)
	assert.Equal(t, DefaultOptions(), panel.Options())
	assert.Contains(t, panel.View(80), "Tab width 4, at most 1 blank lines")

	opts := DefaultOptions()
	opts.TabWidth = 2
	require.NoError(t, panel.SaveOptions(opts))
	require.Error(t, panel.SaveOptions(Options{}))
	assert.Equal(t, 2, panel.Options().TabWidth)
	assert.Equal(t, "2", h.Store.GetString("plugin."+ID+"/tab_width", ""))

	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("\tx  \n"), 0o644))

	result, err := panel.FormatFile(path, false)
	require.NoError(t, err)
	assert.Same(t, result, panel.Last())
	assert.Contains(t, panel.View(120), "1 lines would change")

	h.SwitchLocale("de")
	assert.Equal(t, "Code-Formatierer", h.Plugin.Describe().Name)
	assert.Contains(t, panel.View(120), "1 Zeilen würden sich ändern")
}
