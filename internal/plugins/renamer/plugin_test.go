package renamer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/workbench/internal/plugin/plugintest"
)

func TestPluginPanel(t *testing.T) {
	t.Parallel()

	h := plugintest.Load(t, Implementation)
	panel, ok := h.Plugin.UIHandle().(*Panel)
	require.True(t, ok)

	require.Error(t, panel.Apply())
	assert.Contains(t, panel.View(80), "No planned changes")

	root := t.TempDir()
	writeFile(t, root, "com/a/X.java", "package com.a;\n")

	plan, err := panel.Plan(root, "com.a", "com.z", nil)
	require.NoError(t, err)
	assert.Same(t, plan, panel.Current())

	_, from, to := panel.Last()
	assert.Equal(t, "com.a", from)
	assert.Equal(t, "com.z", to)

	view := panel.View(120)
	assert.Contains(t, view, "1 files would change")
	assert.Contains(t, view, "com/a/X.java -> com/z/X.java")

	h.SwitchLocale("ja")
	assert.Equal(t, "パッケージ名変更", h.Plugin.Describe().Name)
	assert.Contains(t, panel.View(120), "変更前")

	require.NoError(t, panel.Apply())
	assert.Nil(t, panel.Current())
	assert.Equal(t, "package com.z;\n", readFile(t, root, "com/z/X.java"))
}
