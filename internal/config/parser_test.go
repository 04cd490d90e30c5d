package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/workbench/internal/plugins/counter"
	"github.com/alexisbeaulieu97/workbench/internal/plugins/formatter"
	"github.com/alexisbeaulieu97/workbench/internal/plugins/renamer"
	workbencherrors "github.com/alexisbeaulieu97/workbench/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	validYAML := `host_version: "1.4.0"
log:
  level: debug
  human: true
preferences:
  backend: sqlite
  path: /tmp/workbench/prefs.db
locales: [en, de, zh_CN]
theme:
  default: dark
plugins:
  - github.com/alexisbeaulieu97/workbench/internal/plugins/counter.Plugin
counter:
  extensions: [".go"]
  workers: 2
`

	malformedYAML := `log:
  level: [debug
`

	badLocale := `locales: ["en", "not a tag!"]`

	badImpl := `plugins: ["counter"]`

	duplicatePlugins := `plugins:
  - example.com/a.Plugin
  - example.com/a.Plugin
`

	badBackend := `preferences:
  backend: etcd
`

	badHostVersion := `host_version: "next"`

	cases := []struct {
		name     string
		contents string
		assert   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:     "valid configuration is parsed",
			contents: validYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				assert.Equal(t, "1.4.0", cfg.HostVersion)
				assert.Equal(t, "debug", cfg.Log.Level)
				assert.True(t, cfg.Log.Human)
				assert.Equal(t, "sqlite", cfg.Preferences.Backend)
				assert.Equal(t, []string{"en", "de", "zh_CN"}, cfg.Locales)
				assert.Equal(t, "dark", cfg.Theme.Default)
				assert.Equal(t, []string{counter.Implementation}, cfg.Plugins)
				assert.Equal(t, 2, cfg.Counter.Workers)
				assert.NotEmpty(t, cfg.Counter.ExcludeDirs, "unset sections are defaulted")
				assert.Equal(t, "strings", cfg.I18n.Bundle)
			},
		},
		{
			name:     "malformed yaml reports a parse error",
			contents: malformedYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				var parseErr *workbencherrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				assert.Nil(t, cfg)
			},
		},
		{
			name:     "invalid locale tag",
			contents: badLocale,
			assert: func(t *testing.T, _ *Config, err error) {
				var ve *workbencherrors.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Contains(t, ve.Field, "locales")
			},
		},
		{
			name:     "implementation without type name",
			contents: badImpl,
			assert: func(t *testing.T, _ *Config, err error) {
				var ve *workbencherrors.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Contains(t, ve.Message, "plugin_impl")
			},
		},
		{
			name:     "duplicate implementations",
			contents: duplicatePlugins,
			assert: func(t *testing.T, _ *Config, err error) {
				var ve *workbencherrors.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Contains(t, ve.Message, "unique")
			},
		},
		{
			name:     "unknown preference backend",
			contents: badBackend,
			assert: func(t *testing.T, _ *Config, err error) {
				var ve *workbencherrors.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "preferences.backend", ve.Field)
			},
		},
		{
			name:     "host version must be semver or dev",
			contents: badHostVersion,
			assert: func(t *testing.T, _ *Config, err error) {
				var ve *workbencherrors.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "host_version", ve.Field)
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.contents), 0o644))

			cfg, err := Load(path)
			tc.assert(t, cfg, err)
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Preferences.Backend)
	assert.Equal(t, "preferences.json", filepath.Base(cfg.Preferences.Path))
	assert.Len(t, cfg.Locales, 8)
	assert.Equal(t, []string{counter.Implementation, formatter.Implementation, renamer.Implementation}, cfg.Plugins)
	require.NoError(t, Validate(cfg))
}

func TestExtractLine(t *testing.T) {
	t.Parallel()

	_, err := Parse("inline.yaml", []byte("log:\n  level: [debug\n"))
	var parseErr *workbencherrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Positive(t, parseErr.Line)
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "prefs.json"), ExpandPath("~/prefs.json"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.Equal(t, "relative/~", ExpandPath("relative/~"))
}
