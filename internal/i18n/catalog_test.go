package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/workbench/internal/locale"
)

func fallbackFS() fstest.MapFS {
	return fstest.MapFS{
		"app.toml": {Data: []byte(`
greeting = "Hello"
farewell = "Goodbye"
[menu]
file = "File"
`)},
		"app.zh.toml": {Data: []byte(`
greeting = "你好"
farewell = "再见"
`)},
		"app.zh-CN.toml": {Data: []byte("\xef\xbb\xbfgreeting = \"您好\"\n")},
		"app.de.toml":    {Data: []byte(`this is = not toml =`)},
	}
}

func TestChainOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"zh-CN", "zh", ""}, Chain(locale.MustParse("zh-CN")))
	assert.Equal(t, []string{"ja", ""}, Chain(locale.MustParse("ja")))
	assert.Equal(t, []string{""}, Chain(locale.Locale{}))
}

func TestFSSourceMergesMostSpecificFirst(t *testing.T) {
	t.Parallel()

	src := NewFSSource(fallbackFS(), nil)
	values := src.Load("app", locale.MustParse("zh-CN"))

	assert.Equal(t, "您好", values["greeting"], "region file wins and its BOM is ignored")
	assert.Equal(t, "再见", values["farewell"], "language file fills in")
	assert.Equal(t, "File", values["menu.file"], "root fills the rest, nested keys flattened")

	tw := src.Load("app", locale.MustParse("zh-TW"))
	assert.Equal(t, "你好", tw["greeting"])
}

func TestFSSourceSkipsMalformedFiles(t *testing.T) {
	t.Parallel()

	src := NewFSSource(fallbackFS(), nil)
	values := src.Load("app", locale.MustParse("de"))
	assert.Equal(t, "Hello", values["greeting"])
}

func TestCatalogReturnsKeyWhenMissing(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog(NewFSSource(fallbackFS(), nil), "app", nil)
	for _, tag := range []string{"en", "zh-CN", "de", "ko"} {
		assert.Equal(t, "no.such.key", catalog.Translate(locale.MustParse(tag), "no.such.key"), tag)
	}

	_, ok := catalog.Lookup(locale.English, "no.such.key")
	assert.False(t, ok)

	missing := NewCatalog(NewFSSource(fstest.MapFS{}, nil), "absent", nil)
	assert.Equal(t, "greeting", missing.Translate(locale.English, "greeting"))
}

func TestCatalogCacheDroppedOnLocaleChange(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog(NewFSSource(fallbackFS(), nil), "app", nil)
	svc := locale.NewService(locale.English, nil, nil)
	svc.Subscribe(catalog)

	assert.Equal(t, "Hello", catalog.Translate(svc.Current(), "greeting"))
	assert.Equal(t, 1, catalog.Cached())

	svc.SetCurrent(locale.MustParse("zh-CN"))
	assert.Zero(t, catalog.Cached())
	assert.Equal(t, "您好", catalog.Translate(svc.Current(), "greeting"))
}

type panickingSource struct{}

func (panickingSource) Load(string, locale.Locale) map[string]string {
	panic("bundle exploded")
}

func TestCatalogTranslateRecoversFromSourcePanic(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog(panickingSource{}, "app", nil)
	require.NotPanics(t, func() {
		assert.Equal(t, "greeting", catalog.Translate(locale.English, "greeting"))
	})
}

func TestTranslatef(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog(NewFSSource(Embedded(), nil), DefaultBundle, nil)
	assert.Equal(t, "3 plugins loaded", catalog.Translatef(locale.English, "status.plugins", 3))
	assert.Equal(t, "Ready", catalog.Translatef(locale.English, "status.ready"))
}

func TestOverlayPrefersOverride(t *testing.T) {
	t.Parallel()

	override := NewFSSource(fstest.MapFS{
		"strings.toml": {Data: []byte("[status]\nready = \"Go!\"\n")},
	}, nil)
	src := Overlay{Base: NewFSSource(Embedded(), nil), Override: override}

	values := src.Load(DefaultBundle, locale.English)
	assert.Equal(t, "Go!", values["status.ready"])
	assert.Equal(t, "Developer Workbench", values["app.title"])
}
