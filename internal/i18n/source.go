// Package i18n resolves localized strings from TOML bundles with a language fallback
// chain and a per-locale cache.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/alexisbeaulieu97/workbench/internal/locale"
	"github.com/alexisbeaulieu97/workbench/internal/logger"
)

// DefaultBundle is the bundle name of the embedded host strings.
const DefaultBundle = "strings"

//go:embed locales/*.toml
var embedded embed.FS

// Embedded returns the bundles compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		panic(err)
	}
	return sub
}

// Source resolves a bundle for one locale. Implementations return the merged
// key/value map for the whole fallback chain.
type Source interface {
	Load(bundle string, l locale.Locale) map[string]string
}

// FSSource reads "<bundle>.toml" (root) and "<bundle>.<tag>.toml" files from a
// filesystem.
type FSSource struct {
	fsys   fs.FS
	logger *logger.Logger
}

// NewFSSource creates a source over fsys.
func NewFSSource(fsys fs.FS, log *logger.Logger) *FSSource {
	return &FSSource{fsys: fsys, logger: log.Component("i18n")}
}

// Chain returns the candidate tags for l, most specific first. The empty string
// denotes the root bundle.
func Chain(l locale.Locale) []string {
	var chain []string
	add := func(tag string) {
		for _, existing := range chain {
			if existing == tag {
				return
			}
		}
		chain = append(chain, tag)
	}

	if !l.IsZero() {
		add(l.String())
		if lang := l.Language(); lang != "" {
			if region := l.Region(); region != "" {
				add(lang + "-" + region)
			}
			add(lang)
		}
	}
	add("")
	return chain
}

// Load merges the bundle files along the fallback chain. Missing files are skipped
// silently; malformed files are logged and skipped.
func (s *FSSource) Load(bundle string, l locale.Locale) map[string]string {
	merged := make(map[string]string)
	chain := Chain(l)

	// least specific first so more specific files overwrite
	for i := len(chain) - 1; i >= 0; i-- {
		name := bundle + ".toml"
		if chain[i] != "" {
			name = bundle + "." + chain[i] + ".toml"
		}

		values, err := s.readFile(name)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.logger.WithFields(map[string]any{"file": name}).Error(err, "skipping malformed bundle")
			}
			continue
		}
		for k, v := range values {
			merged[k] = v
		}
	}
	return merged
}

// Files lists the bundle files available for bundle, sorted.
func (s *FSSource) Files(bundle string) ([]string, error) {
	matches, err := fs.Glob(s.fsys, bundle+"*.toml")
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

func (s *FSSource) readFile(name string) (map[string]string, error) {
	data, err := fs.ReadFile(s.fsys, path.Clean(name))
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode parses a TOML bundle. A leading UTF-8 byte order mark is ignored and nested
// tables are flattened to dotted keys.
func Decode(data []byte) (map[string]string, error) {
	clean, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(clean, &raw); err != nil {
		return nil, fmt.Errorf("parse bundle: %w", err)
	}

	out := make(map[string]string)
	flatten("", raw, out)
	return out, nil
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch value := v.(type) {
		case map[string]any:
			flatten(key, value, out)
		case string:
			out[key] = value
		default:
			out[key] = fmt.Sprint(value)
		}
	}
}

// Overlay consults override first and base second, per key.
type Overlay struct {
	Base     Source
	Override Source
}

// Load merges both sources, override winning.
func (o Overlay) Load(bundle string, l locale.Locale) map[string]string {
	merged := make(map[string]string)
	if o.Base != nil {
		for k, v := range o.Base.Load(bundle, l) {
			merged[k] = v
		}
	}
	if o.Override != nil {
		for k, v := range o.Override.Load(bundle, l) {
			merged[k] = v
		}
	}
	return merged
}
