// Package locale owns the active display locale, the host's supported locale list and
// the locale-change broadcast.
package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Locale identifies a language with an optional region, e.g. "zh-CN" or "de".
type Locale struct {
	tag language.Tag
}

// English is the fallback locale when nothing else resolves.
var English = Locale{tag: language.English}

// New wraps a language tag.
func New(tag language.Tag) Locale {
	return Locale{tag: tag}
}

// Parse accepts BCP 47 tags ("zh-CN") as well as POSIX locale names ("zh_CN.UTF-8",
// "de_DE@euro").
func Parse(s string) (Locale, error) {
	raw := strings.TrimSpace(s)
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.ReplaceAll(raw, "_", "-")
	if raw == "" {
		return Locale{}, fmt.Errorf("empty locale %q", s)
	}

	tag, err := language.Parse(raw)
	if err != nil {
		return Locale{}, fmt.Errorf("parse locale %q: %w", s, err)
	}
	return Locale{tag: tag}, nil
}

// MustParse is Parse for compile-time constants.
func MustParse(s string) Locale {
	l, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return l
}

// Tag returns the underlying BCP 47 tag.
func (l Locale) Tag() language.Tag {
	return l.tag
}

// String renders the canonical BCP 47 form.
func (l Locale) String() string {
	return l.tag.String()
}

// Language returns the explicit language subtag, e.g. "zh".
func (l Locale) Language() string {
	base, _, _ := l.tag.Raw()
	return base.String()
}

// Region returns the explicit region subtag, or "" when the tag has none.
func (l Locale) Region() string {
	_, _, region := l.tag.Raw()
	if region == (language.Region{}) {
		return ""
	}
	return region.String()
}

// Equal reports whether both locales carry the same tag.
func (l Locale) Equal(other Locale) bool {
	return l.tag.String() == other.tag.String()
}

// IsZero reports whether l was never set.
func (l Locale) IsZero() bool {
	return l.tag == language.Und
}

// Matches reports whether l satisfies the supported entry. Languages must be equal;
// regions are compared only when the supported entry specifies one, so "zh" accepts
// any Chinese variant while "zh-CN" accepts only mainland Chinese.
func (l Locale) Matches(supported Locale) bool {
	if l.Language() != supported.Language() {
		return false
	}
	if region := supported.Region(); region != "" {
		return l.Region() == region
	}
	return true
}

// DisplayName returns the language's name in its own script, e.g. "Deutsch".
func (l Locale) DisplayName() string {
	if name := display.Self.Name(l.tag); name != "" {
		return name
	}
	return l.String()
}

// Default returns the host's supported locales in canonical display order.
func Default() []Locale {
	return []Locale{
		English,
		MustParse("zh-CN"),
		MustParse("zh-TW"),
		MustParse("ja"),
		MustParse("es"),
		MustParse("de"),
		MustParse("fr"),
		MustParse("pt"),
	}
}

// ParseAll parses a list of tags, preserving order.
func ParseAll(tags []string) ([]Locale, error) {
	out := make([]Locale, 0, len(tags))
	for _, t := range tags {
		l, err := Parse(t)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// FirstMatch returns the first supported entry that l matches.
func FirstMatch(l Locale, supported []Locale) (Locale, bool) {
	for _, s := range supported {
		if l.Matches(s) {
			return s, true
		}
	}
	return Locale{}, false
}

// ResolveInitial picks the startup locale: a saved preference wins, then the first
// supported entry matching the system locale, then English.
func ResolveInitial(saved string, system Locale, supported []Locale) Locale {
	if strings.TrimSpace(saved) != "" {
		if l, err := Parse(saved); err == nil {
			return l
		}
	}
	if !system.IsZero() {
		if match, ok := FirstMatch(system, supported); ok {
			return match
		}
	}
	return English
}
