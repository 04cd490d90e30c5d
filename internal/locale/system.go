package locale

import (
	"os"
	"strings"
)

var systemLocaleVars = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// SystemLocale reads the process locale from the environment. The C and POSIX
// locales carry no language and are skipped; English is returned when nothing
// usable is set.
func SystemLocale() Locale {
	return systemLocaleFrom(os.Getenv)
}

func systemLocaleFrom(getenv func(string) string) Locale {
	for _, name := range systemLocaleVars {
		value := strings.TrimSpace(getenv(name))
		if value == "" {
			continue
		}
		base := value
		if i := strings.IndexAny(base, ".@"); i >= 0 {
			base = base[:i]
		}
		if base == "C" || base == "POSIX" {
			continue
		}
		if l, err := Parse(value); err == nil {
			return l
		}
	}
	return English
}
