package config

// Config represents the host configuration document.
type Config struct {
	HostVersion string          `yaml:"host_version,omitempty"`
	Log         LogSettings     `yaml:"log,omitempty"`
	Preferences PrefSettings    `yaml:"preferences,omitempty"`
	I18n        I18nSettings    `yaml:"i18n,omitempty"`
	Locales     []string        `yaml:"locales,omitempty" validate:"omitempty,unique,dive,locale_tag"`
	Theme       ThemeSettings   `yaml:"theme,omitempty"`
	Plugins     []string        `yaml:"plugins,omitempty" validate:"omitempty,unique,dive,plugin_impl"`
	Counter     CounterDefaults `yaml:"counter,omitempty"`
}

// LogSettings controls the host logger.
type LogSettings struct {
	Level string `yaml:"level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	Human bool   `yaml:"human,omitempty"`
}

// PrefSettings selects the preference backend.
type PrefSettings struct {
	Backend string `yaml:"backend,omitempty" validate:"omitempty,oneof=memory file sqlite"`
	Path    string `yaml:"path,omitempty"`
}

// I18nSettings locates localized string bundles. An empty Dir uses only the bundles
// compiled into the binary.
type I18nSettings struct {
	Bundle string `yaml:"bundle,omitempty" validate:"omitempty,alphanum"`
	Dir    string `yaml:"dir,omitempty"`
}

// ThemeSettings holds the palette used when no preference has been saved.
type ThemeSettings struct {
	Default string `yaml:"default,omitempty"`
}

// CounterDefaults seeds the line counter before the user saves settings of their own.
type CounterDefaults struct {
	Extensions  []string `yaml:"extensions,omitempty"`
	ExcludeDirs []string `yaml:"exclude_dirs,omitempty"`
	Workers     int      `yaml:"workers,omitempty" validate:"omitempty,min=1,max=64"`
}
