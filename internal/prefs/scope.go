package prefs

// Scoped is a view of a Store where every key is prefixed.
type Scoped struct {
	store  Store
	prefix string
}

// Scope returns a prefixed view over store. Closing the view does not close store.
func Scope(store Store, prefix string) *Scoped {
	return &Scoped{store: store, prefix: prefix}
}

// Prefix returns the key prefix of the view.
func (s *Scoped) Prefix() string {
	return s.prefix
}

func (s *Scoped) GetString(key, def string) string {
	return s.store.GetString(s.prefix+key, def)
}

func (s *Scoped) PutString(key, value string) error {
	return s.store.PutString(s.prefix+key, value)
}

func (s *Scoped) GetBool(key string, def bool) bool {
	return s.store.GetBool(s.prefix+key, def)
}

func (s *Scoped) PutBool(key string, value bool) error {
	return s.store.PutBool(s.prefix+key, value)
}

func (s *Scoped) Close() error { return nil }
