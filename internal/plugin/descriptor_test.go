package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	workbencherrors "github.com/alexisbeaulieu97/workbench/pkg/errors"
)

func TestDescriptorValidate(t *testing.T) {
	t.Parallel()

	valid := Descriptor{ID: "com.github.tools.code-counter", Name: "Counter", Version: "1.0.0"}
	require.NoError(t, valid.Validate())

	cases := map[string]Descriptor{
		"missing id":      {Name: "x", Version: "1.0.0"},
		"uppercase id":    {ID: "Com.Example", Name: "x", Version: "1.0.0"},
		"single segment":  {ID: "counter", Name: "x", Version: "1.0.0"},
		"slash in id":     {ID: "com.example/evil", Name: "x", Version: "1.0.0"},
		"missing name":    {ID: "com.example.x", Version: "1.0.0"},
		"bad version":     {ID: "com.example.x", Name: "x", Version: "1.0"},
		"bad min version": {ID: "com.example.x", Name: "x", Version: "1.0.0", MinHostVersion: "latest"},
	}
	for name, d := range cases {
		err := d.Validate()
		var ve *workbencherrors.ValidationError
		assert.True(t, errors.As(err, &ve), name)
	}
}

func TestHostCompatibility(t *testing.T) {
	t.Parallel()

	d := Descriptor{ID: "com.example.x", MinHostVersion: "1.2.0"}

	require.NoError(t, CheckHostCompatibility(d, "1.2.0"))
	require.NoError(t, CheckHostCompatibility(d, "v1.3.1"))
	require.NoError(t, CheckHostCompatibility(d, "dev"), "development builds skip the check")
	require.NoError(t, CheckHostCompatibility(Descriptor{ID: "com.example.y"}, "0.0.1"))

	err := CheckHostCompatibility(d, "1.1.9")
	var incompatible ErrIncompatibleHost
	require.ErrorAs(t, err, &incompatible)
	assert.Equal(t, "1.1.9", incompatible.Host)
	assert.Contains(t, err.Error(), "requires host 1.2.0 or newer")
}

func TestCatalogDiscovery(t *testing.T) {
	t.Parallel()

	impl := "github.com/alexisbeaulieu97/workbench/internal/plugin.catalogTestPlugin"
	require.NoError(t, Register(impl, func() (Plugin, error) {
		return NewMockPlugin("com.example.catalog"), nil
	}))
	require.Error(t, Register(impl, func() (Plugin, error) { return nil, nil }))
	require.Error(t, Register("nil.Constructor", nil))
	assert.Contains(t, Implementations(), impl)

	reg, events, _ := newTestRegistry(t, FromCatalog(impl, "example.com/missing.Plugin"))
	reg.LoadAll()

	require.Len(t, reg.List(), 1)
	assert.Equal(t, "com.example.catalog", reg.List()[0].Describe().ID)
	require.Len(t, events.errs, 1)

	var unknown ErrUnknownImplementation
	require.ErrorAs(t, events.errs[0], &unknown)
	assert.Equal(t, "example.com/missing.Plugin", unknown.Name)
	assert.Equal(t, 1, events.count("error:example.com/missing.Plugin"))
}

func TestStaticDiscoveryReturnsCopies(t *testing.T) {
	t.Parallel()

	discovery := Static(factoryFor(NewMockPlugin("com.example.a")))
	first := discovery()
	first[0].Name = "mutated"
	assert.Equal(t, "factory:com.example.a", discovery()[0].Name)
}
