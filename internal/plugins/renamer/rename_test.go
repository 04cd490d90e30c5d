package renamer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"com", "com.example", "org.acme_1.Core"} {
		assert.NoError(t, Validate(name), name)
	}
	for _, name := range []string{"", "  ", "com.", ".com", "com..example", "1com", "com/example", "com example"} {
		assert.Error(t, Validate(name), name)
	}
}

func TestReplacePackage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		in    string
		want  string
		count int
	}{
		{"package line", "package com.example.old;\n", "package com.example.fresh;\n", 1},
		{"nested prefix", "import com.example.old.util.Strings;", "import com.example.fresh.util.Strings;", 1},
		{"longer identifier untouched", "com.example.oldish", "com.example.oldish", 0},
		{"embedded in other package", "org.com.example.old", "org.com.example.old", 0},
		{"several occurrences", "com.example.old com.example.old.A", "com.example.fresh com.example.fresh.A", 2},
		{"quoted", `"com.example.old"`, `"com.example.fresh"`, 1},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, n := ReplacePackage(tc.in, "com.example.old", "com.example.fresh")
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.count, n)
		})
	}
}

func TestPlanAndApply(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "src/com/example/old/A.java", "package com.example.old;\n\nclass A {}\n")
	writeFile(t, root, "src/com/example/old/sub/B.java", "package com.example.old.sub;\n")
	writeFile(t, root, "src/com/example/app/Main.java", "import com.example.old.A;\n")
	writeFile(t, root, "src/com/example/app/Other.java", "class Other {}\n")
	writeFile(t, root, "pom.xml", "<group>com.example.old</group>\n")
	writeFile(t, root, "target/com/example/old/A.java", "package com.example.old;\n")

	plan, err := Prepare(root, "com.example.old", "com.example.fresh", nil)
	require.NoError(t, err)
	require.Len(t, plan.Changes, 4)

	byOld := make(map[string]Change)
	for _, c := range plan.Changes {
		rel, err := filepath.Rel(root, c.OldPath)
		require.NoError(t, err)
		byOld[filepath.ToSlash(rel)] = c
	}
	a := byOld["src/com/example/old/A.java"]
	assert.True(t, a.Moved())
	assert.Equal(t, filepath.Join(root, "src", "com", "example", "fresh", "A.java"), a.NewPath)
	assert.Contains(t, a.Diff, "-package com.example.old;")
	assert.Contains(t, a.Diff, "+package com.example.fresh;")

	main := byOld["src/com/example/app/Main.java"]
	assert.False(t, main.Moved())
	assert.Equal(t, 1, main.Replacements)

	require.NoError(t, Apply(plan))

	assert.Equal(t, "package com.example.fresh;\n\nclass A {}\n", readFile(t, root, "src/com/example/fresh/A.java"))
	assert.Equal(t, "package com.example.fresh.sub;\n", readFile(t, root, "src/com/example/fresh/sub/B.java"))
	assert.Equal(t, "import com.example.fresh.A;\n", readFile(t, root, "src/com/example/app/Main.java"))
	assert.Equal(t, "<group>com.example.fresh</group>\n", readFile(t, root, "pom.xml"))
	assert.Equal(t, "package com.example.old;\n", readFile(t, root, "target/com/example/old/A.java"), "build output is skipped")

	_, err = os.Stat(filepath.Join(root, "src", "com", "example", "old"))
	assert.True(t, os.IsNotExist(err), "emptied package directories are removed")
}

func TestPlanRejectsBadInput(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, err := Prepare(root, "", "com.b", nil)
	require.Error(t, err)
	_, err = Prepare(root, "com.a", "com..b", nil)
	require.Error(t, err)
	_, err = Prepare(root, "com.a", "com.a", nil)
	require.Error(t, err)
	_, err = Prepare(filepath.Join(root, "missing"), "com.a", "com.b", nil)
	require.Error(t, err)
}

func TestApplyRefusesToOverwrite(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "com/a/X.java", "package com.a;\n")
	writeFile(t, root, "com/b/X.java", "package com.b;\n")

	plan, err := Prepare(root, "com.a", "com.b", []string{"java"})
	require.NoError(t, err)
	require.Error(t, Apply(plan))

	assert.Equal(t, "package com.a;\n", readFile(t, root, "com/a/X.java"))
	assert.Equal(t, "package com.b;\n", readFile(t, root, "com/b/X.java"))
}
