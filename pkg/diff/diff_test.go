package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUnifiedDiffIdenticalContent(t *testing.T) {
	t.Parallel()

	content := []byte("line1\nline2\nline3\n")
	assert.Empty(t, GenerateUnifiedDiff(content, content, "a", "b"))
}

func TestGenerateUnifiedDiffSingleLineChange(t *testing.T) {
	t.Parallel()

	result := GenerateUnifiedDiff(
		[]byte("line1\nline2\nline3\n"),
		[]byte("line1\nmodified\nline3\n"),
		"expected", "actual",
	)

	want := "--- expected\n+++ actual\n@@ -1,3 +1,3 @@\n line1\n-line2\n+modified\n line3\n"
	assert.Equal(t, want, result)
}

func TestGenerateUnifiedDiffSeparatesDistantHunks(t *testing.T) {
	t.Parallel()

	var before, after []string
	for i := 1; i <= 30; i++ {
		line := fmt.Sprintf("line %d", i)
		before = append(before, line)
		switch i {
		case 2:
			after = append(after, "changed 2")
		case 25:
			after = append(after, "changed 25")
		default:
			after = append(after, line)
		}
	}

	result := GenerateUnifiedDiff(
		[]byte(strings.Join(before, "\n")+"\n"),
		[]byte(strings.Join(after, "\n")+"\n"),
		"old", "new",
	)

	assert.Equal(t, 2, strings.Count(result, "@@ -"))
	assert.Contains(t, result, "@@ -1,5 +1,5 @@")
	assert.Contains(t, result, "@@ -22,7 +22,7 @@")
	assert.NotContains(t, result, " line 12\n")

	added, removed := Stats(result)
	assert.Equal(t, 2, added)
	assert.Equal(t, 2, removed)
}

func TestGenerateUnifiedDiffEmptyOriginal(t *testing.T) {
	t.Parallel()

	result := GenerateUnifiedDiff(nil, []byte("new content\n"), "a", "b")
	assert.Contains(t, result, "@@ -0,0 +1 @@\n+new content\n")
}

func TestGenerateUnifiedDiffMissingTrailingNewline(t *testing.T) {
	t.Parallel()

	result := GenerateUnifiedDiff([]byte("old"), []byte("new"), "file1.txt", "file2.txt")

	require.True(t, strings.HasPrefix(result, "--- file1.txt\n+++ file2.txt\n"))
	assert.Contains(t, result, "-old\n"+noNewline+"\n")
	assert.Contains(t, result, "+new\n"+noNewline+"\n")
}

func TestGenerateUnifiedDiffTruncation(t *testing.T) {
	t.Parallel()

	var expected, actual []string
	for i := 0; i < 11000; i++ {
		expected = append(expected, "expected line")
		if i%2 == 0 {
			actual = append(actual, "actual line")
		} else {
			actual = append(actual, "expected line")
		}
	}

	result := GenerateUnifiedDiff(
		[]byte(strings.Join(expected, "\n")),
		[]byte(strings.Join(actual, "\n")),
		"expected", "actual",
	)

	assert.True(t, strings.HasSuffix(result, truncateMessage+"\n"))
	assert.LessOrEqual(t, strings.Count(result, "\n"), maxDiffLines+1)
}
