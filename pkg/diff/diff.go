// Package diff renders line-oriented unified diffs.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	contextLines    = 3
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
	noNewline       = "\\ No newline at end of file"
)

type opKind int

const (
	opEqual opKind = iota
	opDelete
	opInsert
)

type op struct {
	kind opKind
	line string
}

// GenerateUnifiedDiff compares expected and actual line by line and renders a unified
// diff with three lines of context. It returns "" for identical content and truncates
// output beyond 10,000 lines.
func GenerateUnifiedDiff(expected, actual []byte, expectedLabel, actualLabel string) string {
	if bytes.Equal(expected, actual) {
		return ""
	}

	ops := lineOps(string(expected), string(actual))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- %s\n", expectedLabel)
	fmt.Fprintf(&buf, "+++ %s\n", actualLabel)
	for _, h := range hunks(ops) {
		writeHunk(&buf, ops, h)
	}

	result := buf.String()
	lines := strings.Split(result, "\n")
	if len(lines) > maxDiffLines {
		return strings.Join(lines[:maxDiffLines], "\n") + "\n" + truncateMessage + "\n"
	}
	return result
}

// Stats counts the added and removed lines of a unified diff.
func Stats(unified string) (added, removed int) {
	for _, line := range strings.Split(unified, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed
}

func lineOps(expected, actual string) []op {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(expected, actual)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var ops []op
	for _, d := range diffs {
		kind := opEqual
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			kind = opDelete
		case diffmatchpatch.DiffInsert:
			kind = opInsert
		}
		for _, line := range splitKeepNewline(d.Text) {
			ops = append(ops, op{kind: kind, line: line})
		}
	}
	return ops
}

func splitKeepNewline(text string) []string {
	var lines []string
	for text != "" {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:idx+1])
		text = text[idx+1:]
	}
	return lines
}

// hunk is a half-open range of ops.
type hunk struct{ start, end int }

func hunks(ops []op) []hunk {
	var out []hunk
	for i := 0; i < len(ops); i++ {
		if ops[i].kind == opEqual {
			continue
		}
		start := max(0, i-contextLines)
		last := i
		for j := i + 1; j < len(ops) && j <= last+2*contextLines; j++ {
			if ops[j].kind != opEqual {
				last = j
			}
		}
		end := min(len(ops), last+contextLines+1)
		if n := len(out); n > 0 && start <= out[n-1].end {
			out[n-1].end = end
		} else {
			out = append(out, hunk{start: start, end: end})
		}
		i = last
	}
	return out
}

func writeHunk(buf *bytes.Buffer, ops []op, h hunk) {
	oldBefore, newBefore := 0, 0
	for _, o := range ops[:h.start] {
		if o.kind != opInsert {
			oldBefore++
		}
		if o.kind != opDelete {
			newBefore++
		}
	}
	oldCount, newCount := 0, 0
	for _, o := range ops[h.start:h.end] {
		if o.kind != opInsert {
			oldCount++
		}
		if o.kind != opDelete {
			newCount++
		}
	}

	fmt.Fprintf(buf, "@@ -%s +%s @@\n", hunkRange(oldBefore, oldCount), hunkRange(newBefore, newCount))
	for _, o := range ops[h.start:h.end] {
		prefix := " "
		switch o.kind {
		case opDelete:
			prefix = "-"
		case opInsert:
			prefix = "+"
		}
		buf.WriteString(prefix)
		buf.WriteString(o.line)
		if !strings.HasSuffix(o.line, "\n") {
			buf.WriteString("\n" + noNewline + "\n")
		}
	}
}

func hunkRange(before, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", before)
	}
	if count == 1 {
		return fmt.Sprintf("%d", before+1)
	}
	return fmt.Sprintf("%d,%d", before+1, count)
}
