// Package renamer implements the package rename plugin.
package renamer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/alexisbeaulieu97/workbench/internal/fsutil"
	"github.com/alexisbeaulieu97/workbench/pkg/diff"
)

var packagePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// DefaultExtensions are the source files scanned when none are given.
var DefaultExtensions = []string{".java", ".kt", ".groovy", ".scala", ".xml", ".properties", ".gradle"}

var skippedDirs = map[string]bool{".git": true, ".svn": true, ".idea": true, "target": true, "build": true, "node_modules": true}

// Validate rejects empty or malformed dotted package names.
func Validate(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("package name is required")
	}
	if !packagePattern.MatchString(name) {
		return fmt.Errorf("%q is not a valid package name", name)
	}
	return nil
}

// Change is one file the rename touches.
type Change struct {
	OldPath      string      `json:"old_path"`
	NewPath      string      `json:"new_path"`
	Replacements int         `json:"replacements"`
	Diff         string      `json:"diff,omitempty"`
	Mode         fs.FileMode `json:"-"`
	content      string
}

// Moved reports whether the file changes location.
func (c Change) Moved() bool { return c.OldPath != c.NewPath }

// Plan is the full set of changes for renaming From to To under Root.
type Plan struct {
	Root    string   `json:"root"`
	From    string   `json:"from"`
	To      string   `json:"to"`
	Changes []Change `json:"changes"`
}

// Prepare scans root for files with one of exts and computes the rewritten content and
// destination of every file referring to from or living under its directory.
func Prepare(root, from, to string, exts []string) (*Plan, error) {
	if err := Validate(from); err != nil {
		return nil, err
	}
	if err := Validate(to); err != nil {
		return nil, err
	}
	if from == to {
		return nil, fmt.Errorf("source and target package are both %q", from)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	exts = normalizeExtensions(exts)

	fromDir := strings.ReplaceAll(from, ".", "/")
	toDir := strings.ReplaceAll(to, ".", "/")

	plan := &Plan{Root: root, From: from, To: to}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skippedDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !hasExtension(d.Name(), exts) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		newRel, moved := movePath(filepath.ToSlash(rel), fromDir, toDir)

		file, err := fsutil.ReadText(path, "")
		if err != nil {
			return err
		}
		rewritten, n := ReplacePackage(file.Content, from, to)
		if n == 0 && !moved {
			return nil
		}

		change := Change{
			OldPath:      path,
			NewPath:      filepath.Join(root, filepath.FromSlash(newRel)),
			Replacements: n,
			Mode:         file.Mode,
			content:      rewritten,
		}
		if n > 0 {
			change.Diff = diff.GenerateUnifiedDiff([]byte(file.Content), []byte(rewritten), rel, newRel)
		}
		plan.Changes = append(plan.Changes, change)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(plan.Changes, func(i, j int) bool { return plan.Changes[i].OldPath < plan.Changes[j].OldPath })
	return plan, nil
}

// Apply writes every change and moves files to their new location. It refuses to
// start when a destination already exists outside the plan.
func Apply(plan *Plan) error {
	sources := make(map[string]bool, len(plan.Changes))
	for _, c := range plan.Changes {
		sources[c.OldPath] = true
	}
	for _, c := range plan.Changes {
		if !c.Moved() || sources[c.NewPath] {
			continue
		}
		if _, err := os.Stat(c.NewPath); err == nil {
			return fmt.Errorf("destination %s already exists", c.NewPath)
		}
	}

	dirs := make(map[string]bool)
	for _, c := range plan.Changes {
		mode := c.Mode
		if mode == 0 {
			mode = fsutil.DefaultFileMode
		}
		if err := fsutil.WriteFileAtomic(c.NewPath, []byte(c.content), mode); err != nil {
			return fmt.Errorf("write %s: %w", c.NewPath, err)
		}
		if c.Moved() {
			if err := os.Remove(c.OldPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("remove %s: %w", c.OldPath, err)
			}
			dirs[filepath.Dir(c.OldPath)] = true
		}
	}
	pruneEmptyDirs(plan.Root, dirs)
	return nil
}

// ReplacePackage replaces whole-token occurrences of from, including "from." prefixes
// of nested names, and returns the number of replacements.
func ReplacePackage(content, from, to string) (string, int) {
	if from == "" {
		return content, 0
	}

	var b strings.Builder
	count, last := 0, 0
	for i := 0; ; {
		idx := strings.Index(content[i:], from)
		if idx < 0 {
			break
		}
		start := i + idx
		end := start + len(from)

		var before, after byte
		if start > 0 {
			before = content[start-1]
		}
		if end < len(content) {
			after = content[end]
		}
		if isIdentByte(before) || before == '.' || isIdentByte(after) {
			i = start + 1
			continue
		}

		b.WriteString(content[last:start])
		b.WriteString(to)
		last, i = end, end
		count++
	}
	b.WriteString(content[last:])
	return b.String(), count
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// movePath rewrites the first fromDir directory run in rel to toDir.
func movePath(rel, fromDir, toDir string) (string, bool) {
	padded := "/" + rel
	idx := strings.Index(padded, "/"+fromDir+"/")
	if idx < 0 {
		return rel, false
	}
	moved := padded[:idx+1] + toDir + padded[idx+1+len(fromDir):]
	return strings.TrimPrefix(moved, "/"), true
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "*"))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

func hasExtension(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// pruneEmptyDirs removes emptied directories bottom-up, stopping at root.
func pruneEmptyDirs(root string, dirs map[string]bool) {
	list := make([]string, 0, len(dirs))
	for dir := range dirs {
		list = append(list, dir)
	}
	sort.Slice(list, func(i, j int) bool { return len(list[i]) > len(list[j]) })

	cleanRoot := filepath.Clean(root)
	for _, dir := range list {
		for dir = filepath.Clean(dir); dir != cleanRoot && strings.HasPrefix(dir, cleanRoot); dir = filepath.Dir(dir) {
			if os.Remove(dir) != nil {
				break
			}
		}
	}
}
