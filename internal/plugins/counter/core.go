// Package counter implements the line counter plugin.
package counter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/alexisbeaulieu97/workbench/internal/logger"
)

// DefaultWorkers bounds the analysis pool when Options.Workers is zero.
const DefaultWorkers = 4

// Options selects the files to count and how their lines add up.
type Options struct {
	Root             string
	Extensions       []string
	ExcludeDirs      []string
	IncludeBlank     bool
	IncludeComments  bool
	RespectGitignore bool
	Workers          int
}

// FileStat is the breakdown for one file. Lines is the effective count.
type FileStat struct {
	Path    string `json:"path"`
	Ext     string `json:"ext"`
	Code    int64  `json:"code"`
	Comment int64  `json:"comment"`
	Blank   int64  `json:"blank"`
	Todo    int64  `json:"todo"`
	Lines   int64  `json:"lines"`
}

func (s *FileStat) applyEffective(includeBlank, includeComments bool) {
	s.Lines = s.Code
	if includeBlank {
		s.Lines += s.Blank
	}
	if includeComments {
		s.Lines += s.Comment
	}
}

func (s *FileStat) add(other FileStat) {
	s.Code += other.Code
	s.Comment += other.Comment
	s.Blank += other.Blank
	s.Todo += other.Todo
	s.Lines += other.Lines
}

// ExtensionSummary aggregates the files sharing one extension.
type ExtensionSummary struct {
	Ext   string   `json:"ext"`
	Files int      `json:"files"`
	Stat  FileStat `json:"stat"`
}

// Report is the result of one count.
type Report struct {
	Root        string             `json:"root"`
	Files       []FileStat         `json:"files"`
	Total       FileStat           `json:"total"`
	ByExtension []ExtensionSummary `json:"by_extension"`
}

// Counter walks directory trees and classifies source lines.
type Counter struct {
	logger *logger.Logger
}

// New returns a Counter; log may be nil.
func New(log *logger.Logger) *Counter {
	return &Counter{logger: log.Component("counter")}
}

// Count walks opts.Root and analyses every matching file with a bounded worker pool.
// Files that cannot be read count as zero lines.
func (c *Counter) Count(ctx context.Context, opts Options) (*Report, error) {
	root := strings.TrimSpace(opts.Root)
	if root == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	paths, err := c.collect(ctx, root, opts)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	stats := make([]FileStat, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			stat := c.analyzePath(path)
			stat.applyEffective(opts.IncludeBlank, opts.IncludeComments)
			stats[i] = stat
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := buildReport(root, stats)
	c.logger.WithFields(map[string]any{
		"root":  root,
		"files": len(report.Files),
		"lines": report.Total.Lines,
	}).Debug("count finished")
	return report, nil
}

func (c *Counter) collect(ctx context.Context, root string, opts Options) ([]string, error) {
	extensions := NormalizeExtensions(opts.Extensions)
	var ignore gitignore.Matcher
	if opts.RespectGitignore {
		ignore = loadGitignore(root)
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			c.logger.WithFields(map[string]any{"path": path}).Debug("skipping unreadable entry")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		segments := strings.Split(filepath.ToSlash(rel), "/")

		if d.IsDir() {
			if excluded(segments, opts.ExcludeDirs) || (ignore != nil && ignore.Match(segments, true)) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if excluded(segments, opts.ExcludeDirs) || (ignore != nil && ignore.Match(segments, false)) {
			return nil
		}
		if matchExtension(d.Name(), extensions) {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

func (c *Counter) analyzePath(path string) FileStat {
	stat := FileStat{Path: path, Ext: extension(path)}
	f, err := os.Open(path)
	if err != nil {
		c.logger.WithFields(map[string]any{"path": path}).Debug("counting unreadable file as empty")
		return stat
	}
	defer f.Close()

	counted, err := Analyze(f)
	if err != nil {
		c.logger.WithFields(map[string]any{"path": path}).Error(err, "read failed; counting the lines read so far")
	}
	counted.Path = stat.Path
	counted.Ext = stat.Ext
	return counted
}

// Analyze classifies every line read from r. Lines inside /* */ or <!-- --> blocks
// and lines starting with // are comments; imports count as code. Lines have no
// length limit. On a read error the counts cover the lines read so far.
func Analyze(r io.Reader) (FileStat, error) {
	var stat FileStat
	inBlock := false

	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			inBlock = classify(&stat, strings.TrimSpace(line), inBlock)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			stat.Lines = stat.Code + stat.Comment + stat.Blank
			return stat, err
		}
	}
	stat.Lines = stat.Code + stat.Comment + stat.Blank
	return stat, nil
}

// classify counts one trimmed line and returns whether a comment block is still open.
func classify(stat *FileStat, trimmed string, inBlock bool) bool {
	if trimmed == "" {
		stat.Blank++
		return inBlock
	}
	if strings.Contains(strings.ToLower(trimmed), "todo") {
		stat.Todo++
	}

	closesBlock := strings.HasSuffix(trimmed, "*/") || strings.HasSuffix(trimmed, "-->")
	switch {
	case inBlock:
		stat.Comment++
		return !closesBlock
	case strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "<!--"):
		stat.Comment++
		return !closesBlock
	case strings.HasPrefix(trimmed, "//"):
		stat.Comment++
	default:
		stat.Code++
	}
	return false
}

// NormalizeExtensions maps "*.java", "*java" and "java" to ".java", lower-cased and
// de-duplicated.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, ext := range exts {
		n := strings.ToLower(strings.TrimSpace(ext))
		n = strings.TrimPrefix(n, "*")
		if n == "" || n == "." {
			continue
		}
		if !strings.HasPrefix(n, ".") {
			n = "." + n
		}
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

func matchExtension(name string, normalized []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range normalized {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// excluded reports whether any path segment names an excluded directory or matches
// an excluded glob such as *.iml. .svn is always excluded.
func excluded(segments, excludeDirs []string) bool {
	for _, seg := range segments {
		if strings.EqualFold(seg, ".svn") {
			return true
		}
		for _, ex := range excludeDirs {
			ex = strings.TrimSpace(ex)
			if strings.EqualFold(seg, ex) {
				return true
			}
			if strings.ContainsAny(ex, "*?[") {
				if ok, _ := path.Match(strings.ToLower(ex), strings.ToLower(seg)); ok {
					return true
				}
			}
		}
	}
	return false
}

func extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func loadGitignore(root string) gitignore.Matcher {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	if len(patterns) == 0 {
		return nil
	}
	return gitignore.NewMatcher(patterns)
}

func buildReport(root string, stats []FileStat) *Report {
	sort.Slice(stats, func(i, j int) bool { return stats[i].Path < stats[j].Path })

	report := &Report{Root: root, Files: stats}
	byExt := make(map[string]*ExtensionSummary)
	for _, s := range stats {
		report.Total.add(s)
		summary, ok := byExt[s.Ext]
		if !ok {
			summary = &ExtensionSummary{Ext: s.Ext}
			byExt[s.Ext] = summary
		}
		summary.Files++
		summary.Stat.add(s)
	}
	for _, summary := range byExt {
		report.ByExtension = append(report.ByExtension, *summary)
	}
	sort.Slice(report.ByExtension, func(i, j int) bool {
		return report.ByExtension[i].Ext < report.ByExtension[j].Ext
	})
	return report
}
