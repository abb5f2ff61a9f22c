// Package syntax walks a project tree and detects probable syntax
// defects in Python source files. A strict parse decides whether a file
// is defective; line-pattern heuristics locate the defects only when
// the parse fails.
package syntax

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"codeadvisor/internal/event"
)

// DefaultExcludedDirs are skipped during discovery, at any depth.
var DefaultExcludedDirs = []string{".git", "__pycache__", "venv", ".pytest_cache", "node_modules"}

// readProbeSize is how many leading bytes are inspected to decide
// whether a file is readable text.
const readProbeSize = 512

// Analyzer scans a project directory for syntax defects. Each call is
// stateless with respect to prior calls; one Analyzer may be reused
// across files.
type Analyzer struct {
	root     string
	excluded map[string]struct{}
	logger   *log.Logger
}

// New creates an Analyzer rooted at projectPath. The path must exist
// and be a directory. A nil excludedDirs selects the defaults.
func New(projectPath string, excludedDirs []string) (*Analyzer, error) {
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("syntax.New: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("syntax.New: project path does not exist: %s", projectPath)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("syntax.New: project path must be a directory, not a file: %s", projectPath)
	}

	if excludedDirs == nil {
		excludedDirs = DefaultExcludedDirs
	}
	excluded := make(map[string]struct{}, len(excludedDirs))
	for _, d := range excludedDirs {
		excluded[d] = struct{}{}
	}

	return &Analyzer{
		root:     abs,
		excluded: excluded,
		logger:   log.New(io.Discard, "", 0),
	}, nil
}

// SetLogger directs traversal warnings to the given logger.
func (a *Analyzer) SetLogger(logger *log.Logger) {
	if logger != nil {
		a.logger = logger
	}
}

// Root returns the absolute project root.
func (a *Analyzer) Root() string { return a.root }

// FindSourceFiles discovers Python files under the project root.
// Excluded directory names prune the walk at any depth, so every file
// below an excluded directory is skipped. Files that cannot be opened
// or that look binary are silently dropped; traversal failures are
// logged as warnings and do not abort the walk.
func (a *Analyzer) FindSourceFiles() ([]string, error) {
	var files []string

	err := filepath.WalkDir(a.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			a.logger.Printf("warning: cannot access %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if _, skip := a.excluded[d.Name()]; skip && path != a.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".py") {
			return nil
		}
		if a.excludedPath(path) {
			return nil
		}
		if !readableSource(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("syntax.FindSourceFiles: %w", err)
	}

	return files, nil
}

// excludedPath checks every ancestor directory name between the root
// and the file against the exclusion set. The walk already prunes
// excluded directories; this guards paths reached another way, such as
// direct AnalyzeFile calls routed through symlinks.
func (a *Analyzer) excludedPath(path string) bool {
	rel, err := filepath.Rel(a.root, filepath.Dir(path))
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if _, skip := a.excluded[part]; skip {
			return true
		}
	}
	return false
}

// readableSource reports whether the file opens and its leading bytes
// decode as text.
func readableSource(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, readProbeSize)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return false
	}
	buf = buf[:n]

	if strings.ContainsRune(string(buf), 0) {
		return false
	}
	// A rune split by the probe boundary should not count as invalid.
	for i := 0; i < utf8.UTFMax-1 && len(buf) > 0 && !utf8.Valid(buf); i++ {
		buf = buf[:len(buf)-1]
	}
	return utf8.Valid(buf)
}

// AnalyzeFile analyzes a single file. An unreadable file yields exactly
// one FileReadError event at line 1 with no context. A file that parses
// cleanly yields no events. The returned error reports an unexpected
// analysis failure, not a defect in the file.
func (a *Analyzer) AnalyzeFile(path string) ([]*event.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		ev := event.New(path, 1, event.KindFileRead, fmt.Sprintf("Cannot read file: %v", err))
		return []*event.Event{ev}, nil
	}

	clean, err := parseClean(data)
	if err != nil {
		return nil, err
	}
	if clean {
		return nil, nil
	}

	return scanLines(path, splitLines(string(data))), nil
}

// AnalyzeFiles analyzes the given files, concatenating results in
// order. A file whose analysis fails unexpectedly contributes a single
// AnalysisError event instead of aborting the run.
func (a *Analyzer) AnalyzeFiles(files []string) []*event.Event {
	var all []*event.Event
	for _, path := range files {
		events, err := a.AnalyzeFile(path)
		if err != nil {
			ev := event.New(path, 1, event.KindAnalysis, fmt.Sprintf("Unexpected error during analysis: %v", err))
			all = append(all, ev)
			continue
		}
		all = append(all, events...)
	}
	return all
}

// AnalyzeProject discovers and analyzes every source file under the
// root in discovery order. An empty file set yields an empty result.
func (a *Analyzer) AnalyzeProject() ([]*event.Event, error) {
	files, err := a.FindSourceFiles()
	if err != nil {
		return nil, err
	}
	return a.AnalyzeFiles(files), nil
}

// splitLines splits source into lines without the trailing newline
// artifact a plain Split leaves behind.
func splitLines(src string) []string {
	lines := strings.Split(src, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
