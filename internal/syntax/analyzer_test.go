package syntax

import (
	"os"
	"path/filepath"
	"testing"

	"codeadvisor/internal/event"
)

func writeSource(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newAnalyzer(t *testing.T, root string) *Analyzer {
	t.Helper()
	a, err := New(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestNewRejectsMissingRoot(t *testing.T) {
	_, err := New("/nonexistent/project", nil)
	if err == nil {
		t.Error("expected error for missing root")
	}
}

func TestNewRejectsFileRoot(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.py", "x = 1\n")
	_, err := New(path, nil)
	if err == nil {
		t.Error("expected error when root is a file")
	}
}

func TestAnalyzeFileValidSource(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "ok.py", "def greet(name):\n    return f\"hello {name}\"\n\nprint(greet('world'))\n")

	events, err := newAnalyzer(t, dir).AnalyzeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("valid source should produce no events, got %v", events)
	}
}

func TestAnalyzeFileMissingColon(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.py", "if x == 1\n    print(x)\n")

	events, err := newAnalyzer(t, dir).AnalyzeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d: %v", len(events), events)
	}
	ev := events[0]
	if ev.LineNumber != 1 || ev.Kind != event.KindSyntax || ev.Message != "expected ':'" {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestAnalyzeFileUnclosedParen(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.py", "def foo(\n    pass\n")

	events, err := newAnalyzer(t, dir).AnalyzeFile(path)
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, ev := range events {
		if ev.Message == "'(' was never closed" {
			found = true
			if ev.LineNumber != 1 {
				t.Errorf("flagged line = %d, want 1", ev.LineNumber)
			}
		}
	}
	if !found {
		t.Errorf("expected an unclosed-paren event, got %v", events)
	}
}

func TestAnalyzeFileUnclosedBracket(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.py", "xs = [1, 2\nprint(xs)\n")

	events, err := newAnalyzer(t, dir).AnalyzeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Message != "'[' was never closed" {
		t.Errorf("unexpected events: %v", events)
	}
}

func TestAnalyzeFileUnterminatedString(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.py", "x = 'abc\n")

	events, err := newAnalyzer(t, dir).AnalyzeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Message != "unterminated string literal" {
		t.Errorf("unexpected events: %v", events)
	}
	if events[0].LineNumber != 1 {
		t.Errorf("flagged line = %d, want 1", events[0].LineNumber)
	}
}

func TestAnalyzeFileMultipleFlagsSameLine(t *testing.T) {
	// "def foo(" opens a block without a colon and never closes the
	// paren: two distinct events on the same line.
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.py", "def foo(\n    pass\n")

	events, err := newAnalyzer(t, dir).AnalyzeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d: %v", len(events), events)
	}
	for _, ev := range events {
		if ev.LineNumber != 1 {
			t.Errorf("flagged line = %d, want 1", ev.LineNumber)
		}
	}
}

func TestAnalyzeFileSkipsBlankAndCommentLines(t *testing.T) {
	content := "# if broken\n\nif x == 1\n    print(x)\n"
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.py", content)

	events, err := newAnalyzer(t, dir).AnalyzeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].LineNumber != 3 {
		t.Errorf("unexpected events: %v", events)
	}
}

func TestAnalyzeFileContextWindow(t *testing.T) {
	content := "a = 1\nb = 2\nc = 3\nd = 4\nif e == 5\nf = 6\ng = 7\nh = 8\ni = 9\n"
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.py", content)

	events, err := newAnalyzer(t, dir).AnalyzeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %v", events)
	}
	ev := events[0]
	if ev.LineNumber != 5 {
		t.Errorf("line = %d, want 5", ev.LineNumber)
	}
	if ev.ContextStart != 2 {
		t.Errorf("context start = %d, want 2", ev.ContextStart)
	}
	if len(ev.Context) != 7 {
		t.Errorf("context length = %d, want 7", len(ev.Context))
	}
	if ev.Context[3] != "if e == 5" {
		t.Errorf("context misaligned: %v", ev.Context)
	}
}

func TestAnalyzeFileContextClampedAtFileStart(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.py", "if x == 1\ny = 2\n")

	events, err := newAnalyzer(t, dir).AnalyzeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %v", events)
	}
	if events[0].ContextStart != 1 {
		t.Errorf("context start = %d, want 1", events[0].ContextStart)
	}
	if len(events[0].Context) != 2 {
		t.Errorf("context length = %d, want 2", len(events[0].Context))
	}
}

func TestAnalyzeFileUnreadable(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "not_a_file.py")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}

	events, err := newAnalyzer(t, dir).AnalyzeFile(sub)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %v", events)
	}
	ev := events[0]
	if ev.Kind != event.KindFileRead || ev.LineNumber != 1 {
		t.Errorf("unexpected event: %+v", ev)
	}
	if len(ev.Context) != 0 {
		t.Error("read failures should carry no context")
	}
}

func TestFindSourceFilesExcludesTransitively(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "keep.py", "x = 1\n")
	writeSource(t, dir, "pkg/also_keep.py", "y = 2\n")
	writeSource(t, dir, "venv/lib/site/deep.py", "z = 3\n")
	writeSource(t, dir, "src/__pycache__/cached.py", "c = 4\n")
	writeSource(t, dir, "notes.txt", "not python")

	files, err := newAnalyzer(t, dir).FindSourceFiles()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
	for _, f := range files {
		if filepath.Base(f) == "deep.py" || filepath.Base(f) == "cached.py" {
			t.Errorf("excluded file discovered: %s", f)
		}
	}
}

func TestFindSourceFilesSkipsBinary(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "ok.py", "x = 1\n")
	binary := append([]byte("x = 1\n"), 0x00, 0xff, 0xfe)
	if err := os.WriteFile(filepath.Join(dir, "blob.py"), binary, 0644); err != nil {
		t.Fatal(err)
	}

	files, err := newAnalyzer(t, dir).FindSourceFiles()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "ok.py" {
		t.Errorf("unexpected files: %v", files)
	}
}

func TestAnalyzeProjectEmptyDir(t *testing.T) {
	events, err := newAnalyzer(t, t.TempDir()).AnalyzeProject()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("empty project should yield no events, got %v", events)
	}
}

func TestAnalyzeProjectMixedFiles(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "good.py", "x = 1\n")
	writeSource(t, dir, "bad.py", "if x == 1\n    print(x)\n")

	events, err := newAnalyzer(t, dir).AnalyzeProject()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %v", events)
	}
	if filepath.Base(events[0].FilePath) != "bad.py" {
		t.Errorf("unexpected file: %s", events[0].FilePath)
	}
}

func TestOddQuoteParity(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{`x = 'done'`, false},
		{`x = 'oops`, true},
		{`x = "oops`, true},
		{`x = 'it\'s fine'`, false},
		{`x = ""`, false},
		// Known limitation: literal escape counting misfires on a
		// trailing backslash before the closing quote.
		{`path = 'C:\\'`, true},
	}
	for _, tt := range tests {
		single := oddQuoteParity(tt.line, `'`, `\'`)
		double := oddQuoteParity(tt.line, `"`, `\"`)
		if got := single || double; got != tt.want {
			t.Errorf("oddQuoteParity(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestMissingColon(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"def foo()", true},
		{"def foo():", false},
		{"class Bar", true},
		{"else", true},
		{"else:", false},
		{"try", true},
		{"finally:", false},
		{"x = definitely_not_a_keyword", false},
		{"result = compute()", false},
	}
	for _, tt := range tests {
		if got := missingColon(tt.line); got != tt.want {
			t.Errorf("missingColon(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
