package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/frugurt-lang/frugurt/frugurt"
)

func TestCheckCommandRequiresPath(t *testing.T) {
	err := checkCommand(nil)
	if err == nil {
		t.Fatalf("expected path required error")
	}
	if !strings.Contains(err.Error(), "path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckCommandReportsBrokenFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "good.fru"), "let a = 1;\n")
	writeFile(t, filepath.Join(root, "nested", "bad.fru"), "let a = 1;\nlet b = (2;\n")
	writeFile(t, filepath.Join(root, "notes.txt"), "let = ;")

	out, err := captureStdout(t, func() error {
		return runCLI([]string{"frugurt", "check", root})
	})
	if err == nil {
		t.Fatalf("expected check failure")
	}
	if !strings.Contains(err.Error(), "1 file(s) have errors") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, filepath.Join("nested", "bad.fru")+":2:") {
		t.Fatalf("expected diagnostic for bad.fru, got %q", out)
	}
	if strings.Contains(out, "good.fru") || strings.Contains(out, "notes.txt") {
		t.Fatalf("unexpected output for valid or ignored files: %q", out)
	}
}

func TestCheckCommandPassesCleanTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.fru"), "struct P { x; }\n")
	writeFile(t, filepath.Join(root, "b.fru"), "let p = P:{x: 1};\n")

	out, err := captureStdout(t, func() error {
		return checkCommand([]string{root})
	})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, "2 file(s) ok") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCheckFilesKeepsInputOrder(t *testing.T) {
	root := t.TempDir()
	var files []string
	for i, source := range []string{"let a = 1;", "let = 2;", "x;", "if {"} {
		path := filepath.Join(root, string(rune('a'+i))+".fru")
		writeFile(t, path, source)
		files = append(files, path)
	}

	results, err := checkFiles(context.Background(), frugurt.Config{}, files)
	if err != nil {
		t.Fatalf("checkFiles failed: %v", err)
	}
	if len(results) != len(files) {
		t.Fatalf("expected %d results, got %d", len(files), len(results))
	}
	wantFailed := []bool{false, true, false, true}
	for i, res := range results {
		if res.path != files[i] {
			t.Fatalf("result %d: expected %s, got %s", i, files[i], res.path)
		}
		if (res.err != nil) != wantFailed[i] {
			t.Fatalf("result %d: unexpected error state %v", i, res.err)
		}
	}
}

func TestCheckFilesMissingFile(t *testing.T) {
	_, err := checkFiles(context.Background(), frugurt.Config{}, []string{filepath.Join(t.TempDir(), "gone.fru")})
	if err == nil || !strings.Contains(err.Error(), "gone.fru") {
		t.Fatalf("expected read error naming the file, got %v", err)
	}
}

func TestRunCheckRecoverReportsEveryError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "many.fru"), "let = 1;\nlet y = 2;\nlet z 3;\n")

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	failed, err := runCheck(context.Background(), logger, frugurt.Config{Recover: true}, []string{root}, &buf)
	if err != nil {
		t.Fatalf("runCheck failed: %v", err)
	}
	if failed != 1 {
		t.Fatalf("expected one failed file, got %d", failed)
	}
	if got := strings.Count(buf.String(), "syntax error:"); got != 2 {
		t.Fatalf("expected 2 diagnostics, got %d in %q", got, buf.String())
	}
}

func TestWatchDirsIncludesParentsAndSubdirectories(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "single", "one.fru")
	writeFile(t, file, "x;")
	writeFile(t, filepath.Join(root, "tree", "deep", "two.fru"), "y;")

	dirs := watchDirs([]string{file, filepath.Join(root, "tree"), file})
	want := []string{
		filepath.Join(root, "single"),
		filepath.Join(root, "tree"),
		filepath.Join(root, "tree", "deep"),
	}
	if strings.Join(dirs, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected watch dirs:\nexpected %v\ngot      %v", want, dirs)
	}
}

func TestRenderDiagnosticsFallsBackForPlainErrors(t *testing.T) {
	got := renderDiagnostics("x.fru", "", os.ErrNotExist)
	if got != "x.fru: file does not exist\n" {
		t.Fatalf("unexpected rendering %q", got)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
