package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFmtCommandRequiresPath(t *testing.T) {
	err := fmtCommand(nil)
	if err == nil {
		t.Fatalf("expected path required error")
	}
	if !strings.Contains(err.Error(), "path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFmtCommandCheckDetectsUnformattedFiles(t *testing.T) {
	path := writeScript(t, "let a = 1;  \n\n\n\nlet b = 2;\t")
	out, err := captureStdout(t, func() error {
		return fmtCommand([]string{"-check", path})
	})
	if err == nil {
		t.Fatalf("expected formatting check failure")
	}
	if !strings.Contains(err.Error(), "need formatting") {
		t.Fatalf("unexpected check error: %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Fatalf("expected the unformatted path to be listed, got %q", out)
	}
}

func TestFmtCommandWriteFormatsFileInPlace(t *testing.T) {
	path := writeScript(t, "\n\nlet a = 1;  \r\n\n\n\nwhile a {\t\n  a = 0;\n}\n\n")
	if err := fmtCommand([]string{"-w", path}); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}

	updated, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read formatted file: %v", err)
	}
	if got := string(updated); got != "let a = 1;\n\nwhile a {\n  a = 0;\n}\n" {
		t.Fatalf("unexpected formatted output: %q", got)
	}
}

func TestFmtCommandPrintsFormattedOutput(t *testing.T) {
	path := writeScript(t, "let a = 1;  \nlet b = 2;")
	out, err := captureStdout(t, func() error {
		return fmtCommand([]string{path})
	})
	if err != nil {
		t.Fatalf("fmt command failed: %v", err)
	}
	if out != "let a = 1;\nlet b = 2;\n" {
		t.Fatalf("unexpected stdout output: %q", out)
	}
}

func TestFmtCommandRefusesUnparsableFiles(t *testing.T) {
	path := writeScript(t, "let a = ;  ")
	out, err := captureStdout(t, func() error {
		return fmtCommand([]string{"-w", path})
	})
	if err == nil || !strings.Contains(err.Error(), "does not parse") {
		t.Fatalf("expected parse refusal, got %v", err)
	}
	if !strings.Contains(out, "syntax error:") {
		t.Fatalf("expected diagnostics on stdout, got %q", out)
	}
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read file: %v", readErr)
	}
	if string(data) != "let a = ;  " {
		t.Fatalf("file was modified: %q", data)
	}
}

func TestFmtCommandFormatsDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.fru"), "let a = 1;  \n")
	writeFile(t, filepath.Join(root, "nested", "b.fru"), "let b = 2;\t\n\n")

	if _, err := captureStdout(t, func() error {
		return fmtCommand([]string{"-w", root})
	}); err != nil {
		t.Fatalf("fmt directory failed: %v", err)
	}
	if _, err := captureStdout(t, func() error {
		return fmtCommand([]string{"-check", root})
	}); err != nil {
		t.Fatalf("expected no formatting diffs after write, got %v", err)
	}
}

func TestFormatFruSourceKeepsStringContinuations(t *testing.T) {
	source := "let s = \"a \\\n   b\";\n"
	if got := formatFruSource(source); got != source {
		t.Fatalf("expected source unchanged, got %q", got)
	}
	if got := formatFruSource("\n \n\t\n"); got != "" {
		t.Fatalf("expected blank input to format to empty, got %q", got)
	}
}

func TestCollectFruFilesSortsAndDedupes(t *testing.T) {
	root := t.TempDir()
	b := filepath.Join(root, "b.fru")
	a := filepath.Join(root, "sub", "a.fru")
	writeFile(t, b, "x;")
	writeFile(t, a, "y;")
	writeFile(t, filepath.Join(root, "c.txt"), "z")

	files, err := collectFruFiles([]string{b, root})
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(files) != 2 || files[0] != b || files[1] != a {
		t.Fatalf("unexpected files %v", files)
	}
}
