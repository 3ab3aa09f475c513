package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/frugurt-lang/frugurt/frugurt"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "parse":
		return parseCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "analyze":
		return analyzeCommand(args[2:])
	case "lsp":
		return runLSP()
	case "repl":
		return runREPL()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func parseCommand(args []string) error {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	asJSON := fs.Bool("json", false, "print the tree as JSON instead of S-expressions")
	exprOnly := fs.Bool("expr", false, "parse the input as a single expression")
	recoverErrors := fs.Bool("recover", false, "keep parsing after syntax errors")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("frugurt parse: source path required (use - for stdin)")
	}
	name, source, err := readSource(remaining[0])
	if err != nil {
		return err
	}

	var (
		node     frugurt.Node
		parseErr error
	)
	if *exprOnly {
		node, parseErr = frugurt.ParseExpression(source)
	} else {
		var file *frugurt.File
		file, parseErr = frugurt.Config{Recover: *recoverErrors}.Parse(source)
		if file != nil {
			node = file
		}
	}
	if parseErr != nil {
		fmt.Print(renderDiagnostics(name, source, parseErr))
	}

	// Recovery mode still prints the partial tree.
	if node != nil {
		if *asJSON {
			err = frugurt.FprintJSON(os.Stdout, node)
		} else {
			err = frugurt.Fprint(os.Stdout, node)
		}
		if err != nil {
			return fmt.Errorf("write tree: %w", err)
		}
	}
	if parseErr != nil {
		return errors.New("frugurt parse: source has errors")
	}
	return nil
}

// readSource loads path, or standard input when path is "-".
func readSource(path string) (string, string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", fmt.Errorf("resolve source path: %w", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", "", fmt.Errorf("read source: %w", err)
	}
	return abs, string(data), nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  parse [-json] [-expr] [-recover] <file|->")
	fmt.Fprintln(os.Stderr, "    print the syntax tree of a source file")
	fmt.Fprintln(os.Stderr, "  check [-recover] [-watch] [-v] <paths...>")
	fmt.Fprintln(os.Stderr, "    report diagnostics for every .fru file")
	fmt.Fprintln(os.Stderr, "  fmt [-w] [-check] <paths...>")
	fmt.Fprintln(os.Stderr, "    normalise whitespace in .fru files")
	fmt.Fprintln(os.Stderr, "  analyze <file>")
	fmt.Fprintln(os.Stderr, "    lint a source file")
	fmt.Fprintln(os.Stderr, "  lsp")
	fmt.Fprintln(os.Stderr, "    run the language server on stdio")
	fmt.Fprintln(os.Stderr, "  repl")
	fmt.Fprintln(os.Stderr, "    explore syntax trees interactively")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
