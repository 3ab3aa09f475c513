package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/frugurt-lang/frugurt/frugurt"
)

var (
	diagLocationStyle = lipgloss.NewStyle().Bold(true)
	diagKindStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	diagFrameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	diagOKStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
)

type checkResult struct {
	path   string
	source string
	err    error
}

func checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	recoverErrors := fs.Bool("recover", false, "report every error instead of stopping at the first")
	watch := fs.Bool("watch", false, "re-check when files change")
	verbose := fs.Bool("v", false, "log progress to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	targets := fs.Args()
	if len(targets) == 0 {
		return errors.New("frugurt check: path required")
	}

	logger := newLogger(*verbose)
	cfg := frugurt.Config{Recover: *recoverErrors}

	if *watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return watchAndCheck(ctx, logger, cfg, targets, os.Stdout)
	}

	failed, err := runCheck(context.Background(), logger, cfg, targets, os.Stdout)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("frugurt check: %d file(s) have errors", failed)
	}
	return nil
}

// runCheck parses every .fru file under targets and writes the diagnostics
// to w, returning the number of files that failed.
func runCheck(ctx context.Context, logger *slog.Logger, cfg frugurt.Config, targets []string, w io.Writer) (int, error) {
	files, err := collectFruFiles(targets)
	if err != nil {
		return 0, err
	}
	logger.Debug("checking files", "count", len(files))

	results, err := checkFiles(ctx, cfg, files)
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, res := range results {
		if res.err == nil {
			logger.Debug("parsed", "path", res.path)
			continue
		}
		failed++
		fmt.Fprint(w, renderDiagnostics(res.path, res.source, res.err))
	}
	if failed == 0 {
		fmt.Fprintln(w, diagOKStyle.Render(fmt.Sprintf("%d file(s) ok", len(results))))
	}
	return failed, nil
}

// checkFiles parses files concurrently. Results keep the order of files.
func checkFiles(ctx context.Context, cfg frugurt.Config, files []string) ([]checkResult, error) {
	results := make([]checkResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			source := string(data)
			_, parseErr := cfg.Parse(source)
			results[i] = checkResult{path: path, source: source, err: parseErr}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// watchAndCheck runs a check, then re-runs it whenever a .fru file under
// targets is written, created, removed or renamed.
func watchAndCheck(ctx context.Context, logger *slog.Logger, cfg frugurt.Config, targets []string, w io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range watchDirs(targets) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		logger.Debug("watching", "dir", dir)
	}

	if _, err := runCheck(ctx, logger, cfg, targets, w); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := watcher.Add(ev.Name); err != nil {
						logger.Warn("watch new directory", "dir", ev.Name, "err", err)
					}
					continue
				}
			}
			if filepath.Ext(ev.Name) != fruExt {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Info("change detected", "path", ev.Name, "op", ev.Op.String())
			if _, err := runCheck(ctx, logger, cfg, targets, w); err != nil {
				logger.Error("re-check failed", "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		}
	}
}

// watchDirs lists the directories to observe. Files are watched through
// their parent so editors that replace on save keep triggering events.
func watchDirs(targets []string) []string {
	seen := make(map[string]struct{})
	var dirs []string
	add := func(dir string) {
		if _, ok := seen[dir]; ok {
			return
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	for _, target := range targets {
		abs, err := filepath.Abs(target)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			add(filepath.Dir(abs))
			continue
		}
		_ = filepath.WalkDir(abs, func(path string, entry os.DirEntry, walkErr error) error {
			if walkErr == nil && entry.IsDir() {
				add(path)
			}
			return nil
		})
	}
	return dirs
}

// renderDiagnostics formats a parse failure as `path:line:col: kind error:
// message` headers, each followed by its code frame.
func renderDiagnostics(path, source string, err error) string {
	var diags frugurt.Diagnostics
	if !errors.As(err, &diags) {
		return fmt.Sprintf("%s: %v\n", path, err)
	}

	var b strings.Builder
	for _, d := range diags {
		location := fmt.Sprintf("%s:%d:%d:", path, d.Span.Start.Line, d.Span.Start.Column)
		b.WriteString(diagLocationStyle.Render(location))
		b.WriteString(" ")
		b.WriteString(diagKindStyle.Render(string(d.Kind) + " error:"))
		b.WriteString(" " + d.Message + "\n")
		frame := d.Frame(source)
		if frame == "" {
			continue
		}
		for _, line := range strings.Split(frame, "\n") {
			b.WriteString(diagFrameStyle.Render(line) + "\n")
		}
	}
	return b.String()
}
