package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/randalmurphal/packkit/config"
	"github.com/randalmurphal/packkit/gitmeta"
	"github.com/randalmurphal/packkit/render"
	"github.com/randalmurphal/packkit/scan"
	"github.com/randalmurphal/packkit/split"
	"github.com/randalmurphal/packkit/tokenizer"
)

// runPack executes the full pipeline once: scan, gather git metadata,
// render (splitting if a budget is set), write output files.
func runPack(ctx context.Context, cfg config.Config, roots []string, logger *slog.Logger) error {
	scanner := scan.New(
		scan.WithInclude(cfg.Include...),
		scan.WithIgnore(cfg.Ignore...),
		scan.WithGitignore(cfg.Gitignore),
		scan.WithDefaultIgnores(cfg.DefaultIgnores),
		scan.WithWorkers(cfg.Workers),
		maxFileSizeOption(cfg),
	)
	result, err := scanner.Scan(ctx, roots...)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	logger.Info("scan complete", "files", len(result.Files), "paths", len(result.AllPaths))

	style, err := render.ParseStyle(cfg.Style)
	if err != nil {
		return err
	}
	renderer, err := render.New(
		render.WithStyle(style),
		render.WithHeader(cfg.Header),
		render.WithLineNumbers(cfg.LineNumbers),
		render.WithTree(cfg.Tree),
	)
	if err != nil {
		return err
	}

	diff, gitLog := gatherGitMeta(ctx, cfg, roots[0], logger)

	output := cfg.OutputPath()

	if cfg.MaxBytes == 0 && cfg.MaxTokens == 0 {
		content, err := renderer.Render(ctx, split.RenderRequest{
			RootDirs: roots,
			Files:    result.Files,
			AllPaths: result.AllPaths,
			Diff:     diff,
			Log:      gitLog,
		})
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		if err := writeOutput(output, content); err != nil {
			return err
		}
		logger.Info("pack written", "path", output, "bytes", len(content))
		return nil
	}

	req := split.Request{
		RootDirs:  roots,
		Output:    output,
		Files:     result.Files,
		AllPaths:  result.AllPaths,
		Diff:      diff,
		Log:       gitLog,
		MaxBytes:  cfg.MaxBytes,
		MaxTokens: cfg.MaxTokens,
		Workers:   cfg.Workers,
		Progress:  func(msg string) { logger.Debug(msg) },
		Render:    renderer.Render,
	}
	if cfg.MaxTokens > 0 {
		counter, err := tokenizer.NewTiktoken(cfg.Encoding)
		if err != nil {
			return err
		}
		req.Counter = counter
	}

	parts, err := split.Split(ctx, req)
	if err != nil {
		return fmt.Errorf("split: %w", err)
	}
	for _, p := range parts {
		if err := writeOutput(p.Path, p.Content); err != nil {
			return err
		}
		if p.Tokens > 0 {
			logger.Info("part written", "path", p.Path, "bytes", p.Bytes, "tokens", p.Tokens)
		} else {
			logger.Info("part written", "path", p.Path, "bytes", p.Bytes)
		}
	}
	logger.Info("pack complete", "parts", len(parts))
	return nil
}

// gatherGitMeta fetches diff/log when configured and available. Failures
// here degrade to a warning: a pack without git context is still useful.
func gatherGitMeta(ctx context.Context, cfg config.Config, root string, logger *slog.Logger) (*gitmeta.Diff, *gitmeta.Log) {
	if !cfg.Diff && !cfg.Log {
		return nil, nil
	}
	client := gitmeta.NewClient(gitmeta.WithWorkdir(root))
	if !client.IsRepo(ctx) {
		logger.Warn("git context requested but not a git repository", "root", root)
		return nil, nil
	}

	var diff *gitmeta.Diff
	var gitLog *gitmeta.Log
	if cfg.Diff {
		d, err := client.GetDiff(ctx)
		if err != nil {
			logger.Warn("git diff failed", "error", err)
		} else if !d.IsEmpty() {
			diff = d
		}
	}
	if cfg.Log {
		l, err := client.GetLog(ctx, cfg.LogCount)
		if err != nil {
			logger.Warn("git log failed", "error", err)
		} else if !l.IsEmpty() {
			gitLog = l
		}
	}
	return diff, gitLog
}

func maxFileSizeOption(cfg config.Config) scan.Option {
	if cfg.MaxFileSize > 0 {
		return scan.WithMaxFileSize(cfg.MaxFileSize)
	}
	return scan.WithMaxFileSize(scan.DefaultMaxFileSize)
}

func writeOutput(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
