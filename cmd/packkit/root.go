package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/packkit/config"
)

var flags struct {
	configPath     string
	output         string
	style          string
	header         string
	lineNumbers    bool
	noTree         bool
	maxBytes       int
	maxTokens      int
	encoding       string
	workers        int
	include        []string
	ignore         []string
	noGitignore    bool
	noDefaults     bool
	diff           bool
	log            bool
	logCount       int
	watch          bool
	verbose        bool
}

// rootCmd packs the given directories (default ".") into one or more
// documents; there is no separate "run" subcommand.
var rootCmd = &cobra.Command{
	Use:   "packkit [directories...]",
	Short: "Pack a repository into AI-friendly documents",
	Long: `packkit merges a codebase into one document for LLM consumption,
splitting the output into multiple parts when a byte or token budget
is configured.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		roots := args
		if len(roots) == 0 {
			roots = []string{"."}
		}

		cfg, err := resolveConfig(roots[0])
		if err != nil {
			return err
		}

		level := slog.LevelInfo
		if flags.verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		if flags.watch {
			return watchAndPack(cmd.Context(), cfg, roots, logger)
		}
		return runPack(cmd.Context(), cfg, roots, logger)
	},
	SilenceUsage: true,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "config file (default: packkit.{toml,yaml,json} in the first root)")
	f.StringVarP(&flags.output, "output", "o", "", "base output path")
	f.StringVar(&flags.style, "style", "", "output style: xml, markdown, or plain")
	f.StringVar(&flags.header, "header", "", "custom header text")
	f.BoolVar(&flags.lineNumbers, "line-numbers", false, "prefix embedded lines with line numbers")
	f.BoolVar(&flags.noTree, "no-tree", false, "omit the directory listing")
	f.IntVar(&flags.maxBytes, "max-bytes", 0, "split output into parts of at most this many bytes")
	f.IntVar(&flags.maxTokens, "max-tokens", 0, "split output into parts of at most this many tokens")
	f.StringVar(&flags.encoding, "encoding", "", "tiktoken encoding for token budgets")
	f.IntVar(&flags.workers, "workers", 0, "concurrent workers for loading and token estimation")
	f.StringSliceVar(&flags.include, "include", nil, "include only paths matching these globs")
	f.StringSliceVar(&flags.ignore, "ignore", nil, "extra ignore patterns (gitignore syntax)")
	f.BoolVar(&flags.noGitignore, "no-gitignore", false, "do not honor .gitignore")
	f.BoolVar(&flags.noDefaults, "no-default-ignores", false, "disable the built-in ignore set")
	f.BoolVar(&flags.diff, "diff", false, "embed git diffs in the first part")
	f.BoolVar(&flags.log, "log", false, "embed recent git log in the first part")
	f.IntVar(&flags.logCount, "log-count", 0, "commits covered by the git log section")
	f.BoolVarP(&flags.watch, "watch", "w", false, "re-pack whenever the roots change")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose logging")
}

// resolveConfig loads the config file (explicit or discovered) and applies
// flag overrides on top.
func resolveConfig(firstRoot string) (config.Config, error) {
	path := flags.configPath
	if path == "" {
		path = config.Find(firstRoot)
	}

	cfg := config.DefaultConfig()
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return cfg, err
		}
	}

	if flags.output != "" {
		cfg.Output = flags.output
	}
	if flags.style != "" {
		cfg.Style = flags.style
	}
	if flags.header != "" {
		cfg.Header = flags.header
	}
	if flags.lineNumbers {
		cfg.LineNumbers = true
	}
	if flags.noTree {
		cfg.Tree = false
	}
	if flags.maxBytes != 0 {
		cfg.MaxBytes = flags.maxBytes
	}
	if flags.maxTokens != 0 {
		cfg.MaxTokens = flags.maxTokens
	}
	if flags.encoding != "" {
		cfg.Encoding = flags.encoding
	}
	if flags.workers != 0 {
		cfg.Workers = flags.workers
	}
	cfg.Include = append(cfg.Include, flags.include...)
	cfg.Ignore = append(cfg.Ignore, flags.ignore...)
	if flags.noGitignore {
		cfg.Gitignore = false
	}
	if flags.noDefaults {
		cfg.DefaultIgnores = false
	}
	if flags.diff {
		cfg.Diff = true
	}
	if flags.log {
		cfg.Log = true
	}
	if flags.logCount != 0 {
		cfg.LogCount = flags.logCount
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
