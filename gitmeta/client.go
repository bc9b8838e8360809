package gitmeta

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Field separators used in the git log pretty format. Neither occurs in
// commit subjects or file names git will print.
const (
	recordSep = "\x1e"
	fieldSep  = "\x1f"
)

// Client runs git commands in a fixed working directory.
type Client struct {
	path    string
	workdir string
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// NewClient creates a git client. Assumes "git" is available in PATH unless
// overridden with WithGitPath.
func NewClient(opts ...Option) *Client {
	c := &Client{
		path:    "git",
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithGitPath sets the path to the git binary.
func WithGitPath(path string) Option {
	return func(c *Client) { c.path = path }
}

// WithWorkdir sets the working directory for git commands.
func WithWorkdir(dir string) Option {
	return func(c *Client) { c.workdir = dir }
}

// WithTimeout sets the per-command timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// IsRepo reports whether the working directory is inside a git work tree.
func (c *Client) IsRepo(ctx context.Context) bool {
	out, err := c.run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// GetDiff returns the work-tree and staged diffs.
func (c *Client) GetDiff(ctx context.Context) (*Diff, error) {
	workTree, err := c.run(ctx, "diff", "--no-color")
	if err != nil {
		return nil, fmt.Errorf("git diff: %w", err)
	}
	staged, err := c.run(ctx, "diff", "--cached", "--no-color")
	if err != nil {
		return nil, fmt.Errorf("git diff --cached: %w", err)
	}
	return &Diff{WorkTree: workTree, Staged: staged}, nil
}

// GetLog returns up to maxCommits recent commits, newest first, each with
// the files it touched.
func (c *Client) GetLog(ctx context.Context, maxCommits int) (*Log, error) {
	if maxCommits <= 0 {
		return &Log{}, nil
	}
	out, err := c.run(ctx,
		"log",
		fmt.Sprintf("-n%d", maxCommits),
		"--name-only",
		"--date=short",
		"--pretty=format:"+recordSep+"%H"+fieldSep+"%ad"+fieldSep+"%s",
	)
	if err != nil {
		return nil, fmt.Errorf("git log: %w", err)
	}
	return &Log{Commits: parseLog(out)}, nil
}

// parseLog splits raw git log output into commits. Each record starts with
// a header line of hash/date/subject, followed by the touched file names.
func parseLog(out string) []Commit {
	var commits []Commit
	for _, record := range strings.Split(out, recordSep) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}
		lines := strings.Split(record, "\n")
		fields := strings.SplitN(lines[0], fieldSep, 3)
		if len(fields) != 3 {
			continue
		}
		commit := Commit{
			Hash:    fields[0],
			Date:    fields[1],
			Message: fields[2],
		}
		for _, line := range lines[1:] {
			if line = strings.TrimSpace(line); line != "" {
				commit.Files = append(commit.Files, line)
			}
		}
		commits = append(commits, commit)
	}
	return commits
}

// run executes one git command and returns its stdout.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.path, args...)
	cmd.Dir = c.workdir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return stdout.String(), nil
}
