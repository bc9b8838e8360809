package gitmeta

// Diff holds the textual diffs of a working copy at pack time.
type Diff struct {
	// WorkTree is the diff of tracked, unstaged changes (git diff).
	WorkTree string

	// Staged is the diff of staged changes (git diff --cached).
	Staged string
}

// IsEmpty returns true when neither diff has content.
func (d *Diff) IsEmpty() bool {
	return d == nil || (d.WorkTree == "" && d.Staged == "")
}

// Commit is one entry of a commit log.
type Commit struct {
	Hash    string
	Date    string
	Message string
	Files   []string
}

// Log holds the most recent commits of a repository, newest first.
type Log struct {
	Commits []Commit
}

// IsEmpty returns true when the log has no commits.
func (l *Log) IsEmpty() bool {
	return l == nil || len(l.Commits) == 0
}
