// Package gitmeta retrieves git diffs and commit logs for inclusion in
// packed output.
//
// It shells out to the git binary rather than reimplementing diff and log
// semantics. Assumes "git" is available in PATH unless overridden with
// WithGitPath:
//
//	client := gitmeta.NewClient(gitmeta.WithWorkdir(root))
//	if client.IsRepo(ctx) {
//	    diff, _ := client.GetDiff(ctx)
//	    log, _ := client.GetLog(ctx, 50)
//	}
package gitmeta
