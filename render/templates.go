package render

import (
	"path/filepath"
	"strings"
	"text/template"
)

var funcs = template.FuncMap{
	"fence": fenceFor,
	"lang":  langFor,
}

var styleTemplates = map[Style]*template.Template{
	XML:      template.Must(template.New("xml").Funcs(funcs).Parse(xmlTemplate)),
	Markdown: template.Must(template.New("markdown").Funcs(funcs).Parse(markdownTemplate)),
	Plain:    template.Must(template.New("plain").Funcs(funcs).Parse(plainTemplate)),
}

const xmlTemplate = `{{if .Header}}{{.Header}}

{{end}}<file_summary>
This file is a merged representation of a codebase, combining all repository files into a single document.
{{- if .Position}}
This is {{.Position}}. The directory structure below covers the entire pack; files listed but not embedded here appear in another part.
{{- end}}
</file_summary>
{{if .Tree}}
<directory_structure>
{{.Tree}}
</directory_structure>
{{end}}
<files>
{{- range .Files}}
<file path="{{.Path}}">
{{.Content}}
</file>
{{- end}}
</files>
{{- if .Diff}}

<git_diffs>
{{- if .Diff.WorkTree}}
<work_tree_diff>
{{.Diff.WorkTree}}
</work_tree_diff>
{{- end}}
{{- if .Diff.Staged}}
<staged_diff>
{{.Diff.Staged}}
</staged_diff>
{{- end}}
</git_diffs>
{{- end}}
{{- if .Log}}

<git_logs>
{{- range .Log.Commits}}
<commit hash="{{.Hash}}" date="{{.Date}}">
{{.Message}}
{{- range .Files}}
{{.}}
{{- end}}
</commit>
{{- end}}
</git_logs>
{{- end}}
`

const markdownTemplate = `{{if .Header}}{{.Header}}

{{end}}# File Summary

This file is a merged representation of a codebase, combining all repository files into a single document.
{{- if .Position}}
This is {{.Position}}. The directory structure below covers the entire pack; files listed but not embedded here appear in another part.
{{- end}}
{{if .Tree}}
# Directory Structure

` + "```" + `
{{.Tree}}
` + "```" + `
{{end}}
# Files
{{range .Files}}
## File: {{.Path}}

{{fence .Content}}{{lang .Path}}
{{.Content}}
{{fence .Content}}
{{end}}
{{- if .Diff}}
# Git Diffs
{{if .Diff.WorkTree}}
## Work Tree

{{fence .Diff.WorkTree}}diff
{{.Diff.WorkTree}}
{{fence .Diff.WorkTree}}
{{end}}
{{- if .Diff.Staged}}
## Staged

{{fence .Diff.Staged}}diff
{{.Diff.Staged}}
{{fence .Diff.Staged}}
{{end}}
{{- end}}
{{- if .Log}}
# Git Log
{{range .Log.Commits}}
- {{.Date}} {{.Hash}}: {{.Message}}
{{- range .Files}}
  - {{.}}
{{- end}}
{{- end}}
{{- end}}
`

const plainTemplate = `{{if .Header}}{{.Header}}

{{end}}================================================================
File Summary
================================================================
This file is a merged representation of a codebase, combining all repository files into a single document.
{{- if .Position}}
This is {{.Position}}. The directory structure below covers the entire pack; files listed but not embedded here appear in another part.
{{- end}}
{{if .Tree}}
================================================================
Directory Structure
================================================================
{{.Tree}}
{{end}}
================================================================
Files
================================================================
{{range .Files}}
================
File: {{.Path}}
================
{{.Content}}
{{end}}
{{- if .Diff}}
================================================================
Git Diffs
================================================================
{{if .Diff.WorkTree}}{{.Diff.WorkTree}}
{{end}}{{if .Diff.Staged}}{{.Diff.Staged}}
{{end}}
{{- end}}
{{- if .Log}}
================================================================
Git Log
================================================================
{{range .Log.Commits}}{{.Date}} {{.Hash}}: {{.Message}}
{{end}}
{{- end}}
`

// fenceFor returns a code fence at least one backtick longer than the
// longest backtick run in content, so embedded fences cannot terminate the
// block early.
func fenceFor(content string) string {
	longest := 0
	run := 0
	for _, r := range content {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	n := longest + 1
	if n < 3 {
		n = 3
	}
	return strings.Repeat("`", n)
}

// langFor maps a file extension to a fenced-code language tag.
func langFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return "go"
	case ".ts", ".tsx":
		return "typescript"
	case ".js", ".jsx", ".mjs":
		return "javascript"
	case ".py":
		return "python"
	case ".rs":
		return "rust"
	case ".rb":
		return "ruby"
	case ".java":
		return "java"
	case ".c", ".h":
		return "c"
	case ".cpp", ".cc", ".hpp":
		return "cpp"
	case ".sh", ".bash":
		return "bash"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	case ".md":
		return "markdown"
	case ".html":
		return "html"
	case ".css":
		return "css"
	case ".sql":
		return "sql"
	default:
		return ""
	}
}
