package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/randalmurphal/packkit/gitmeta"
	"github.com/randalmurphal/packkit/split"
)

// Style selects the output document format.
type Style string

// Supported output styles.
const (
	XML      Style = "xml"
	Markdown Style = "markdown"
	Plain    Style = "plain"
)

// ErrUnknownStyle is returned for a style name outside the supported set.
var ErrUnknownStyle = errors.New("unknown output style")

// ParseStyle validates a style name. An empty name selects XML.
func ParseStyle(name string) (Style, error) {
	switch Style(name) {
	case "":
		return XML, nil
	case XML, Markdown, Plain:
		return Style(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
}

// Ext returns the conventional file extension for the style.
func (s Style) Ext() string {
	switch s {
	case Markdown:
		return ".md"
	case Plain:
		return ".txt"
	default:
		return ".xml"
	}
}

// Renderer produces complete pack documents in a fixed style. A Renderer is
// pure request/response: it keeps no state between Render calls, so the same
// instance serves every trial and committed part of a split.
type Renderer struct {
	style       Style
	header      string
	lineNumbers bool
	tree        bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// New creates a renderer. The default is XML style with a directory listing
// and no line numbers.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{style: XML, tree: true}
	for _, opt := range opts {
		opt(r)
	}
	style, err := ParseStyle(string(r.style))
	if err != nil {
		return nil, err
	}
	r.style = style
	return r, nil
}

// WithStyle sets the output style.
func WithStyle(style Style) Option {
	return func(r *Renderer) { r.style = style }
}

// WithHeader sets a custom header printed at the top of every document.
func WithHeader(header string) Option {
	return func(r *Renderer) { r.header = header }
}

// WithLineNumbers prefixes each embedded content line with its line number.
func WithLineNumbers(enabled bool) Option {
	return func(r *Renderer) { r.lineNumbers = enabled }
}

// WithTree toggles the directory listing section.
func WithTree(enabled bool) Option {
	return func(r *Renderer) { r.tree = enabled }
}

// section is one embedded file in the document.
type section struct {
	Path    string
	Content string
}

// document is the data handed to the style templates.
type document struct {
	Header   string
	RootDirs []string
	Position *split.Position
	Tree     string
	Files    []section
	Diff     *gitmeta.Diff
	Log      *gitmeta.Log
}

// Render produces one document. It satisfies split.RenderFunc.
func (r *Renderer) Render(_ context.Context, req split.RenderRequest) (string, error) {
	doc := document{
		Header:   r.header,
		RootDirs: req.RootDirs,
		Position: req.Position,
		Files:    make([]section, 0, len(req.Files)),
	}
	if r.tree {
		doc.Tree = Tree(req.AllPaths)
	}
	for _, f := range req.Files {
		content := f.Content
		if r.lineNumbers {
			content = numberLines(content)
		}
		doc.Files = append(doc.Files, section{Path: f.Path, Content: content})
	}
	if !req.Diff.IsEmpty() {
		doc.Diff = req.Diff
	}
	if !req.Log.IsEmpty() {
		doc.Log = req.Log
	}

	tmpl := styleTemplates[r.style]
	var sb strings.Builder
	if err := tmpl.Execute(&sb, doc); err != nil {
		return "", fmt.Errorf("render %s document: %w", r.style, err)
	}
	return sb.String(), nil
}

// numberLines prefixes every line of content with its 1-based line number.
func numberLines(content string) string {
	lines := strings.Split(content, "\n")
	width := len(fmt.Sprint(len(lines)))
	var sb strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&sb, "%*d: %s", width, i+1, line)
		if i < len(lines)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
