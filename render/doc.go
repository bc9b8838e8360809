// Package render turns a set of selected files plus pack metadata into one
// complete output document.
//
// Three styles are supported: XML (default), Markdown, and plain text. Every
// document carries a preamble describing what the reader is looking at, a
// directory listing of all known paths (including files whose content landed
// in another part), the embedded file sections, and optional git diff / log
// sections.
//
// Renderer.Render satisfies split.RenderFunc, so a renderer plugs directly
// into the splitting engine:
//
//	r, err := render.New(render.WithStyle(render.Markdown))
//	parts, err := split.Split(ctx, split.Request{Render: r.Render, ...})
package render
