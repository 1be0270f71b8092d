// Package pipeline implements the Markdown-to-HTML rendering pipeline.
//
// This package handles document conversion and page assembly:
//   - Markdown to HTML conversion via Goldmark
//   - Diagram block interception through a Goldmark extension
//   - CSS injection into the assembled HTML page
//
// Diagram generation itself is handled by internal/diagram; the extension
// here only decides which fenced code blocks leave the default rendering
// path and what happens when their rendering fails.
package pipeline
