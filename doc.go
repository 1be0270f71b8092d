// Package remder renders Markdown documents with embedded diagram blocks
// into styled HTML pages.
//
// # Quick Start
//
// Create a service and render a document:
//
//	svc, err := remder.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	html, err := svc.RenderPage(ctx, "# Hello\n\n```plantuml\nA->B\n```")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// RenderPage returns the page as a string for an embedded viewer.
// RenderToBrowser additionally writes the page to the cache directory and
// opens it with the launcher chain (OS default application first, then a
// generic open command).
//
// # Diagram Pipeline
//
// Fenced code blocks tagged with a supported dialect (plantuml, ditaa,
// dot, salt, gantt, mindmap) are intercepted during rendering:
//
//  1. The block's source text is hashed; a cached bitmap is reused when
//     present on disk.
//  2. On a miss, the source is wrapped with the dialect's @start/@end
//     markers and handed to the external engine (a PlantUML server or a
//     local executable).
//  3. Generation runs concurrently and the caller waits a bounded time
//     (3s by default). On timeout or engine failure the block degrades to
//     a literal code block; the rest of the document always renders.
//
// A timed-out render is not cancelled: it completes in the background and
// warms the cache for the next pass. The number of in-flight renders is
// capped (see WithMaxRenders).
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc, err := remder.New(
//	    remder.WithTimeout(5 * time.Second),
//	    remder.WithCacheDir("/var/cache/remder"),
//	    remder.WithEngine(diagramEngine),
//	)
//
// The cache directory defaults to the REMDER_CACHE_DIR environment
// variable, falling back to the process-wide temporary directory.
package remder
