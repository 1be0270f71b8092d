package remder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alnah/go-remder/internal/assets"
	"github.com/alnah/go-remder/internal/diagcache"
	"github.com/alnah/go-remder/internal/diagram"
	"github.com/alnah/go-remder/internal/gate"
	"github.com/alnah/go-remder/internal/launcher"
	"github.com/alnah/go-remder/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector   = (*pipeline.CSSInjection)(nil)
	_ diagcache.Cache        = (*diagcache.DirCache)(nil)
	_ diagram.Engine         = (*diagram.HTTPEngine)(nil)
	_ diagram.Engine         = (*diagram.CommandEngine)(nil)
)

// Service orchestrates document rendering: Markdown in, styled HTML page
// out, with diagram blocks resolved through the cache and the render gate.
type Service struct {
	cfg         serviceConfig
	cache       diagcache.Cache
	engine      diagram.Engine
	renderer    *diagram.Renderer
	gate        *gate.Gate
	converter   pipeline.HTMLConverter
	cssInjector pipeline.CSSInjector
	launcher    *launcher.Launcher
	css         string
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithEngine).
// Returns error if the configured style cannot be loaded.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		cfg: serviceConfig{
			budget:     DefaultRenderBudget,
			maxRenders: DefaultMaxRenders,
			style:      assets.DefaultStyleName,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	// Cache directory resolution: option > environment > temp directory.
	if s.cfg.cacheDir == "" {
		s.cfg.cacheDir = os.Getenv(CacheDirEnv)
	}
	if s.cfg.cacheDir == "" {
		s.cfg.cacheDir = os.TempDir()
	}

	css, err := assets.LoadStyle(s.cfg.style)
	if err != nil {
		return nil, fmt.Errorf("loading style: %w", err)
	}
	s.css = css

	// Create collaborators if not injected (e.g., by tests)
	if s.cache == nil {
		s.cache = diagcache.NewDirCache(s.cfg.cacheDir)
	}
	if s.engine == nil {
		s.engine = diagram.NewCommandEngine("")
	}
	if s.launcher == nil {
		s.launcher = launcher.New(nil, s.cfg.stderr, s.cfg.diag)
	}

	s.renderer = diagram.NewRenderer(s.cache, s.engine)
	s.gate = gate.New(s.cfg.budget, s.cfg.maxRenders)
	s.cssInjector = &pipeline.CSSInjection{}
	s.converter = pipeline.NewGoldmarkConverter(
		&pipeline.DiagramExtension{Render: s.renderBounded},
	)

	return s, nil
}

// renderBounded is the gate-wrapped render step handed to the extension.
// Timeouts and engine failures come back as errors; the extension turns
// both into fallback rendering for that block alone.
func (s *Service) renderBounded(block diagram.Block) (diagcache.Entry, error) {
	return gate.Run(s.gate, func() (diagcache.Entry, error) {
		return s.renderer.Render(block)
	})
}

// RenderPage converts a Markdown document into a styled HTML page and
// returns it as a string, the contract consumed by an embedded viewer.
// The context is used for cancellation and timeout of the document pass.
func (s *Service) RenderPage(ctx context.Context, markdown string) (string, error) {
	if markdown == "" {
		return "", ErrEmptyDocument
	}

	htmlContent, err := s.converter.ToHTML(ctx, markdown)
	if err != nil {
		return "", fmt.Errorf("converting to HTML: %w", err)
	}

	return s.cssInjector.InjectCSS(ctx, htmlContent, s.css), nil
}

// RenderToBrowser renders the document, writes the page to the cache
// directory named by the document's content hash, and opens it with the
// launcher chain. Launch failures are reported through the configured
// writers, never returned; the returned error covers rendering and the
// cache write only.
func (s *Service) RenderToBrowser(ctx context.Context, markdown string) (string, error) {
	htmlContent, err := s.RenderPage(ctx, markdown)
	if err != nil {
		return "", err
	}

	path := s.PageCachePath(markdown)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageCache, err)
	}
	// #nosec G306 -- the page is handed to a browser
	if err := os.WriteFile(path, []byte(htmlContent), 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageCache, err)
	}

	s.launcher.Launch(path)
	return path, nil
}

// PageCachePath returns where RenderToBrowser writes the page for the
// given document text: {cacheDir}/remder-{hash}.html.
func (s *Service) PageCachePath(markdown string) string {
	hash := diagram.SourceHash(markdown)
	return filepath.Join(s.cfg.cacheDir, "remder-"+strconv.FormatInt(hash, 10)+".html")
}

// CacheDir returns the resolved cache base directory.
func (s *Service) CacheDir() string {
	return s.cfg.cacheDir
}

// Close releases Service resources. The current collaborators are
// stateless, so Close is a no-op kept for API stability; callers should
// still defer it.
func (s *Service) Close() error {
	return nil
}
