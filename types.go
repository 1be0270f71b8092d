package remder

import (
	"io"
	"time"

	"github.com/alnah/go-remder/internal/diagcache"
	"github.com/alnah/go-remder/internal/diagram"
	"github.com/alnah/go-remder/internal/launcher"
)

// CacheDirEnv selects the cache base directory when no option sets one.
const CacheDirEnv = "REMDER_CACHE_DIR"

// Default bounds for diagram rendering.
const (
	DefaultRenderBudget = 3 * time.Second
	DefaultMaxRenders   = 4
)

// Presenter receives the styled page produced for an embedded viewer.
// The front end that decides viewer versus browser lives outside this
// module; it supplies the Presenter.
type Presenter interface {
	Present(html string)
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	cacheDir   string
	budget     time.Duration
	maxRenders int
	style      string
	stderr     io.Writer
	diag       io.Writer
}

// WithTimeout sets the per-diagram render budget.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("remder: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.budget = d
	}
}

// WithCacheDir overrides cache base directory resolution.
func WithCacheDir(dir string) Option {
	return func(s *Service) {
		s.cfg.cacheDir = dir
	}
}

// WithMaxRenders caps concurrent diagram engine invocations, including
// timed-out renders still completing in the background.
// Panics if n < 1.
func WithMaxRenders(n int) Option {
	if n < 1 {
		panic("remder: WithMaxRenders count must be positive")
	}
	return func(s *Service) {
		s.cfg.maxRenders = n
	}
}

// WithStyle selects an embedded stylesheet by name.
func WithStyle(name string) Option {
	return func(s *Service) {
		s.cfg.style = name
	}
}

// WithEngine injects the diagram engine (e.g., by tests or to select the
// HTTP engine over the default local command).
func WithEngine(e diagram.Engine) Option {
	return func(s *Service) {
		s.engine = e
	}
}

// WithCache injects the diagram cache (e.g., by tests).
func WithCache(c diagcache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithLauncher injects the launcher chain used by RenderToBrowser.
func WithLauncher(l *launcher.Launcher) Option {
	return func(s *Service) {
		s.launcher = l
	}
}

// WithDiagnostics sets the writers for user-visible notices and
// diagnostic detail. Nil writers discard their stream.
func WithDiagnostics(stderr, diag io.Writer) Option {
	return func(s *Service) {
		s.cfg.stderr = stderr
		s.cfg.diag = diag
	}
}
