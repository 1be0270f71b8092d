package diagram

import (
	"fmt"

	"github.com/alnah/go-remder/internal/diagcache"
)

// Renderer resolves blocks against the cache and fills misses through the
// engine. It holds no state beyond its two collaborators; concurrent use
// is safe to the extent they are. Racing renders of the same source both
// invoke the engine and both store, which is wasteful but benign since the
// content is deterministic.
type Renderer struct {
	cache  diagcache.Cache
	engine Engine
}

// NewRenderer creates a Renderer over the given cache and engine.
func NewRenderer(cache diagcache.Cache, engine Engine) *Renderer {
	return &Renderer{cache: cache, engine: engine}
}

// Render returns the bitmap and description for a block, from cache when
// possible. Unreadable cache entries count as misses and are re-rendered.
// The cache key is the hash of the source text alone; the dialect is not
// part of it, so identical source under two dialects shares one entry.
func (r *Renderer) Render(block Block) (diagcache.Entry, error) {
	hash := SourceHash(block.Source)

	entry, lookupErr := r.cache.Lookup(hash)
	if lookupErr == nil {
		return entry, nil
	}
	// Miss and read failure both fall through to a fresh render.

	wrapped, err := block.Wrap()
	if err != nil {
		return diagcache.Entry{}, err
	}

	img, desc, err := r.engine.Generate(wrapped)
	if err != nil {
		return diagcache.Entry{}, fmt.Errorf("%w: %v", ErrEngine, err)
	}

	entry = diagcache.Entry{Image: img, Description: desc}
	if err := r.cache.Store(hash, entry); err != nil {
		return diagcache.Entry{}, fmt.Errorf("storing rendered diagram: %w", err)
	}
	return entry, nil
}
