// Package diagcache persists rendered diagrams on durable storage, keyed
// by the content hash of their source text.
package diagcache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Sentinel errors for cache operations.
var (
	// ErrCacheMiss means no image artifact exists for the key.
	ErrCacheMiss = errors.New("diagram not cached")

	// ErrCacheRead means the image artifact exists but the entry could not
	// be read back in full. Callers treat this as a miss and re-render.
	ErrCacheRead = errors.New("cached diagram unreadable")
)

// Entry is one cached render: the bitmap and its description.
type Entry struct {
	Image       []byte
	Description string
}

// Cache is the lookup/store contract for rendered diagrams.
// Implementations are injected so tests can substitute recording or
// in-memory variants.
type Cache interface {
	Lookup(hash int64) (Entry, error)
	Store(hash int64, entry Entry) error
}

// DirCache stores entries as sibling files under a base directory:
// {dir}/{hash}.png and {dir}/{hash}.desc, with the hash in signed decimal.
// Entries are immutable once written and never evicted. Writers take no
// locks: two renders of the same source produce identical content, so a
// racing overwrite is benign.
type DirCache struct {
	dir string
}

// NewDirCache creates a DirCache rooted at dir. The directory is created
// lazily on the first Store.
func NewDirCache(dir string) *DirCache {
	return &DirCache{dir: dir}
}

// Compile-time interface check.
var _ Cache = (*DirCache)(nil)

// Lookup returns the entry for hash. Presence is decided by the image
// artifact alone; a readable image with a missing or unreadable
// description yields ErrCacheRead.
func (c *DirCache) Lookup(hash int64) (Entry, error) {
	img, err := os.ReadFile(c.imagePath(hash))
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, ErrCacheMiss
		}
		return Entry{}, fmt.Errorf("%w: %v", ErrCacheRead, err)
	}

	desc, err := os.ReadFile(c.descPath(hash))
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrCacheRead, err)
	}

	return Entry{Image: img, Description: string(desc)}, nil
}

// Store writes the image and then the description as two independent
// writes, not an atomic pair. A crash between them leaves an entry that
// Lookup reports as unreadable, which re-renders on the next pass.
func (c *DirCache) Store(hash int64, entry Entry) error {
	if err := os.MkdirAll(c.dir, 0o750); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	// #nosec G306 -- cache artifacts are meant to be readable
	if err := os.WriteFile(c.imagePath(hash), entry.Image, 0o644); err != nil {
		return fmt.Errorf("writing image artifact: %w", err)
	}

	// #nosec G306 -- cache artifacts are meant to be readable
	if err := os.WriteFile(c.descPath(hash), []byte(entry.Description), 0o644); err != nil {
		return fmt.Errorf("writing description artifact: %w", err)
	}

	return nil
}

// Dir returns the cache base directory.
func (c *DirCache) Dir() string {
	return c.dir
}

func (c *DirCache) imagePath(hash int64) string {
	return filepath.Join(c.dir, strconv.FormatInt(hash, 10)+".png")
}

func (c *DirCache) descPath(hash int64) string {
	return filepath.Join(c.dir, strconv.FormatInt(hash, 10)+".desc")
}
