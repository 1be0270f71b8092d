package remder

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyDocument = errors.New("document content cannot be empty")
	ErrPageCache     = errors.New("failed to write page cache file")
)
