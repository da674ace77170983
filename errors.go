package stitch

import "github.com/synthome/stitch/application/service"

// Exported errors for library consumers.
var (
	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = service.ErrClientClosed

	// ErrEmptyBatch indicates a batch selection with no recipes.
	ErrEmptyBatch = service.ErrEmptyBatch
)
