package service

import "errors"

// ErrClientClosed indicates the client has been closed.
var ErrClientClosed = errors.New("stitch: client is closed")

// ErrEmptyBatch indicates an assembly run with no recipes.
var ErrEmptyBatch = errors.New("stitch: batch has no recipes")
