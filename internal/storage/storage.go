// Package storage abstracts the S3-compatible object store that holds member
// photos. Everything streams; nothing is staged on local disk.
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions carries optional upload parameters. Size -1 means
// unknown; the backend then buffers or chunks as it supports.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the object store client the member service talks to.
type Storage interface {
	// Put streams an object to the store under key.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get opens the object for reading. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a URL that downloads the object without
	// credentials until expiry passes.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
