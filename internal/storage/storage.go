// Package storage is the file attachment port used by the leave workflow.
// Core logic only needs store-bytes and delete-by-name.
package storage

import "context"

type FileStore interface {
	Store(ctx context.Context, data []byte, ext string) (string, error)
	Delete(ctx context.Context, name string) error
}
