package domain

import "context"

// StorageService persists an object and returns its public URL.
type StorageService interface {
	Upload(ctx context.Context, name string, data []byte, contentType string) (string, error)
}
