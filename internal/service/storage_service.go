package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Emil0510/learn-ai/internal/domain"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseStorage uploads PDFs to a Supabase storage bucket using the
// service-role client and returns the public URL of the stored object.
type SupabaseStorage struct {
	client domain.SupabaseClient
	bucket string
	logger domain.Logger
}

func NewSupabaseStorage(client domain.SupabaseClient, bucket string, logger domain.Logger) *SupabaseStorage {
	return &SupabaseStorage{client: client, bucket: bucket, logger: logger}
}

func (s *SupabaseStorage) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	svc, err := s.client.Service()
	if err != nil {
		return "", fmt.Errorf("storage client unavailable: %w", err)
	}

	upsert := false
	_, err = svc.Storage.UploadFile(s.bucket, name, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to bucket %s: %w", s.bucket, err)
	}

	url := svc.Storage.GetPublicUrl(s.bucket, name).SignedURL
	s.logger.Debug("Uploaded file to storage", "bucket", s.bucket, "name", name)
	return url, nil
}
