package gcs

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/repository"
	"github.com/oksasatya/go-ddd-account-wishlist/pkg/helpers"
)

// ImageStore resolves profile image references against a GCS bucket.
// References are object paths inside Bucket, e.g. "avatars/<account>/<file>.png".
type ImageStore struct {
	Client *storage.Client
	Bucket string
}

func NewImageStore(client *storage.Client, bucket string) *ImageStore {
	return &ImageStore{Client: client, Bucket: bucket}
}

func (s *ImageStore) Exists(ctx context.Context, ref string) (bool, error) {
	ref = strings.TrimPrefix(ref, "/")
	if ref == "" {
		return false, nil
	}
	_, err := s.Client.Bucket(s.Bucket).Object(ref).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *ImageStore) URL(ref string) string {
	return helpers.PublicURL(s.Bucket, ref)
}

var _ repository.ImageStore = (*ImageStore)(nil)
