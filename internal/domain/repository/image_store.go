package repository

import "context"

// ImageStore resolves profile image references held on accounts.
// Only the reference string is stored by this service; bytes live in the blob store.
type ImageStore interface {
	Exists(ctx context.Context, ref string) (bool, error)
	URL(ref string) string
}
