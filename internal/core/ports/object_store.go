package ports

import (
	"context"
	"io"
)

// ObjectStore uploads a named binary blob to a bucket.
type ObjectStore interface {
	// Upload creates or overwrites the object at key with owner-only
	// access. A failure leaves no partial-success ambiguity: either the
	// store acknowledged the object or the caller must treat the upload
	// as not having happened.
	Upload(ctx context.Context, bucket, key string, body io.Reader) error
}
