// Package imagestore abstracts the external object store that holds post and
// profile images. Upload takes a binary blob and returns a durable URL;
// Delete takes the delivery URL and removes the stored object.
package imagestore

import (
	"context"
	"io"
)

type ImageStore interface {
	Upload(ctx context.Context, ownerID, filename string, blob io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}
