package repositories

import "context"

// AttachmentStore holds journal attachment blobs keyed by generated filename.
type AttachmentStore interface {
	PutAttachment(ctx context.Context, name string, content []byte) error
	GetAttachment(ctx context.Context, name string) ([]byte, error)
	DeleteAttachment(ctx context.Context, name string) error
}
