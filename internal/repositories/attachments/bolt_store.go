// Package attachments stores journal entry attachment blobs in a bbolt file.
package attachments

import (
	"context"
	"fmt"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	bolt "go.etcd.io/bbolt"
)

const bucketAttachments = "attachments"

// BoltStore keeps attachment content keyed by its generated filename.
type BoltStore struct {
	db *bolt.DB
}

var _ portsrepo.AttachmentStore = (*BoltStore)(nil)

// Open opens (or creates) the attachment database at path.
func Open(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open attachment database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketAttachments)); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketAttachments, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

// Close closes the database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) PutAttachment(_ context.Context, name string, content []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketAttachments)).Put([]byte(name), content)
	})
}

// GetAttachment returns a copy of the stored content; bbolt values are only
// valid inside the transaction.
func (s *BoltStore) GetAttachment(_ context.Context, name string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(bucketAttachments)).Get([]byte(name))
		if data == nil {
			return fmt.Errorf("attachment %q: %w", name, apperrors.ErrNotFound)
		}
		out = make([]byte, len(data))
		copy(out, data)
		return nil
	})
	return out, err
}

// DeleteAttachment removes the content; deleting a missing name is a no-op.
func (s *BoltStore) DeleteAttachment(_ context.Context, name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketAttachments)).Delete([]byte(name))
	})
}
