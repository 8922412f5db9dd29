//go:build s3snapshot

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const expiresMetaKey = "weft-expires-at"

// S3Store keeps snapshots as objects under a bucket prefix. Expiry is
// carried in object metadata and enforced on Load; rely on a bucket
// lifecycle rule for physical cleanup.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Store creates a store over an existing S3 client.
func NewS3Store(client *s3.Client, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Store) key(sessionID string) string {
	return path.Join(s.prefix, sessionID)
}

// Save upserts a snapshot object.
func (s *S3Store) Save(ctx context.Context, sessionID string, data []byte, expiresAt time.Time) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(sessionID)),
		Body:   bytes.NewReader(data),
		Metadata: map[string]string{
			expiresMetaKey: expiresAt.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return fmt.Errorf("store: s3 save %s: %w", sessionID, err)
	}
	return nil
}

// Load returns the snapshot when it exists and has not expired.
func (s *S3Store) Load(ctx context.Context, sessionID string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(sessionID)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: s3 load %s: %w", sessionID, err)
	}
	defer out.Body.Close()

	if raw, ok := out.Metadata[expiresMetaKey]; ok {
		expires, perr := time.Parse(time.RFC3339, raw)
		if perr == nil && !expires.After(time.Now()) {
			return nil, ErrNotFound
		}
	}

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("store: s3 read %s: %w", sessionID, err)
	}
	return data, nil
}

// Delete removes the snapshot object.
func (s *S3Store) Delete(ctx context.Context, sessionID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(sessionID)),
	})
	if err != nil {
		return fmt.Errorf("store: s3 delete %s: %w", sessionID, err)
	}
	return nil
}

// Close is a no-op; the caller owns the client.
func (s *S3Store) Close() error {
	return nil
}
