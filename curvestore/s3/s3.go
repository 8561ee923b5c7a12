// Package s3 provides an S3-backed curvestore.Store for archiving curves.
package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/zcurve"
	"github.com/hupe1980/zcurve/curvestore"
)

// Store implements curvestore.Store on an S3 bucket.
type Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

// Option configures the store.
type Option func(*Store)

// WithPrefix prepends a key prefix (e.g. "curves/") to every curve name.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Store using the default AWS credential chain.
func New(ctx context.Context, bucket string, opts ...Option) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	return NewWithClient(s3.NewFromConfig(cfg), bucket, opts...), nil
}

// NewWithClient creates a Store with a caller-supplied client
// (custom endpoints, test doubles).
func NewWithClient(client *s3.Client, bucket string, opts ...Option) *Store {
	s := &Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name+".json")
}

// Put uploads a curve under the given name.
func (s *Store) Put(ctx context.Context, name string, c *zcurve.SurrogateCurve) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(name)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})

	return err
}

// Get downloads the curve stored under the given name.
func (s *Store) Get(ctx context.Context, name string) (*zcurve.SurrogateCurve, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, curvestore.ErrNotFound
		}
		return nil, err
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, err
	}

	var c zcurve.SurrogateCurve
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}

	return &c, nil
}
