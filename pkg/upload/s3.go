package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3API captures the S3 operations S3Store uses. *s3.Client satisfies it;
// tests substitute a fake.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Presigner generates presigned GET URLs for claimed files.
// *s3.PresignClient satisfies it.
type S3Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Store stages uploads in an S3 bucket.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	s3Client := s3.NewFromConfig(cfg)
//	store := upload.NewS3Store(s3Client, "my-bucket", "uploads/temp/", 50<<20)
//
//	r.Post("/upload", upload.Handler(store))
type S3Store struct {
	client    S3API
	presigner S3Presigner
	bucket    string
	prefix    string
	maxSize   int64
	ttl       time.Duration
	urlExpiry time.Duration
}

// NewS3Store creates a new S3 staging store.
//
// Parameters:
//   - client: AWS S3 client from aws-sdk-go-v2 (or any S3API)
//   - bucket: S3 bucket name
//   - prefix: Key prefix for staged uploads (e.g., "uploads/temp/")
//   - maxSize: Maximum file size in bytes (0 = no limit)
func NewS3Store(client S3API, bucket, prefix string, maxSize int64) *S3Store {
	s := &S3Store{
		client:    client,
		bucket:    bucket,
		prefix:    prefix,
		maxSize:   maxSize,
		urlExpiry: 24 * time.Hour,
	}
	// Presigning needs the concrete client; fakes inject one through
	// WithPresigner.
	if c, ok := client.(*s3.Client); ok {
		s.presigner = s3.NewPresignClient(c)
	}
	return s
}

// WithURLExpiry sets how long presigned URLs are valid.
func (s *S3Store) WithURLExpiry(d time.Duration) *S3Store {
	s.urlExpiry = d
	return s
}

// WithTTL sets how long staged objects stay claimable. Claiming an older
// object removes it and returns ErrExpired. Zero disables the claim-time
// check; Cleanup applies its own age either way.
func (s *S3Store) WithTTL(d time.Duration) *S3Store {
	s.ttl = d
	return s
}

// WithPresigner overrides the presign client used for File.URL.
func (s *S3Store) WithPresigner(p S3Presigner) *S3Store {
	s.presigner = p
	return s
}

// Save uploads a file under the store's prefix and returns a temp ID.
func (s *S3Store) Save(filename, contentType string, size int64, r io.Reader) (string, error) {
	if s.maxSize > 0 && size > s.maxSize {
		return "", ErrTooLarge
	}

	tempID := uuid.NewString()
	key := s.key(tempID)

	// PutObject wants a seekable body, so buffer the whole file. Staged
	// uploads are size-capped upstream by the handler.
	var buf bytes.Buffer
	if s.maxSize > 0 {
		n, err := io.Copy(&buf, io.LimitReader(r, s.maxSize+1))
		if err != nil {
			return "", err
		}
		if n > s.maxSize {
			return "", ErrTooLarge
		}
	} else if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}

	_, err := s.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"original-filename": filename,
			"upload-time":       time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("upload: s3 put: %w", err)
	}

	return tempID, nil
}

// Claim retrieves a staged file from S3. The object is deleted in the
// background once claimed.
func (s *S3Store) Claim(tempID string) (*File, error) {
	if _, err := uuid.Parse(tempID); err != nil {
		return nil, ErrNotFound
	}

	key := s.key(tempID)
	ctx := context.Background()

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, ErrNotFound
	}

	if s.ttl > 0 && head.LastModified != nil && time.Since(*head.LastModified) > s.ttl {
		s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		return nil, ErrExpired
	}

	get, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, ErrNotFound
	}

	filename := tempID
	if fn, ok := head.Metadata["original-filename"]; ok {
		filename = fn
	}

	contentType := "application/octet-stream"
	if head.ContentType != nil {
		contentType = *head.ContentType
	}

	var size int64
	if head.ContentLength != nil {
		size = *head.ContentLength
	}

	// Presigned URL for direct access; best-effort.
	var url string
	if s.presigner != nil {
		presigned, err := s.presigner.PresignGetObject(ctx,
			&s3.GetObjectInput{
				Bucket: aws.String(s.bucket),
				Key:    aws.String(key),
			},
			s3.WithPresignExpires(s.urlExpiry),
		)
		if err == nil {
			url = presigned.URL
		}
	}

	// Claimed means consumed; deletion runs in the background.
	go func() {
		s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
	}()

	return &File{
		ID:          tempID,
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
		URL:         url,
		Reader:      get.Body,
	}, nil
}

// Cleanup removes staged objects older than maxAge.
func (s *S3Store) Cleanup(maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)
	ctx := context.Background()

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	var stale []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("upload: s3 list: %w", err)
		}

		for _, obj := range page.Contents {
			if obj.LastModified != nil && obj.LastModified.Before(cutoff) && obj.Key != nil {
				stale = append(stale, *obj.Key)
			}
		}
	}

	for _, key := range stale {
		s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
	}

	return nil
}

func (s *S3Store) key(tempID string) string {
	return s.prefix + tempID
}
