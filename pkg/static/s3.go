package static

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of *s3.Client used by S3Source.
type S3API interface {
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Source serves objects from an S3 bucket. A "directory" is a key
// prefix that has at least one object under it.
//
// Example usage:
//
//	client := s3.New(s3.Options{Region: "eu-west-1", Credentials: creds})
//	src := static.NewS3Source(client, "my-site", "public/")
type S3Source struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Source creates a source for bucket. Object keys are prefix
// followed by the requested name.
func NewS3Source(client S3API, bucket, prefix string) *S3Source {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Source{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (s *S3Source) key(name string) string {
	return s.prefix + name
}

// Stat implements Source.
func (s *S3Source) Stat(ctx context.Context, name string) (*FileInfo, error) {
	if name == "" {
		return &FileInfo{Name: name, IsDir: true}, nil
	}

	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err == nil {
		return &FileInfo{
			Name:        name,
			Size:        aws.ToInt64(out.ContentLength),
			ModTime:     aws.ToTime(out.LastModified),
			ContentType: aws.ToString(out.ContentType),
			ETag:        aws.ToString(out.ETag),
		}, nil
	}
	if !isS3NotFound(err) {
		return nil, fmt.Errorf("static: head s3://%s/%s: %w", s.bucket, s.key(name), err)
	}

	isDir, err := s.isDir(ctx, name)
	if err != nil {
		return nil, err
	}
	if !isDir {
		return nil, ErrNotExist
	}
	return &FileInfo{Name: name, IsDir: true}, nil
}

// isDir reports whether any object exists under name + "/".
func (s *S3Source) isDir(ctx context.Context, name string) (bool, error) {
	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(s.key(name) + "/"),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, fmt.Errorf("static: list s3://%s/%s/: %w", s.bucket, s.key(name), err)
	}
	return aws.ToInt32(out.KeyCount) > 0 || len(out.Contents) > 0, nil
}

// Open implements Source. The body is streamed and does not support
// seeking.
func (s *S3Source) Open(ctx context.Context, name string) (*File, error) {
	if name == "" {
		return nil, ErrIsDir
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		if !isS3NotFound(err) {
			return nil, fmt.Errorf("static: get s3://%s/%s: %w", s.bucket, s.key(name), err)
		}
		if isDir, derr := s.isDir(ctx, name); derr == nil && isDir {
			return nil, ErrIsDir
		}
		return nil, ErrNotExist
	}

	return &File{
		FileInfo: FileInfo{
			Name:        name,
			Size:        aws.ToInt64(out.ContentLength),
			ModTime:     aws.ToTime(out.LastModified),
			ContentType: aws.ToString(out.ContentType),
			ETag:        aws.ToString(out.ETag),
		},
		Body: out.Body,
	}, nil
}

func isS3NotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	return errors.As(err, &notFound) || errors.As(err, &noSuchKey)
}
