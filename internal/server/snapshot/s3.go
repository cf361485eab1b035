package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// S3Options addresses the snapshot object in an S3-compatible store.
type S3Options struct {
	RootUser     string
	RootPassword string
	Bucket       string
	Region       string
	BaseEndpoint string
	Key          string
}

// objectStore is the part of *s3.Client the snapshotter needs.
type objectStore interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectStore {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Snapshotter keeps the document as a single object.
type S3Snapshotter struct {
	client objectStore
	bucket string
	key    string
}

// NewS3Snapshotter builds an S3 client with static credentials. Path-style
// addressing is forced so MinIO endpoints work.
func NewS3Snapshotter(ctx context.Context, o S3Options) (*S3Snapshotter, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(o.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			o.RootUser,
			o.RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(opt *s3.Options) {
		if o.BaseEndpoint != "" {
			opt.BaseEndpoint = aws.String(o.BaseEndpoint)
		}
		opt.UsePathStyle = true
	})

	return &S3Snapshotter{client: client, bucket: o.Bucket, key: o.Key}, nil
}

func (s *S3Snapshotter) Save(ctx context.Context, d *Document) error {
	data, err := Encode(d)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put snapshot s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return nil
}

func (s *S3Snapshotter) Load(ctx context.Context) (*Document, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		if isMissingObject(err) {
			return nil, fmt.Errorf("snapshot s3://%s/%s: %w", s.bucket, s.key, common.ErrorNotFound)
		}
		return nil, fmt.Errorf("get snapshot s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read snapshot body: %w", err)
	}
	return Decode(data)
}

func isMissingObject(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
