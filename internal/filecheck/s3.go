package filecheck

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config selects how the S3 client is built. Empty fields fall back to the
// default AWS configuration chain (environment, shared config, instance role).
type S3Config struct {
	Region          string
	Endpoint        string // optional, e.g. a MinIO server
	Profile         string
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

type headObjectAPI interface {
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3 answers for s3://bucket/key paths with HeadObject. The client is built
// on first use so sheets without object store paths never load AWS config.
type S3 struct {
	cfg S3Config

	once   sync.Once
	client headObjectAPI
	err    error
}

// NewS3 returns an S3 oracle configured by cfg.
func NewS3(cfg S3Config) *S3 {
	return &S3{cfg: cfg}
}

// NewS3WithClient returns an S3 oracle using client.
func NewS3WithClient(client *s3.Client) *S3 {
	o := &S3{client: client}
	o.once.Do(func() {})
	return o
}

func (o *S3) init(ctx context.Context) (headObjectAPI, error) {
	o.once.Do(func() {
		o.client, o.err = newS3Client(ctx, o.cfg)
	})
	return o.client, o.err
}

func newS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// Stat implements Oracle.
func (o *S3) Stat(ctx context.Context, path string) (Info, error) {
	bucket, key, err := ParseS3URI(path)
	if err != nil {
		return Info{}, err
	}
	client, err := o.init(ctx)
	if err != nil {
		return Info{}, err
	}

	out, err := client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &bucket, Key: &key})
	if err != nil {
		if isNotFound(err) {
			return Info{}, nil
		}
		return Info{}, fmt.Errorf("head %s: %w", path, err)
	}
	return Info{Exists: true, Size: aws.ToInt64(out.ContentLength)}, nil
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var re *awshttp.ResponseError
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}

// ParseS3URI splits s3://bucket/key.
func ParseS3URI(path string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(path, S3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 uri: %q", path)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 uri %q needs a bucket and a key", path)
	}
	return bucket, key, nil
}
