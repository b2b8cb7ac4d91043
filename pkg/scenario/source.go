package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrNoS3Client is returned when an s3:// scenario is opened without a client.
var ErrNoS3Client = errors.New("scenario: s3 uri needs an s3 client")

// maxScenarioSize bounds a scenario read from S3.
const maxScenarioSize = 4 << 20

// Source loads one scenario.
type Source interface {
	Load(ctx context.Context) (*Scenario, error)
	String() string
}

// GetObjectAPI is the part of *s3.Client a S3Source needs.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// FileSource loads a scenario from the local filesystem.
type FileSource struct {
	Path string
}

// Load implements Source.
func (f FileSource) Load(ctx context.Context) (*Scenario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(f.Path)
}

func (f FileSource) String() string { return f.Path }

// S3Source loads a scenario object from S3.
type S3Source struct {
	Client GetObjectAPI
	Bucket string
	Key    string
}

// Load implements Source.
func (s S3Source) Load(ctx context.Context) (*Scenario, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("scenario: get %s: %w", s, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxScenarioSize+1))
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", s, err)
	}
	if len(data) > maxScenarioSize {
		return nil, fmt.Errorf("scenario: %s exceeds %d bytes", s, maxScenarioSize)
	}

	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s, err)
	}
	if sc.Name == "" {
		sc.Name = s.String()
	}
	return sc, nil
}

func (s S3Source) String() string { return "s3://" + s.Bucket + "/" + s.Key }

// NewSource returns the Source for uri: an S3Source for s3://bucket/key, a
// FileSource otherwise. client is only used for S3.
func NewSource(uri string, client GetObjectAPI) (Source, error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return FileSource{Path: uri}, nil
	}
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("scenario: invalid s3 uri %q, want s3://bucket/key", uri)
	}
	if client == nil {
		return nil, ErrNoS3Client
	}
	return S3Source{Client: client, Bucket: bucket, Key: key}, nil
}

// Open loads the scenario at uri. See NewSource.
func Open(ctx context.Context, uri string, client GetObjectAPI) (*Scenario, error) {
	src, err := NewSource(uri, client)
	if err != nil {
		return nil, err
	}
	return src.Load(ctx)
}

// IsS3 reports whether uri names an S3 object.
func IsS3(uri string) bool {
	return strings.HasPrefix(uri, "s3://")
}
