package spill

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/peekapi-dev/sdk-go/types"
)

// ArchiveConfig configures the optional S3 backstop a Client falls back to
// when a batch cannot be written to the local spill file (for example
// because the file is at its size cap).
// This is best-effort: upload failures are swallowed the same way a local
// spill I/O failure is, and never change the local spill file's own
// format or size cap.
type ArchiveConfig struct {
	Bucket   string
	Prefix   string
	Endpoint string // optional, for S3-compatible providers
	UsePathStyle bool
}

// Archiver uploads overflow batches to S3 as timestamped JSONL objects.
type Archiver struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewArchiver builds an Archiver from cfg, loading AWS credentials and
// region from the default provider chain, optionally pointed at a custom
// (S3-compatible) endpoint.
func NewArchiver(ctx context.Context, cfg ArchiveConfig) (*Archiver, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("peekapi: archive bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("peekapi: load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &Archiver{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Archive uploads events as one JSONL object, keyed by the current time,
// instead of letting them be dropped when the local spill file is full.
func (a *Archiver) Archive(ctx context.Context, events []types.RequestEvent) error {
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("peekapi: marshal events for archive: %w", err)
	}

	key := a.prefix + "overflow-" + time.Now().UTC().Format("20060102T150405.000000000Z") + ".jsonl"

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(append(data, '\n')),
	})
	if err != nil {
		return fmt.Errorf("peekapi: upload overflow archive: %w", err)
	}
	return nil
}
