// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package feed

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3Backend reads each table as an object under a shared key prefix in an
// S3 (or S3-compatible, e.g. R2) bucket. Credentials and an optional custom
// endpoint are read from the environment, the way an operator points this
// tool at a feed mirror without touching code.
type s3Backend struct {
	ctx    context.Context
	client *s3.Client
	bucket string
	prefix string
}

// openS3 parses an "s3://bucket/key-prefix" location and builds a client
// from AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY/AWS_REGION, optionally
// pointed at a non-AWS endpoint via AWS_ENDPOINT_URL.
func openS3(location string) (*s3Backend, error) {
	rest := strings.TrimPrefix(location, "s3://")
	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return nil, fmt.Errorf("feed: malformed s3 location %q", location)
	}
	prefix = strings.TrimSuffix(prefix, "/")

	accessKeyID := os.Getenv("AWS_ACCESS_KEY_ID")
	secretAccessKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if accessKeyID == "" || secretAccessKey == "" {
		return nil, fmt.Errorf("feed: AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY not set")
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}

	opts := s3.Options{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, os.Getenv("AWS_SESSION_TOKEN")),
	}
	if endpoint := os.Getenv("AWS_ENDPOINT_URL"); endpoint != "" {
		opts.BaseEndpoint = &endpoint
		opts.UsePathStyle = true
	}

	return &s3Backend{
		ctx:    context.Background(),
		client: s3.New(opts),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (b *s3Backend) key(name string) string {
	if b.prefix == "" {
		return name
	}
	return b.prefix + "/" + name
}

func (b *s3Backend) open(name string) (io.ReadCloser, error) {
	key := b.key(name)
	out, err := b.client.GetObject(b.ctx, &s3.GetObjectInput{Bucket: &b.bucket, Key: &key})
	if err != nil {
		return nil, fmt.Errorf("feed: get s3://%s/%s: %w", b.bucket, key, err)
	}
	return out.Body, nil
}

func (b *s3Backend) exists(name string) bool {
	key := b.key(name)
	_, err := b.client.HeadObject(b.ctx, &s3.HeadObjectInput{Bucket: &b.bucket, Key: &key})
	return err == nil
}

func (b *s3Backend) close() error { return nil }
