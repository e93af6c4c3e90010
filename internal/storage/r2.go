package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/surajbi2/secureIn-backend/internal/config"
)

// R2Archiver stores issued QR images in Cloudflare R2 (S3 API) so security
// staff can retrieve pass artwork even after a hard delete.
type R2Archiver struct {
	client *s3.Client
	bucket string
}

// NewR2Archiver builds the archiver from config. Returns nil when R2 is not
// configured; callers treat a nil archiver as "archival disabled".
func NewR2Archiver(cfg *config.Config) *R2Archiver {
	if cfg.R2.Endpoint == "" || cfg.R2.AccessKey == "" || cfg.R2.Bucket == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.R2.AccessKey,
			cfg.R2.SecretKey,
			"",
		)),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		log.Printf("[R2] Failed to configure client: %v", err)
		return nil
	}

	endpoint := cfg.R2.Endpoint
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &R2Archiver{client: client, bucket: cfg.R2.Bucket}
}

// ArchiveQR uploads a pass QR image under qr/<passId>.png. Failures are
// logged and swallowed: archival must never block pass issuance.
func (a *R2Archiver) ArchiveQR(ctx context.Context, passID string, image []byte) {
	if a == nil {
		return
	}

	key := fmt.Sprintf("qr/%s.png", passID)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(image),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		log.Printf("[R2] Failed to archive QR for pass %s: %v", passID, err)
	}
}
