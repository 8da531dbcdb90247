package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"job-connect/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
)

// Spaces stores files in an S3-compatible bucket such as DigitalOcean Spaces.
type Spaces struct {
	client  *s3.S3
	bucket  string
	maxSize int64
	logger  *logrus.Logger
}

func NewSpaces(cfg config.StorageConfig, logger *logrus.Logger) (*Spaces, error) {
	if cfg.SpacesBucket == "" || cfg.SpacesRegion == "" {
		return nil, errors.New("spaces bucket and region are required")
	}

	endpoint := cfg.SpacesEndpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.digitaloceanspaces.com", cfg.SpacesRegion)
	}

	awsCfg := &aws.Config{
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(cfg.SpacesRegion),
		S3ForcePathStyle: aws.Bool(false),
	}
	if cfg.SpacesAccessKey != "" || cfg.SpacesSecretKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.SpacesAccessKey, cfg.SpacesSecretKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create spaces session: %w", err)
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"bucket":   cfg.SpacesBucket,
			"region":   cfg.SpacesRegion,
			"endpoint": endpoint,
		}).Info("spaces storage initialized")
	}

	return &Spaces{
		client:  s3.New(sess),
		bucket:  cfg.SpacesBucket,
		maxSize: cfg.MaxUploadSize,
		logger:  logger,
	}, nil
}

func (s *Spaces) Store(ctx context.Context, data []byte, prefix, suggestedName string) (string, error) {
	ext, err := CheckDocument(data, suggestedName, s.maxSize)
	if err != nil {
		return "", err
	}

	key := NewKey(prefix, ext)
	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimetype.Detect(data).String()),
		ACL:         aws.String("private"),
	})
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).WithField("key", key).Error("spaces upload failed")
		}
		return "", fmt.Errorf("upload file: %w", err)
	}
	return key, nil
}

func (s *Spaces) Delete(ctx context.Context, ref string) error {
	if !validRef(ref) {
		return ErrInvalidRef
	}
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// Healthy reports whether the bucket is reachable.
func (s *Spaces) Healthy(ctx context.Context) bool {
	_, err := s.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil && s.logger != nil {
		s.logger.WithError(err).WithField("bucket", s.bucket).Warn("spaces health check failed")
	}
	return err == nil
}
