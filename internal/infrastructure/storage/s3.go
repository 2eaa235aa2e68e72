package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"joinup/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrDisabled = errors.New("object storage not configured")

type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Object struct {
	UserID      uuid.UUID
	Ext         string
	ContentType string
	Body        []byte
}

type S3Store struct {
	client        ObjectPutter
	bucket        string
	region        string
	publicBaseURL string
	logger        zerolog.Logger

	now    func() time.Time
	suffix func() string
}

func NewS3(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) (*S3Store, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3Store(client, cfg, logger), nil
}

func NewS3Store(client ObjectPutter, cfg config.StorageConfig, logger zerolog.Logger) *S3Store {
	return &S3Store{
		client:        client,
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        logger.With().Str("component", "storage").Logger(),
		now:           time.Now,
		suffix:        func() string { return uuid.NewString()[:8] },
	}
}

// PutProfileImage stores obj under "<userID>-<unixms>.<ext>" without
// overwriting. If that key is taken it retries once with a random suffix.
// It returns the public URL of the stored object.
func (s *S3Store) PutProfileImage(ctx context.Context, obj Object) (string, error) {
	if s == nil || s.client == nil {
		return "", ErrDisabled
	}

	ext := strings.TrimPrefix(strings.ToLower(obj.Ext), ".")
	if ext == "" {
		ext = "jpg"
	}
	base := fmt.Sprintf("%s-%d", obj.UserID, s.now().UnixMilli())

	key := base + "." + ext
	err := s.put(ctx, key, obj)
	if isKeyTaken(err) {
		key = fmt.Sprintf("%s-%s.%s", base, s.suffix(), ext)
		s.logger.Debug().Str("key", key).Msg("object key taken, retrying with suffix")
		err = s.put(ctx, key, obj)
	}
	if err != nil {
		return "", err
	}

	return s.PublicURL(key), nil
}

func (s *S3Store) put(ctx context.Context, key string, obj Object) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(obj.Body),
		ContentType:   aws.String(obj.ContentType),
		ContentLength: aws.Int64(int64(len(obj.Body))),
		CacheControl:  aws.String("max-age=3600"),
		IfNoneMatch:   aws.String("*"),
	})
	return err
}

func (s *S3Store) PublicURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func isKeyTaken(err error) bool {
	if err == nil {
		return false
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "PreconditionFailed", "ConditionalRequestConflict":
			return true
		}
	}
	return false
}
