package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/config"
	"go.uber.org/zap"
)

const (
	DefaultKeyPrefix    = "uploads/"
	DefaultSignedURLTTL = time.Hour
	pdfContentType      = "application/pdf"
)

type StorageServiceInterface interface {
	Put(ctx context.Context, data []byte, name string) (string, error)
	Get(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
	SignedURL(ctx context.Context, name string, ttl time.Duration, disposition string) (string, error)
}

// S3API is the part of *s3.Client the storage service uses.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Presigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type StorageService struct {
	api       S3API
	presigner Presigner
	bucket    string
	prefix    string
	ttl       time.Duration
	log       *zap.Logger
}

func NewStorageService(api S3API, presigner Presigner, bucket, prefix string, ttl time.Duration, log *zap.Logger) *StorageService {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if ttl <= 0 {
		ttl = DefaultSignedURLTTL
	}
	return &StorageService{
		api:       api,
		presigner: presigner,
		bucket:    bucket,
		prefix:    strings.TrimLeft(prefix, "/"),
		ttl:       ttl,
		log:       log,
	}
}

// NewS3StorageService builds the storage service on a real S3 (or S3-compatible) bucket.
func NewS3StorageService(ctx context.Context, cfg *config.StorageConfig, log *zap.Logger) (*StorageService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewStorageService(client, s3.NewPresignClient(client), cfg.Bucket, cfg.Prefix, cfg.SignedURLTTL, log), nil
}

// NormalizeKey maps a file name or path onto its object key under the default prefix.
func NormalizeKey(name string) string {
	return normalizeKey(DefaultKeyPrefix, name)
}

// NormalizeKey maps a file name or path onto its object key under the configured prefix.
func (s *StorageService) NormalizeKey(name string) string {
	return normalizeKey(s.prefix, name)
}

// normalizeKey drops leading slashes and every leading copy of prefix, then applies prefix once.
func normalizeKey(prefix, name string) string {
	key := strings.TrimLeft(name, "/")
	for strings.HasPrefix(key, prefix) {
		key = strings.TrimLeft(strings.TrimPrefix(key, prefix), "/")
	}
	return prefix + key
}

func (s *StorageService) Put(ctx context.Context, data []byte, name string) (string, error) {
	key := s.NormalizeKey(name)
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(pdfContentType),
	})
	if err != nil {
		s.log.Error("upload to storage failed", zap.String("key", key), zap.Error(err))
		return "", &apperror.StorageError{Op: "upload", Key: key, Err: err}
	}
	return key, nil
}

func (s *StorageService) Delete(ctx context.Context, name string) error {
	key := s.NormalizeKey(name)
	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.log.Error("delete from storage failed", zap.String("key", key), zap.Error(err))
		return &apperror.StorageError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// SignedURL issues a presigned GET for name. ttl <= 0 uses the configured TTL; a non-empty
// disposition is returned by storage as the Content-Disposition of the response.
func (s *StorageService) SignedURL(ctx context.Context, name string, ttl time.Duration, disposition string) (string, error) {
	key := s.NormalizeKey(name)
	if ttl <= 0 {
		ttl = s.ttl
	}
	in := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if disposition != "" {
		in.ResponseContentDisposition = aws.String(disposition)
	}
	req, err := s.presigner.PresignGetObject(ctx, in, s3.WithPresignExpires(ttl))
	if err != nil {
		s.log.Error("sign storage url failed", zap.String("key", key), zap.Error(err))
		return "", &apperror.StorageError{Op: "sign url for", Key: key, Err: err}
	}
	return req.URL, nil
}

func (s *StorageService) Get(ctx context.Context, name string) ([]byte, error) {
	key := s.NormalizeKey(name)
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.NewNotFoundError("file", key)
		}
		s.log.Error("get from storage failed", zap.String("key", key), zap.Error(err))
		return nil, &apperror.StorageError{Op: "get", Key: key, Err: err}
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, &apperror.StorageError{Op: "read", Key: key, Err: err}
	}
	return data, nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
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
