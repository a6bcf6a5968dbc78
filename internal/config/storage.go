package config

import (
	"errors"
	"os"
	"sync"
	"time"
)

type StorageConfig struct {
	Region       string
	AccessKey    string
	SecretKey    string
	Bucket       string
	Endpoint     string
	Prefix       string
	SignedURLTTL time.Duration
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		storageConfig = &StorageConfig{
			Region:       getEnv("AWS_REGIONS", "us-east-1"),
			AccessKey:    os.Getenv("AWS_ACCESS_KEY"),
			SecretKey:    os.Getenv("AWS_SECRET_KEY"),
			Bucket:       os.Getenv("AWS_S3_BUCKET_NAME"),
			Endpoint:     os.Getenv("AWS_S3_ENDPOINT"),
			Prefix:       getEnv("STORAGE_PREFIX", "uploads/"),
			SignedURLTTL: time.Duration(getEnvInt("SIGNED_URL_TTL", 3600)) * time.Second,
		}
	})
	return storageConfig
}

func (c *StorageConfig) Validate() error {
	var errs []error
	if c.Bucket == "" {
		errs = append(errs, errors.New("AWS_S3_BUCKET_NAME not set"))
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		errs = append(errs, errors.New("AWS_ACCESS_KEY and AWS_SECRET_KEY must be set"))
	}
	if c.SignedURLTTL <= 0 {
		errs = append(errs, errors.New("SIGNED_URL_TTL must be positive"))
	}
	return errors.Join(errs...)
}
