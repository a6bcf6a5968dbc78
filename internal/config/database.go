package config

import (
	"errors"
	"os"
	"sync"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
}

var (
	dbConfig *DBConfig
	dbOnce   sync.Once
)

func LoadDBConfig() *DBConfig {
	dbOnce.Do(func() {
		dbConfig = &DBConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			TimeZone: getEnv("DB_TIMEZONE", "UTC"),
		}
	})
	return dbConfig
}

func (c *DBConfig) Validate() error {
	var errs []error
	if c.Host == "" {
		errs = append(errs, errors.New("DB_HOST not set"))
	}
	if c.Name == "" {
		errs = append(errs, errors.New("DB_NAME not set"))
	}
	if c.User == "" {
		errs = append(errs, errors.New("DB_USER not set"))
	}
	return errors.Join(errs...)
}
