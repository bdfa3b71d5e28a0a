package config

import (
	"github.com/dmitrijs2005/tagme/internal/configx"
	"github.com/dmitrijs2005/tagme/internal/flagx"
	"github.com/dmitrijs2005/tagme/internal/timex"
)

// fileConfig is the shape of the JSON or YAML config file. Durations use
// timex.Duration so both "10s" and integer nanoseconds are accepted.
type fileConfig struct {
	HTTPAddr           string         `json:"http_addr" yaml:"http_addr"`
	DatabaseDSN        string         `json:"database_dsn" yaml:"database_dsn"`
	S3User             string         `json:"s3_user" yaml:"s3_user"`
	S3Password         string         `json:"s3_password" yaml:"s3_password"`
	S3Bucket           string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region           string         `json:"s3_region" yaml:"s3_region"`
	S3Endpoint         string         `json:"s3_endpoint" yaml:"s3_endpoint"`
	PhotoPublicBase    string         `json:"photo_public_base" yaml:"photo_public_base"`
	CORSOrigins        []string       `json:"cors_origins" yaml:"cors_origins"`
	DefaultCountryCode string         `json:"default_country_code" yaml:"default_country_code"`
	DefaultHandle      string         `json:"default_handle" yaml:"default_handle"`
	PhotoFetchTimeout  timex.Duration `json:"photo_fetch_timeout" yaml:"photo_fetch_timeout"`
	LogFile            string         `json:"log_file" yaml:"log_file"`
	LogLevel           string         `json:"log_level" yaml:"log_level"`
	Environment        string         `json:"environment" yaml:"environment"`
}

// parseFile overlays the file named by -c/-config. Keys absent from the file
// keep their current values.
func parseFile(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	var c fileConfig
	if err := configx.DecodeFile(path, &c); err != nil {
		return err
	}

	configx.SetIfNotEmpty(&config.HTTPAddr, c.HTTPAddr)
	configx.SetIfNotEmpty(&config.DatabaseDSN, c.DatabaseDSN)
	configx.SetIfNotEmpty(&config.S3User, c.S3User)
	configx.SetIfNotEmpty(&config.S3Password, c.S3Password)
	configx.SetIfNotEmpty(&config.S3Bucket, c.S3Bucket)
	configx.SetIfNotEmpty(&config.S3Region, c.S3Region)
	configx.SetIfNotEmpty(&config.S3Endpoint, c.S3Endpoint)
	configx.SetIfNotEmpty(&config.PhotoPublicBase, c.PhotoPublicBase)
	configx.SetIfNotEmpty(&config.DefaultCountryCode, c.DefaultCountryCode)
	configx.SetIfNotEmpty(&config.DefaultHandle, c.DefaultHandle)
	configx.SetIfNotEmpty(&config.LogFile, c.LogFile)
	configx.SetIfNotEmpty(&config.LogLevel, c.LogLevel)
	configx.SetIfNotEmpty(&config.Environment, c.Environment)
	if c.CORSOrigins != nil {
		config.CORSOrigins = c.CORSOrigins
	}
	if c.PhotoFetchTimeout.Duration != 0 {
		config.PhotoFetchTimeout = c.PhotoFetchTimeout.Duration
	}
	return nil
}
