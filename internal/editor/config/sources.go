package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/tagme/internal/configx"
	"github.com/dmitrijs2005/tagme/internal/flagx"
)

// fileConfig is the shape of the editor config file.
type fileConfig struct {
	CardID             string `json:"card_id" yaml:"card_id"`
	DatabaseDSN        string `json:"database_dsn" yaml:"database_dsn"`
	S3User             string `json:"s3_user" yaml:"s3_user"`
	S3Password         string `json:"s3_password" yaml:"s3_password"`
	S3Bucket           string `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region           string `json:"s3_region" yaml:"s3_region"`
	S3Endpoint         string `json:"s3_endpoint" yaml:"s3_endpoint"`
	PhotoPublicBase    string `json:"photo_public_base" yaml:"photo_public_base"`
	ViewerBaseURL      string `json:"viewer_base_url" yaml:"viewer_base_url"`
	DefaultCountryCode string `json:"default_country_code" yaml:"default_country_code"`
	DefaultHandle      string `json:"default_handle" yaml:"default_handle"`
	ExportDir          string `json:"export_dir" yaml:"export_dir"`
	LogLevel           string `json:"log_level" yaml:"log_level"`
	LogFile            string `json:"log_file" yaml:"log_file"`
}

func parseFile(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	var c fileConfig
	if err := configx.DecodeFile(path, &c); err != nil {
		return err
	}

	configx.SetIfNotEmpty(&config.CardID, c.CardID)
	configx.SetIfNotEmpty(&config.DatabaseDSN, c.DatabaseDSN)
	configx.SetIfNotEmpty(&config.S3User, c.S3User)
	configx.SetIfNotEmpty(&config.S3Password, c.S3Password)
	configx.SetIfNotEmpty(&config.S3Bucket, c.S3Bucket)
	configx.SetIfNotEmpty(&config.S3Region, c.S3Region)
	configx.SetIfNotEmpty(&config.S3Endpoint, c.S3Endpoint)
	configx.SetIfNotEmpty(&config.PhotoPublicBase, c.PhotoPublicBase)
	configx.SetIfNotEmpty(&config.ViewerBaseURL, c.ViewerBaseURL)
	configx.SetIfNotEmpty(&config.DefaultCountryCode, c.DefaultCountryCode)
	configx.SetIfNotEmpty(&config.DefaultHandle, c.DefaultHandle)
	configx.SetIfNotEmpty(&config.ExportDir, c.ExportDir)
	configx.SetIfNotEmpty(&config.LogLevel, c.LogLevel)
	configx.SetIfNotEmpty(&config.LogFile, c.LogFile)
	return nil
}

func parseEnv(config *Config, args []string) error {
	if err := configx.LoadEnvFile(flagx.EnvFileFlag(args)); err != nil {
		return err
	}

	var env configx.Env
	env.String(&config.CardID, "CARD_ID")
	env.String(&config.DatabaseDSN, "DATABASE_DSN")
	env.String(&config.S3User, "S3_USER")
	env.String(&config.S3Password, "S3_PASSWORD")
	env.String(&config.S3Bucket, "S3_BUCKET")
	env.String(&config.S3Region, "S3_REGION")
	env.String(&config.S3Endpoint, "S3_ENDPOINT")
	env.String(&config.PhotoPublicBase, "PHOTO_PUBLIC_BASE")
	env.String(&config.ViewerBaseURL, "VIEWER_BASE_URL")
	env.String(&config.DefaultCountryCode, "DEFAULT_COUNTRY_CODE")
	env.String(&config.DefaultHandle, "DEFAULT_HANDLE")
	env.String(&config.ExportDir, "EXPORT_DIR")
	env.String(&config.LogLevel, "EDITOR_LOG_LEVEL")
	env.String(&config.LogFile, "EDITOR_LOG_FILE")
	return env.Err()
}

var editorFlags = []string{
	"-id", "-d", "-u", "-p", "-b", "-g", "-e", "-w", "-s", "-n", "-k", "-x", "-v", "-l",
}

func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, editorFlags)

	fs := flag.NewFlagSet("editor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.CardID, "id", config.CardID, "card id")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.S3User, "u", config.S3User, "S3 user")
	fs.StringVar(&config.S3Password, "p", config.S3Password, "S3 password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3Endpoint, "e", config.S3Endpoint, "S3 base endpoint")
	fs.StringVar(&config.PhotoPublicBase, "w", config.PhotoPublicBase, "public base URL for photos")
	fs.StringVar(&config.ViewerBaseURL, "s", config.ViewerBaseURL, "public base URL of the viewer")
	fs.StringVar(&config.DefaultCountryCode, "n", config.DefaultCountryCode, "default country code")
	fs.StringVar(&config.DefaultHandle, "k", config.DefaultHandle, "default handle")
	fs.StringVar(&config.ExportDir, "x", config.ExportDir, "export directory")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")
	fs.StringVar(&config.LogFile, "l", config.LogFile, "log file")

	return fs.Parse(args)
}
