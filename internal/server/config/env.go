package config

import (
	"github.com/dmitrijs2005/tagme/internal/configx"
	"github.com/dmitrijs2005/tagme/internal/flagx"
)

// parseEnv loads the dotenv file (-env-file, or .env when present) and then
// overlays TAGME_* variables.
func parseEnv(config *Config, args []string) error {
	if err := configx.LoadEnvFile(flagx.EnvFileFlag(args)); err != nil {
		return err
	}

	var env configx.Env
	env.String(&config.HTTPAddr, "HTTP_ADDR")
	env.String(&config.DatabaseDSN, "DATABASE_DSN")
	env.String(&config.S3User, "S3_USER")
	env.String(&config.S3Password, "S3_PASSWORD")
	env.String(&config.S3Bucket, "S3_BUCKET")
	env.String(&config.S3Region, "S3_REGION")
	env.String(&config.S3Endpoint, "S3_ENDPOINT")
	env.String(&config.PhotoPublicBase, "PHOTO_PUBLIC_BASE")
	env.List(&config.CORSOrigins, "CORS_ORIGINS")
	env.String(&config.DefaultCountryCode, "DEFAULT_COUNTRY_CODE")
	env.String(&config.DefaultHandle, "DEFAULT_HANDLE")
	env.Duration(&config.PhotoFetchTimeout, "PHOTO_FETCH_TIMEOUT")
	env.String(&config.LogFile, "LOG_FILE")
	env.String(&config.LogLevel, "LOG_LEVEL")
	env.String(&config.Environment, "ENVIRONMENT")
	return env.Err()
}
