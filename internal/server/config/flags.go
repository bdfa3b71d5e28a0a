package config

import (
	"flag"
	"io"
	"strings"

	"github.com/dmitrijs2005/tagme/internal/flagx"
)

var serverFlags = []string{
	"-a", "-d", "-u", "-p", "-b", "-g", "-e", "-w", "-o",
	"-n", "-k", "-t", "-l", "-v", "-env",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g. ":8080")
//	-d string     PostgreSQL DSN
//	-u string     S3 user
//	-p string     S3 password
//	-b string     S3 bucket name
//	-g string     S3 region
//	-e string     S3 base endpoint
//	-w string     public base URL for photos
//	-o string     comma separated CORS origins
//	-n string     default country code
//	-k string     default handle
//	-t duration   photo fetch timeout
//	-l string     log file (rotated)
//	-v string     log level
//	-env string   environment (dev, test, prod)
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, serverFlags)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.S3User, "u", config.S3User, "S3 user")
	fs.StringVar(&config.S3Password, "p", config.S3Password, "S3 password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3Endpoint, "e", config.S3Endpoint, "S3 base endpoint")
	fs.StringVar(&config.PhotoPublicBase, "w", config.PhotoPublicBase, "public base URL for photos")
	origins := fs.String("o", strings.Join(config.CORSOrigins, ","), "comma separated CORS origins")
	fs.StringVar(&config.DefaultCountryCode, "n", config.DefaultCountryCode, "default country code")
	fs.StringVar(&config.DefaultHandle, "k", config.DefaultHandle, "default handle")
	fs.DurationVar(&config.PhotoFetchTimeout, "t", config.PhotoFetchTimeout, "photo fetch timeout")
	fs.StringVar(&config.LogFile, "l", config.LogFile, "log file")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")
	fs.StringVar(&config.Environment, "env", config.Environment, "environment")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.CORSOrigins = splitList(*origins)
	return nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
