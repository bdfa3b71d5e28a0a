// Package configx contains the file and environment layers shared by the
// server and editor configurations.
package configx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "TAGME_"

// DefaultEnvFile is loaded when present and no explicit file is given.
const DefaultEnvFile = ".env"

var lookupEnv = os.LookupEnv

// DecodeFile unmarshals the file at path into v. Files ending in .yaml or
// .yml are read as YAML, everything else as JSON.
func DecodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		err = json.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// LoadEnvFile loads variables from a dotenv file without overriding ones
// already set. An empty path means DefaultEnvFile, which may be absent.
func LoadEnvFile(path string) error {
	optional := path == ""
	if optional {
		path = DefaultEnvFile
	}

	err := godotenv.Load(path)
	if err != nil && optional && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Env overlays TAGME_* variables onto config fields.
type Env struct {
	errs []error
}

func (e *Env) lookup(key string) (string, bool) {
	return lookupEnv(EnvPrefix + key)
}

// String sets *dst when the variable is present.
func (e *Env) String(dst *string, key string) {
	if v, ok := e.lookup(key); ok {
		*dst = v
	}
}

// List sets *dst from a comma separated variable.
func (e *Env) List(dst *[]string, key string) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
}

// Duration sets *dst from a Go duration string.
func (e *Env) Duration(dst *time.Duration, key string) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
		return
	}
	*dst = d
}

// Err reports every malformed variable seen so far.
func (e *Env) Err() error {
	return errors.Join(e.errs...)
}

// SetIfNotEmpty copies src into *dst unless src is empty. File layers use it
// so keys missing from the file keep their defaults.
func SetIfNotEmpty(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}
