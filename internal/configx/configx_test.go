package configx

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `json:"name" yaml:"name"`
	Port int    `json:"port" yaml:"port"`
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func withEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	orig := lookupEnv
	lookupEnv = func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
	t.Cleanup(func() { lookupEnv = orig })
}

func TestDecodeFile_JSONAndYAML(t *testing.T) {
	var j sample
	require.NoError(t, DecodeFile(writeFile(t, "c.json", `{"name":"a","port":1}`), &j))
	assert.Equal(t, sample{Name: "a", Port: 1}, j)

	var y sample
	require.NoError(t, DecodeFile(writeFile(t, "c.yml", "name: b\nport: 2\n"), &y))
	assert.Equal(t, sample{Name: "b", Port: 2}, y)
}

func TestDecodeFile_Errors(t *testing.T) {
	var s sample
	assert.ErrorContains(t, DecodeFile(filepath.Join(t.TempDir(), "missing.json"), &s), "read config")
	assert.ErrorContains(t, DecodeFile(writeFile(t, "bad.json", "{"), &s), "decode config")
}

func TestLoadEnvFile(t *testing.T) {
	path := writeFile(t, "test.env", "TAGME_CONFIGX_TEST=from-file\n")
	t.Cleanup(func() { os.Unsetenv("TAGME_CONFIGX_TEST") })

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("TAGME_CONFIGX_TEST"))

	assert.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "nope.env")))
}

func TestLoadEnvFile_DefaultMayBeAbsent(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.NoError(t, LoadEnvFile(""))
}

func TestEnv_Overlay(t *testing.T) {
	withEnv(t, map[string]string{
		"TAGME_NAME":    "env",
		"TAGME_ORIGINS": "https://a.example, ,https://b.example",
		"TAGME_TIMEOUT": "4s",
	})

	name, timeout := "default", time.Second
	origins := []string{"*"}
	untouched := "keep"

	var env Env
	env.String(&name, "NAME")
	env.String(&untouched, "MISSING")
	env.List(&origins, "ORIGINS")
	env.Duration(&timeout, "TIMEOUT")

	require.NoError(t, env.Err())
	assert.Equal(t, "env", name)
	assert.Equal(t, "keep", untouched)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, origins)
	assert.Equal(t, 4*time.Second, timeout)
}

func TestEnv_BadDuration(t *testing.T) {
	withEnv(t, map[string]string{"TAGME_TIMEOUT": "soon"})

	d := time.Second
	var env Env
	env.Duration(&d, "TIMEOUT")

	assert.ErrorContains(t, env.Err(), "TAGME_TIMEOUT")
	assert.Equal(t, time.Second, d)
}

func TestSetIfNotEmpty(t *testing.T) {
	v := "a"
	SetIfNotEmpty(&v, "")
	assert.Equal(t, "a", v)
	SetIfNotEmpty(&v, "b")
	assert.Equal(t, "b", v)
}
