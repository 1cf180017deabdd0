package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_FallsBackToGoModRoot(t *testing.T) {
	tmp := t.TempDir()

	requireWriteFile(t, filepath.Join(tmp, "go.mod"), "module example.com/test\n\ngo 1.22\n")
	requireWriteFile(t, filepath.Join(tmp, ".env.local"), "WORKTRACK_TEST_ENV_LOAD=ok\n")

	sub := filepath.Join(tmp, "pkg", "crud")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(sub))

	_ = os.Unsetenv("WORKTRACK_TEST_ENV_LOAD")
	t.Cleanup(func() { _ = os.Unsetenv("WORKTRACK_TEST_ENV_LOAD") })

	n, err := LoadEnv([]string{".env", ".env.local"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "ok", os.Getenv("WORKTRACK_TEST_ENV_LOAD"))
}

func TestConfiguration_ParseDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com/")
	t.Setenv("GO_APP_ENV", "development")

	c := &Configuration{}
	require.NoError(t, c.parse())

	assert.Equal(t, "https://api.example.com", c.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, c.Backend.Timeout)
	assert.Equal(t, "sid", c.Session.CookieKey)
	assert.Equal(t, "memory", c.Session.Store)
	assert.Equal(t, 25, c.PageSize)
	assert.Equal(t, "localhost:3200", c.SocketAddress)
	assert.Equal(t, "input changed delay:400ms, search", c.SearchDebounceTrigger())
	assert.Equal(t, logrus.ErrorLevel, c.LogrusLogLevel())
}

func TestConfiguration_ParseRejectsInvalidOptions(t *testing.T) {
	cases := map[string]map[string]string{
		"bad session store":  {"SESSION_STORE": "disk"},
		"bad rate storage":   {"RATE_LIMIT_STORAGE": "file"},
		"relative api url":   {"API_BASE_URL": "localhost:8080"},
		"non positive pages": {"PAGE_SIZE": "0"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			c := &Configuration{}
			require.Error(t, c.parse())
		})
	}
}

func TestConfiguration_MaxPageSizeNeverBelowPageSize(t *testing.T) {
	t.Setenv("PAGE_SIZE", "50")
	t.Setenv("MAX_PAGE_SIZE", "10")

	c := &Configuration{}
	require.NoError(t, c.parse())
	assert.Equal(t, 50, c.MaxPageSize)
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
