package yaml_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/crawlkit"
	"github.com/fwojciec/crawlkit/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("overrides defaults with file values", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, `
delay: 500ms
max_retries: 5
max_pages: 20
allowed_domains:
  - example.com
exclude_patterns:
  - '\.pdf$'
output_format: csv
output_dir: results
`)

		cfg, err := yaml.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, 500*time.Millisecond, cfg.Delay.Std())
		assert.Equal(t, 5, cfg.MaxRetries)
		assert.Equal(t, 20, cfg.MaxPages)
		assert.Equal(t, []string{"example.com"}, cfg.AllowedDomains)
		assert.Equal(t, "csv", cfg.OutputFormat)
		assert.Equal(t, "results", cfg.OutputDir)
		assert.Equal(t, 10*time.Second, cfg.Timeout.Std(), "untouched fields keep defaults")
	})

	t.Run("missing file is a configuration error", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Equal(t, crawlkit.ECONFIG, crawlkit.ErrorCode(err))
	})

	t.Run("malformed yaml is a configuration error", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "delay: [not a duration\n")
		_, err := yaml.LoadConfig(path)
		require.Error(t, err)
		assert.Equal(t, crawlkit.ECONFIG, crawlkit.ErrorCode(err))
	})

	t.Run("validation failures surface as configuration errors", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "next_selector: '.next'\npage_param: page\n")
		_, err := yaml.LoadConfig(path)
		require.Error(t, err)
		assert.Equal(t, crawlkit.ECONFIG, crawlkit.ErrorCode(err))
	})
}
