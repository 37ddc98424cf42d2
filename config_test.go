package crawlkit_test

import (
	"testing"
	"time"

	"github.com/fwojciec/crawlkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() crawlkit.Config {
		return crawlkit.DefaultConfig()
	}

	t.Run("default configuration is valid", func(t *testing.T) {
		t.Parallel()

		cfg := valid()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects max retries below one", func(t *testing.T) {
		t.Parallel()

		cfg := valid()
		cfg.MaxRetries = 0
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, crawlkit.ECONFIG, crawlkit.ErrorCode(err))
	})

	t.Run("rejects max pages below one", func(t *testing.T) {
		t.Parallel()

		cfg := valid()
		cfg.MaxPages = 0
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, crawlkit.ECONFIG, crawlkit.ErrorCode(err))
	})

	t.Run("rejects selector and parameter pagination together", func(t *testing.T) {
		t.Parallel()

		cfg := valid()
		cfg.NextSelector = "a.next"
		cfg.PageParam = "page"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, crawlkit.ECONFIG, crawlkit.ErrorCode(err))
	})

	t.Run("rejects proxy use without proxies", func(t *testing.T) {
		t.Parallel()

		cfg := valid()
		cfg.UseProxy = true
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, crawlkit.ECONFIG, crawlkit.ErrorCode(err))
	})

	t.Run("rejects invalid exclude pattern", func(t *testing.T) {
		t.Parallel()

		cfg := valid()
		cfg.ExcludePatterns = []string{`(`}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, crawlkit.ECONFIG, crawlkit.ErrorCode(err))
	})

	t.Run("rejects unknown output format", func(t *testing.T) {
		t.Parallel()

		cfg := valid()
		cfg.OutputFormat = "xml"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, crawlkit.ECONFIG, crawlkit.ErrorCode(err))
	})
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	t.Run("accepts json and csv", func(t *testing.T) {
		t.Parallel()

		f, err := crawlkit.ParseFormat("json")
		require.NoError(t, err)
		assert.Equal(t, crawlkit.FormatJSON, f)

		f, err = crawlkit.ParseFormat("csv")
		require.NoError(t, err)
		assert.Equal(t, crawlkit.FormatCSV, f)
	})

	t.Run("rejects unknown format before any I/O", func(t *testing.T) {
		t.Parallel()

		_, err := crawlkit.ParseFormat("parquet")
		require.Error(t, err)
		assert.Equal(t, crawlkit.ECONFIG, crawlkit.ErrorCode(err))
	})
}

func TestDuration_UnmarshalText(t *testing.T) {
	t.Parallel()

	t.Run("parses duration strings", func(t *testing.T) {
		t.Parallel()

		var d crawlkit.Duration
		require.NoError(t, d.UnmarshalText([]byte("1500ms")))
		assert.Equal(t, 1500*time.Millisecond, d.Std())
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		t.Parallel()

		var d crawlkit.Duration
		err := d.UnmarshalText([]byte("soon"))
		require.Error(t, err)
		assert.Equal(t, crawlkit.ECONFIG, crawlkit.ErrorCode(err))
	})
}
