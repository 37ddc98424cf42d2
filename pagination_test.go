package crawlkit_test

import (
	"testing"

	"github.com/fwojciec/crawlkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByParameter_Next(t *testing.T) {
	t.Parallel()

	t.Run("increments existing page parameter", func(t *testing.T) {
		t.Parallel()

		p := &crawlkit.ByParameter{Param: "page"}
		next, ok, err := p.Next(&crawlkit.Page{URL: "http://example.com/list?page=1"})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "http://example.com/list?page=2", next)
	})

	t.Run("defaults absent parameter to page 1", func(t *testing.T) {
		t.Parallel()

		p := &crawlkit.ByParameter{Param: "page"}
		next, ok, err := p.Next(&crawlkit.Page{URL: "http://example.com/list"})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "http://example.com/list?page=2", next)
	})

	t.Run("preserves other parameters and their order", func(t *testing.T) {
		t.Parallel()

		p := &crawlkit.ByParameter{Param: "page"}
		next, ok, err := p.Next(&crawlkit.Page{URL: "http://example.com/list?sort=asc&page=3&q=go"})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "http://example.com/list?sort=asc&page=4&q=go", next)
	})

	t.Run("deduplicates repeated keys keeping the last value", func(t *testing.T) {
		t.Parallel()

		p := &crawlkit.ByParameter{Param: "page"}
		next, ok, err := p.Next(&crawlkit.Page{URL: "http://example.com/list?page=1&page=5"})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "http://example.com/list?page=6", next)
	})

	t.Run("progresses page=1 to page=4 over three steps", func(t *testing.T) {
		t.Parallel()

		p := &crawlkit.ByParameter{Param: "page"}
		url := "http://example.com/list?q=go&page=1"
		for i := 0; i < 3; i++ {
			next, ok, err := p.Next(&crawlkit.Page{URL: url})
			require.NoError(t, err)
			require.True(t, ok)
			url = next
		}
		assert.Equal(t, "http://example.com/list?q=go&page=4", url)
	})

	t.Run("returns ECONFIG for non-integer parameter value", func(t *testing.T) {
		t.Parallel()

		p := &crawlkit.ByParameter{Param: "page"}
		_, _, err := p.Next(&crawlkit.Page{URL: "http://example.com/list?page=abc"})
		require.Error(t, err)
		assert.Equal(t, crawlkit.ECONFIG, crawlkit.ErrorCode(err))
	})
}
