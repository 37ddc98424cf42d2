package goquery_test

import (
	"testing"

	"github.com/fwojciec/crawlkit"
	crawlgoquery "github.com/fwojciec/crawlkit/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBySelector_Next(t *testing.T) {
	t.Parallel()

	t.Run("resolves the first matching next link", func(t *testing.T) {
		t.Parallel()

		page := &crawlkit.Page{
			URL:  "http://example.com/list?page=1",
			HTML: `<body><a class="next" href="list?page=2">Next</a><a class="next" href="list?page=9">bogus</a></body>`,
		}

		p := &crawlgoquery.BySelector{Selector: "a.next"}
		next, ok, err := p.Next(page)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "http://example.com/list?page=2", next)
	})

	t.Run("stops when no element matches", func(t *testing.T) {
		t.Parallel()

		page := &crawlkit.Page{
			URL:  "http://example.com/list?page=5",
			HTML: `<body><p>last page</p></body>`,
		}

		p := &crawlgoquery.BySelector{Selector: "a.next"}
		_, ok, err := p.Next(page)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("stops when the match carries no link", func(t *testing.T) {
		t.Parallel()

		page := &crawlkit.Page{
			URL:  "http://example.com/list",
			HTML: `<body><span class="next">Next</span></body>`,
		}

		p := &crawlgoquery.BySelector{Selector: ".next"}
		_, ok, err := p.Next(page)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
