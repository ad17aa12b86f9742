package restclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinURL(t *testing.T) {
	t.Run("no queries", func(t *testing.T) {
		got := joinURL("http://example.com", "users", nil)
		assert.Equal(t, "http://example.com/users", got)
	})

	t.Run("single query", func(t *testing.T) {
		got := joinURL("http://example.com", "users", []Query{{Key: "page", Value: "2"}})
		assert.Equal(t, "http://example.com/users?page=2", got)
	})

	t.Run("multiple queries preserve order", func(t *testing.T) {
		got := joinURL("http://example.com", "users", []Query{
			{Key: "b", Value: "2"},
			{Key: "a", Value: "1"},
		})
		assert.Equal(t, "http://example.com/users?b=2&a=1", got)
	})

	t.Run("percent encodes keys and values", func(t *testing.T) {
		got := joinURL("http://example.com", "search", []Query{
			{Key: "q", Value: "hello world"},
			{Key: "filter name", Value: "a&b=c"},
		})
		assert.Equal(t, "http://example.com/search?q=hello+world&filter+name=a%26b%3Dc", got)
	})

	t.Run("utf8 values encoded", func(t *testing.T) {
		got := joinURL("http://example.com", "search", []Query{{Key: "q", Value: "héllo"}})
		assert.Equal(t, "http://example.com/search?q=h%C3%A9llo", got)
	})

	t.Run("endpoint carrying a query continues with ampersand", func(t *testing.T) {
		got := joinURL("http://example.com", "users?active=true", []Query{{Key: "page", Value: "1"}})
		assert.Equal(t, "http://example.com/users?active=true&page=1", got)
	})

	t.Run("empty endpoint", func(t *testing.T) {
		got := joinURL("http://example.com", "", nil)
		assert.Equal(t, "http://example.com/", got)
	})
}
