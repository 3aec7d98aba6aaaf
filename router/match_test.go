package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestPath(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		segments      []string
		trailingSlash bool
	}{
		{name: "root", path: "/", segments: nil},
		{name: "empty", path: "", segments: nil},
		{name: "single segment", path: "/foo", segments: []string{"foo"}},
		{name: "nested", path: "/foo/bar", segments: []string{"foo", "bar"}},
		{name: "trailing slash", path: "/foo/", segments: []string{"foo"}, trailingSlash: true},
		{name: "encoded segment kept raw", path: "/foo/b%61r", segments: []string{"foo", "b%61r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequestPath(tt.path)
			assert.Equal(t, tt.segments, req.segments)
			assert.Equal(t, tt.trailingSlash, req.trailingSlash)
		})
	}
}

func testCache(t *testing.T, handlers map[string]TemplateHandler) *templateCache {
	t.Helper()
	return newTemplateCache(httptest.NewRequest(http.MethodGet, "/", nil), handlers)
}

func TestMatchPath(t *testing.T) {
	noHandlers := map[string]TemplateHandler{}

	compile := func(t *testing.T, template string, handlers map[string]TemplateHandler) compiledPath {
		t.Helper()
		path, err := compilePath(template, handlers, true)
		require.NoError(t, err)
		return path
	}

	t.Run("exact match requires equal length", func(t *testing.T) {
		path := compile(t, "foo/bar", noHandlers)
		cache := testCache(t, noHandlers)
		assert.True(t, matchPath(path, newRequestPath("/foo/bar"), cache, true).matches)
		assert.False(t, matchPath(path, newRequestPath("/foo"), cache, true).matches)
		assert.False(t, matchPath(path, newRequestPath("/foo/bar/baz"), cache, true).matches)
	})

	t.Run("prefix match allows longer request paths", func(t *testing.T) {
		path := compile(t, "foo", noHandlers)
		cache := testCache(t, noHandlers)
		assert.True(t, matchPath(path, newRequestPath("/foo/bar"), cache, false).matches)
		assert.False(t, matchPath(path, newRequestPath("/"), cache, false).matches)
	})

	t.Run("static segment compares decoded text", func(t *testing.T) {
		path := compile(t, "foo/bär", noHandlers)
		cache := testCache(t, noHandlers)
		assert.True(t, matchPath(path, newRequestPath("/foo/b%c3%a4r"), cache, true).matches)
	})

	t.Run("invalid percent escape fails the candidate", func(t *testing.T) {
		path := compile(t, "foo", noHandlers)
		cache := testCache(t, noHandlers)
		req := requestPath{segments: []string{"fo%zzo"}}
		assert.False(t, matchPath(path, req, cache, true).matches)
	})

	t.Run("invalid utf8 after decoding fails the candidate", func(t *testing.T) {
		path := compile(t, "bar", noHandlers)
		cache := testCache(t, noHandlers)
		req := requestPath{segments: []string{"b%c3r"}}
		assert.False(t, matchPath(path, req, cache, true).matches)
	})

	t.Run("pattern segments collect parsed values", func(t *testing.T) {
		handlers := map[string]TemplateHandler{
			"double": func(_ *http.Request, previous []any, segment string) (any, error) {
				assert.Empty(t, previous)
				return segment + segment, nil
			},
		}
		path := compile(t, "foo/{double}", handlers)
		cache := testCache(t, handlers)
		attempt := matchPath(path, newRequestPath("/foo/xyz"), cache, true)
		require.True(t, attempt.matches)
		assert.Equal(t, []any{"xyzxyz"}, attempt.pathArgs)
	})

	t.Run("pattern handler sees preceding values", func(t *testing.T) {
		handlers := map[string]TemplateHandler{
			"first": func(_ *http.Request, _ []any, _ string) (any, error) {
				return 42, nil
			},
			"second": func(_ *http.Request, previous []any, segment string) (any, error) {
				assert.Equal(t, []any{42}, previous)
				return segment, nil
			},
		}
		path := compile(t, "{first}/{second}", handlers)
		attempt := matchPath(path, newRequestPath("/a/b"), testCache(t, handlers), true)
		require.True(t, attempt.matches)
		assert.Equal(t, []any{42, "b"}, attempt.pathArgs)
	})

	t.Run("pattern rejection fails the candidate", func(t *testing.T) {
		handlers := map[string]TemplateHandler{
			"reject": func(_ *http.Request, _ []any, _ string) (any, error) {
				return nil, assert.AnError
			},
		}
		path := compile(t, "{reject}", handlers)
		assert.False(t, matchPath(path, newRequestPath("/x"), testCache(t, handlers), true).matches)
	})
}

func TestTemplateCache(t *testing.T) {
	t.Run("caches by name and segment text", func(t *testing.T) {
		calls := 0
		handlers := map[string]TemplateHandler{
			"count": func(_ *http.Request, _ []any, segment string) (any, error) {
				calls++
				return segment, nil
			},
		}
		cache := testCache(t, handlers)

		value, ok := cache.parse("count", nil, "xyz")
		require.True(t, ok)
		assert.Equal(t, "xyz", value)
		_, _ = cache.parse("count", nil, "xyz")
		assert.Equal(t, 1, calls)

		_, _ = cache.parse("count", nil, "abc")
		assert.Equal(t, 2, calls)
	})

	t.Run("caches rejections", func(t *testing.T) {
		calls := 0
		handlers := map[string]TemplateHandler{
			"reject": func(_ *http.Request, _ []any, _ string) (any, error) {
				calls++
				return nil, assert.AnError
			},
		}
		cache := testCache(t, handlers)

		_, ok := cache.parse("reject", nil, "xyz")
		assert.False(t, ok)
		_, ok = cache.parse("reject", nil, "xyz")
		assert.False(t, ok)
		assert.Equal(t, 1, calls)
	})
}

func TestRemainingPath(t *testing.T) {
	compile := func(t *testing.T, template string) compiledPath {
		t.Helper()
		path, err := compilePath(template, nil, true)
		require.NoError(t, err)
		return path
	}

	tests := []struct {
		name     string
		template string
		path     string
		want     string
	}{
		{name: "exact match leaves nothing", template: "foo/bar", path: "/foo/bar", want: ""},
		{name: "trailing slash is restored", template: "foo/bar", path: "/foo/bar/", want: "/"},
		{name: "unconsumed segments", template: "foo/bar/*", path: "/foo/bar/abc/def", want: "/abc/def"},
		{name: "segments stay encoded", template: "foo", path: "/foo/s%75b", want: "/s%75b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, remainingPath(compile(t, tt.template), newRequestPath(tt.path)))
		})
	}
}
