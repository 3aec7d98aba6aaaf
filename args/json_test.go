package args

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srittau/rouver/router"
)

func jsonRequest(t *testing.T, contentType string, body []byte) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	r.Header.Set("Content-Type", contentType)
	return r
}

func unsupportedMediaType(t *testing.T, err error) *router.HTTPError {
	t.Helper()
	var httpErr *router.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnsupportedMediaType, httpErr.Status)
	return httpErr
}

func TestParseJSONRequest(t *testing.T) {
	t.Run("decodes the body", func(t *testing.T) {
		r := jsonRequest(t, "application/json", []byte(`{"name": "box", "count": 3}`))
		var decoded struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}
		require.NoError(t, ParseJSONRequest(r, &decoded))
		assert.Equal(t, "box", decoded.Name)
		assert.Equal(t, 3, decoded.Count)
	})

	t.Run("content type may carry a charset", func(t *testing.T) {
		r := jsonRequest(t, "application/json; charset=UTF-8", []byte(`"ok"`))
		var decoded string
		require.NoError(t, ParseJSONRequest(r, &decoded))
		assert.Equal(t, "ok", decoded)
	})

	t.Run("body is decoded per the declared charset", func(t *testing.T) {
		r := jsonRequest(t, "application/json; charset=iso-8859-1",
			[]byte("{\"name\": \"bj\xf6rn\"}"))
		var decoded struct {
			Name string `json:"name"`
		}
		require.NoError(t, ParseJSONRequest(r, &decoded))
		assert.Equal(t, "björn", decoded.Name)
	})

	t.Run("wrong content type", func(t *testing.T) {
		r := jsonRequest(t, "text/plain", []byte(`{}`))
		err := ParseJSONRequest(r, &struct{}{})
		httpErr := unsupportedMediaType(t, err)
		assert.Equal(t, "", httpErr.Message)
	})

	t.Run("missing content type", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		err := ParseJSONRequest(r, &struct{}{})
		unsupportedMediaType(t, err)
	})

	t.Run("unknown charset", func(t *testing.T) {
		r := jsonRequest(t, "application/json; charset=no-such-charset", []byte(`{}`))
		err := ParseJSONRequest(r, &struct{}{})
		httpErr := unsupportedMediaType(t, err)
		assert.NotEmpty(t, httpErr.Message)
	})

	t.Run("malformed json", func(t *testing.T) {
		r := jsonRequest(t, "application/json", []byte(`{"name":`))
		err := ParseJSONRequest(r, &struct{}{})
		httpErr := unsupportedMediaType(t, err)
		assert.NotEmpty(t, httpErr.Message)
	})
}
