package args

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/srittau/rouver/router"
)

// ParseJSONRequest decodes the request body as JSON into v. The request
// must declare an application/json content type; the body is decoded
// according to the declared charset, which defaults to UTF-8.
//
// All failures, including a wrong content type, an unknown charset, and
// malformed JSON, are reported as a *router.HTTPError with status
// 415 Unsupported Media Type.
func ParseJSONRequest(r *http.Request, v any) error {
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return router.NewHTTPError(http.StatusUnsupportedMediaType, "")
	}

	body, err := charsetReader(r.Body, params["charset"])
	if err != nil {
		return router.NewHTTPError(http.StatusUnsupportedMediaType, err.Error())
	}
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return router.NewHTTPError(http.StatusUnsupportedMediaType, err.Error())
	}
	return nil
}

// charsetReader wraps the body in a decoder for the declared charset.
// UTF-8 bodies are read as is.
func charsetReader(body io.Reader, charset string) (io.Reader, error) {
	if charset == "" || strings.EqualFold(charset, "utf-8") {
		return body, nil
	}
	encoding, err := htmlindex.Get(charset)
	if err != nil {
		return nil, err
	}
	return encoding.NewDecoder().Reader(body), nil
}
