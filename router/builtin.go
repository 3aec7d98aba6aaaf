package router

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// Ready-made template handlers for common segment types. They are not
// registered automatically; pick a name and register them explicitly:
//
//	rt.AddTemplateHandler("item_id", router.IntTemplate)

// StringTemplate accepts any segment and passes its decoded text
// through unchanged.
func StringTemplate(_ *http.Request, _ []any, segment string) (any, error) {
	return segment, nil
}

// IntTemplate parses the segment as a decimal integer. The parsed value
// has type int.
func IntTemplate(_ *http.Request, _ []any, segment string) (any, error) {
	return strconv.Atoi(segment)
}

// UUIDTemplate parses the segment as an RFC 9562 UUID. The parsed value
// has type uuid.UUID.
func UUIDTemplate(_ *http.Request, _ []any, segment string) (any, error) {
	return uuid.Parse(segment)
}
