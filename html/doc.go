// Package html renders the simple HTML pages used for generated
// responses: status pages for errors and redirects, and the itemized
// argument error list.
//
// All page functions return a complete HTML document as a string.
// Functions taking a plain message escape it; functions taking HTML
// fragments paste them into the page verbatim and must not be used with
// unsanitized data.
package html
