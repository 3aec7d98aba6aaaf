package html

import (
	"fmt"
	"html"
	"net/http"
	"slices"
	"strings"
)

// StatusPage returns an HTML page for the given HTTP status code. The
// message is HTML-escaped and rendered as a paragraph; an empty message
// omits the paragraph.
func StatusPage(status int, message string) string {
	var escaped string
	if message != "" {
		escaped = html.EscapeString(message)
	}
	return RawStatusPage(status, escaped, "")
}

// RawStatusPage returns an HTML page for the given HTTP status code
// with an optional message paragraph and further content.
//
// WARNING: htmlMessage and htmlContent are pasted into the page as is.
// Do not use with unsanitized data.
func RawStatusPage(status int, htmlMessage, htmlContent string) string {
	heading := fmt.Sprintf("%d &#x2014; %s", status, http.StatusText(status))
	var paragraph string
	if htmlMessage != "" {
		paragraph = "\n        <p>" + htmlMessage + "</p>"
	}
	var content string
	if htmlContent != "" {
		content = htmlContent + "\n"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
    <head>
        <title>%s</title>
    </head>
    <body>
        <h1>%s</h1>%s
%s    </body>
</html>
`, heading, heading, paragraph, content)
}

// CreatedAtPage returns a 201 Created page linking to the given URL.
func CreatedAtPage(url string) string {
	escaped := html.EscapeString(url)
	message := fmt.Sprintf(`Created at <a href="%s">%s</a>.`, escaped, escaped)
	return RawStatusPage(http.StatusCreated, message, "")
}

// TemporaryRedirectPage returns a 307 Temporary Redirect page linking
// to the given URL.
func TemporaryRedirectPage(url string) string {
	escaped := html.EscapeString(url)
	message := fmt.Sprintf(`Please see <a href="%s">%s</a>.`, escaped, escaped)
	return RawStatusPage(http.StatusTemporaryRedirect, message, "")
}

// SeeOtherPage returns a 303 See Other page linking to the given URL.
func SeeOtherPage(url string) string {
	escaped := html.EscapeString(url)
	message := fmt.Sprintf(`Please see <a href="%s">%s</a>.`, escaped, escaped)
	return RawStatusPage(http.StatusSeeOther, message, "")
}

// BadArgumentsPage returns a 400 Bad Request page with an itemized list
// of invalid arguments. Keys are argument names, values the
// corresponding error messages.
func BadArgumentsPage(arguments map[string]string) string {
	return RawStatusPage(http.StatusBadRequest, "Invalid arguments:",
		BadArgumentsList(arguments))
}

// BadArgumentsList returns an HTML list of invalid arguments, sorted by
// argument name. Names and messages are HTML-escaped. An empty mapping
// yields an empty string.
func BadArgumentsList(arguments map[string]string) string {
	if len(arguments) == 0 {
		return ""
	}
	names := make([]string, 0, len(arguments))
	for name := range arguments {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	b.WriteString("<ul class=\"bad-arguments\">\n")
	for _, name := range names {
		fmt.Fprintf(&b, `    <li class="argument">
        <span class="argument-name">%s</span>:
        <span class="error-message">%s</span>
    </li>
`, html.EscapeString(name), html.EscapeString(arguments[name]))
	}
	b.WriteString("</ul>\n")
	return b.String()
}
