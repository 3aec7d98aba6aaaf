package args

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/srittau/rouver/router"
)

// Multiplicity states how often an argument may be supplied.
type Multiplicity int

const (
	// Required arguments must be supplied exactly once.
	Required Multiplicity = iota
	// Optional arguments may be supplied once. A missing optional
	// argument has no entry in the parsed values.
	Optional
	// Any arguments may be supplied any number of times. The parsed
	// value is a []any, empty if the argument was not supplied.
	Any
	// RequiredAny arguments work like Any, but must be supplied at
	// least once.
	RequiredAny
)

// ValueParser turns the raw string value of an argument into its parsed
// value. A non-nil error marks the argument as invalid; the error
// message is reported to the client.
type ValueParser func(value string) (any, error)

// String is a ValueParser that keeps the raw value.
func String(value string) (any, error) {
	return value, nil
}

// Int is a ValueParser for decimal integers.
func Int(value string) (any, error) {
	i, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q", value)
	}
	return i, nil
}

// Template declares one expected argument.
type Template struct {
	Name string

	// Parse produces the argument value. When nil, the raw string is
	// kept. Ignored for File templates when a file was uploaded.
	Parse ValueParser

	Multiplicity Multiplicity

	// File marks the argument as a file upload: the parsed value is a
	// *FileArgument. A plain string supplied for a File template is
	// wrapped in a FileArgument with no filename.
	File bool
}

// FileArgument is the parsed value of a file upload. The content is
// read from the embedded reader.
type FileArgument struct {
	io.ReadCloser
	Filename    string
	ContentType string
}

// Values maps argument names to their parsed values.
type Values map[string]any

// Parse parses the request arguments according to the given templates.
// See Parser.Parse for details; use a Parser to parse arguments
// incrementally over several calls.
func Parse(r *http.Request, templates []Template) (Values, error) {
	p, err := NewParser(r)
	if err != nil {
		return nil, err
	}
	return p.Parse(templates)
}

// argument is a raw argument from the query string or request body,
// either a list of string values or an uploaded file.
type argument struct {
	values []string
	file   *multipart.FileHeader
}

// Parser parses request arguments. As opposed to the package-level
// Parse function, Parser.Parse can be called several times for the same
// request, for example to check further arguments depending on earlier
// ones.
type Parser struct {
	arguments map[string]argument
	notFound  map[string]struct{}
}

// NewParser reads the request arguments for later parsing. Arguments of
// GET and HEAD requests come from the query string, arguments of POST,
// PUT, PATCH, and DELETE requests from the request body. Other methods
// are not supported and yield an error.
func NewParser(r *http.Request) (*Parser, error) {
	arguments := make(map[string]argument)
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		for name, values := range r.URL.Query() {
			arguments[name] = argument{values: values}
		}
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		if err := readBodyArguments(r, arguments); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported method %q", r.Method)
	}

	notFound := make(map[string]struct{}, len(arguments))
	for name := range arguments {
		notFound[name] = struct{}{}
	}
	return &Parser{arguments: arguments, notFound: notFound}, nil
}

func readBodyArguments(r *http.Request, arguments map[string]argument) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return err
		}
		for name, values := range r.MultipartForm.Value {
			arguments[name] = argument{values: values}
		}
		for name, files := range r.MultipartForm.File {
			if len(files) > 0 {
				arguments[name] = argument{file: files[0]}
			}
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	for name, values := range r.PostForm {
		arguments[name] = argument{values: values}
	}
	return nil
}

// Parse parses arguments according to the given templates. The returned
// values contain an entry for each argument that was supplied, keyed by
// name, plus an empty []any for each Any argument that was not. All
// failures are collected into a single *router.ArgumentsError.
func (p *Parser) Parse(templates []Template) (Values, error) {
	return p.parse(templates, false)
}

// ParseExhaustive works like Parse, but also rejects arguments that
// were supplied without appearing in the templates of this or any
// earlier call.
func (p *Parser) ParseExhaustive(templates []Template) (Values, error) {
	return p.parse(templates, true)
}

func (p *Parser) parse(templates []Template, exhaustive bool) (Values, error) {
	problems := make(map[string]string)
	values := make(Values)

	for _, tmpl := range templates {
		delete(p.notFound, tmpl.Name)
		value, supplied, err := p.parseTemplate(tmpl)
		if err != nil {
			problems[tmpl.Name] = err.Error()
		} else if supplied {
			values[tmpl.Name] = value
		}
	}

	if exhaustive {
		for name := range p.notFound {
			problems[name] = "unknown argument"
		}
	}

	if len(problems) > 0 {
		return nil, router.NewArgumentsError(problems)
	}
	return values, nil
}

func (p *Parser) parseTemplate(tmpl Template) (value any, supplied bool, err error) {
	arg, ok := p.arguments[tmpl.Name]
	switch tmpl.Multiplicity {
	case Required:
		if !ok {
			return nil, false, fmt.Errorf("mandatory argument missing")
		}
		value, err = p.parseSingle(tmpl, arg)
		return value, true, err
	case Optional:
		if !ok {
			return nil, false, nil
		}
		value, err = p.parseSingle(tmpl, arg)
		return value, true, err
	case Any, RequiredAny:
		values, err := p.parseList(tmpl, arg)
		if err != nil {
			return nil, false, err
		}
		if tmpl.Multiplicity == RequiredAny && len(values) == 0 {
			return nil, false, fmt.Errorf("mandatory argument missing")
		}
		return values, true, nil
	}
	return nil, false, fmt.Errorf("invalid multiplicity %d", tmpl.Multiplicity)
}

func (p *Parser) parseSingle(tmpl Template, arg argument) (any, error) {
	if arg.file != nil {
		return parseFile(tmpl, arg.file)
	}
	if len(arg.values) == 0 {
		return nil, fmt.Errorf("mandatory argument missing")
	}
	if tmpl.File {
		return &FileArgument{
			ReadCloser:  io.NopCloser(strings.NewReader(arg.values[0])),
			ContentType: "application/octet-stream",
		}, nil
	}
	return parseValue(tmpl, arg.values[0])
}

func (p *Parser) parseList(tmpl Template, arg argument) ([]any, error) {
	values := make([]any, 0, len(arg.values))
	for _, raw := range arg.values {
		value, err := parseValue(tmpl, raw)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

// parseFile turns an uploaded file into the template's value. File
// templates receive the upload itself; other templates parse the file
// content as a string value.
func parseFile(tmpl Template, header *multipart.FileHeader) (any, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("cannot read file")
	}
	if tmpl.File {
		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		return &FileArgument{
			ReadCloser:  file,
			Filename:    header.Filename,
			ContentType: contentType,
		}, nil
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read file")
	}
	return parseValue(tmpl, string(content))
}

func parseValue(tmpl Template, raw string) (any, error) {
	if tmpl.Parse == nil {
		return raw, nil
	}
	return tmpl.Parse(raw)
}
