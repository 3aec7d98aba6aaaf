// Package args parses request arguments against a declared template:
// each expected argument has a name, a value parser, and a multiplicity.
// Arguments of GET and HEAD requests are read from the query string,
// arguments of POST, PUT, PATCH, and DELETE requests from the request
// body, including multipart file uploads.
//
// Parse failures are collected per argument and returned as a
// *router.ArgumentsError, which the router renders as a 400 Bad Request
// page with an itemized list of problems.
//
//	values, err := args.Parse(r, []args.Template{
//		{Name: "key", Multiplicity: args.Required},
//		{Name: "count", Parse: args.Int, Multiplicity: args.Optional},
//	})
package args
