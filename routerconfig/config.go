package routerconfig

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/srittau/rouver/router"
)

// Manifest is the top-level structure of a route manifest.
type Manifest struct {
	Routes []RouteEntry `yaml:"routes"`
}

// RouteEntry describes one route in a manifest. Handler names the
// handler in the registry passed to Load or Apply.
type RouteEntry struct {
	Path    string `yaml:"path"`
	Method  string `yaml:"method"`
	Handler string `yaml:"handler"`
}

// Load parses a YAML route manifest and resolves each handler name
// against the given registry. Methods are normalized to upper case.
func Load(data []byte, handlers map[string]router.HandlerFunc) ([]router.Route, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("invalid route manifest: %w", err)
	}

	routes := make([]router.Route, 0, len(manifest.Routes))
	for i, entry := range manifest.Routes {
		if entry.Method == "" {
			return nil, fmt.Errorf("route %d (%q): missing method", i, entry.Path)
		}
		handler, ok := handlers[entry.Handler]
		if !ok {
			return nil, fmt.Errorf("route %d (%q): unknown handler %q", i, entry.Path, entry.Handler)
		}
		routes = append(routes, router.Route{
			Path:    entry.Path,
			Method:  strings.ToUpper(entry.Method),
			Handler: handler,
		})
	}
	return routes, nil
}

// Apply loads a YAML route manifest and registers the routes. Template
// handlers referenced by the manifest paths must already be registered
// on the router.
func Apply(rt *router.Router, data []byte, handlers map[string]router.HandlerFunc) error {
	routes, err := Load(data, handlers)
	if err != nil {
		return err
	}
	return rt.AddRoutes(routes...)
}
