// Package routerconfig registers routes from a declarative YAML
// manifest. Handlers are referenced by name and resolved against a
// registry supplied by the caller, so the manifest stays free of code:
//
//	routes:
//	  - path: news
//	    method: GET
//	    handler: list_news
//	  - path: news/{item_id}
//	    method: GET
//	    handler: show_news
package routerconfig
