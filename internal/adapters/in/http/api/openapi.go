// Package api holds the HTTP contract of the storefront: the OpenAPI document, the
// request and response bodies and the route table binding path and query parameters
// before a ServerInterface method runs.
package api

import (
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// GetSwagger parses the embedded OpenAPI document. Every call returns a fresh copy, so
// callers may mutate it (for example to drop the servers list before routing).
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	return doc, nil
}
