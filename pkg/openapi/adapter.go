// Package openapi extracts implied defaults from the component schemas of an
// OpenAPI document. Parsing is delegated to kin-openapi; each component
// schema is lowered to a raw schema node tree and fed through the default
// extractor.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-schema-defaults/pkg/defaults"
)

// Adapter wraps an extractor behind the OpenAPI component flow.
type Adapter struct {
	extractor *defaults.Extractor
}

// NewAdapter constructs an adapter with the supplied extractor.
func NewAdapter(extractor *defaults.Extractor) *Adapter {
	return &Adapter{extractor: extractor}
}

// ComponentDefaults parses an OpenAPI document and returns the defaults
// document for every object component schema that produced one, keyed by
// component name. Components with no defaults anywhere are left out.
func (a *Adapter) ComponentDefaults(ctx context.Context, raw []byte) (map[string]map[string]any, error) {
	if a == nil || a.extractor == nil {
		return nil, errors.New("openapi adapter: extractor is nil")
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi adapter: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi adapter: load document: %w", err)
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi adapter: document declares no component schemas")
	}

	result := make(map[string]map[string]any)
	for name, ref := range spec.Components.Schemas {
		node := nodeFromSchemaRef(ref)
		if node == nil || node["type"] != "object" {
			continue
		}
		extracted, found, err := a.extractor.Extract(ctx, node)
		if err != nil {
			return nil, fmt.Errorf("openapi adapter: schema %q: %w", name, err)
		}
		if found {
			result[name] = extracted
		}
	}

	return result, nil
}

// nodeFromSchemaRef lowers a kin-openapi schema into the raw node shape the
// extractor walks: type, default, and properties only.
func nodeFromSchemaRef(ref *openapi3.SchemaRef) map[string]any {
	if ref == nil || ref.Value == nil {
		return nil
	}
	src := ref.Value

	node := make(map[string]any)
	if value := firstSchemaType(src.Type); value != "" {
		node["type"] = value
	}
	if src.Default != nil {
		node["default"] = src.Default
	}
	if len(src.Properties) > 0 {
		props := make(map[string]any, len(src.Properties))
		for propName, prop := range src.Properties {
			if child := nodeFromSchemaRef(prop); child != nil {
				props[propName] = child
			}
		}
		node["properties"] = props
	}
	if node["type"] == "object" && node["properties"] == nil {
		// Free-form objects carry no property schemas; give the extractor
		// an empty map so they contribute nothing instead of failing.
		node["properties"] = map[string]any{}
	}
	return node
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}
