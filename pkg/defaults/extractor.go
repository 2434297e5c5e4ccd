package defaults

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-schema-defaults/pkg/reencode"
	"github.com/goliatone/go-schema-defaults/pkg/schema"
)

const (
	defaultMaxDepth = 64

	externalRefPrefix = "file:"
)

// Loader fetches external reference documents named by file: refs.
type Loader interface {
	Load(ctx context.Context, src schema.Source) (schema.Document, error)
}

// Reencoder converts the string leaves of a decoded document to a target
// character encoding. Implemented by pkg/reencode.
type Reencoder interface {
	Apply(value any, encoding string) (any, error)
}

// Options configures default extraction.
type Options struct {
	// Encoding names the charset applied to externally loaded reference
	// documents. Empty skips re-encoding.
	Encoding string
	// RefBase is the base directory for resolving file: refs. Empty means
	// the process working directory for file sources, or the fs.FS root for
	// fs sources.
	RefBase string
	// SourceKind selects how external refs are addressed. Defaults to
	// SourceKindFile.
	SourceKind schema.SourceKind
	// MaxDepth caps schema nesting during extraction.
	MaxDepth int
	// Reencoder overrides the charset transformer applied to external
	// documents.
	Reencoder Reencoder
}

// Extractor walks a schema's properties and computes the nested defaults
// document implied by its type and default annotations. No schema or value
// validation is performed; malformed input surfaces as an error from the
// structure access that trips over it.
type Extractor struct {
	loader Loader
	reenc  Reencoder
	opts   Options
}

// New constructs an extractor with the supplied loader and options.
func New(loader Loader, opts Options) *Extractor {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = defaultMaxDepth
	}
	reenc := opts.Reencoder
	if reenc == nil {
		reenc = reencode.New(reencode.Options{})
	}
	return &Extractor{loader: loader, reenc: reenc, opts: opts}
}

// Extract returns the defaults document for the schema's properties together
// with a flag reporting whether any default was found at any depth. The found
// flag distinguishes an empty defaults document from no defaults at all.
//
// The input schema is never mutated: local $ref pointers are resolved against
// it as the fixed document root while recursion descends through sub-schemas,
// so repeated extraction over the same schema value is safe.
func (e *Extractor) Extract(ctx context.Context, root map[string]any) (map[string]any, bool, error) {
	if e == nil || e.loader == nil {
		return nil, false, errors.New("defaults: loader is nil")
	}
	if root == nil {
		return nil, false, errors.New("defaults: schema is nil")
	}
	props, err := propertiesOf(root)
	if err != nil {
		return nil, false, err
	}
	return e.extract(ctx, root, props, 0)
}

func (e *Extractor) extract(ctx context.Context, root, props map[string]any, depth int) (map[string]any, bool, error) {
	if depth >= e.opts.MaxDepth {
		return nil, false, fmt.Errorf("defaults: schema nesting exceeds %d levels", e.opts.MaxDepth)
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	out := make(map[string]any)
	found := false

	for _, name := range sortedKeys(props) {
		node, ok := props[name].(map[string]any)
		if !ok {
			return nil, false, fmt.Errorf("defaults: property %q is not an object", name)
		}

		resolved, err := e.resolve(ctx, root, node)
		if err != nil {
			return nil, false, err
		}

		switch readString(resolved, "type") {
		case "object":
			childProps, err := propertiesOf(resolved)
			if err != nil {
				return nil, false, fmt.Errorf("defaults: property %q: %w", name, err)
			}
			child, childFound, err := e.extract(ctx, root, childProps, depth+1)
			if err != nil {
				return nil, false, err
			}
			if childFound {
				out[name] = child
				found = true
			}
		case "array", "boolean", "integer", "number", "string":
			// Only a null or absent default is treated as "no default";
			// zero, false, and the empty string are all kept.
			if value, ok := resolved["default"]; ok && value != nil {
				out[name] = value
				found = true
			}
		case "null":
			out[name] = nil
			found = true
		}
	}

	return out, found, nil
}

// resolve replaces a $ref node with its target. Nodes without a $ref pass
// through untouched.
func (e *Extractor) resolve(ctx context.Context, root, node map[string]any) (map[string]any, error) {
	ref := strings.TrimSpace(readString(node, "$ref"))
	if ref == "" {
		return node, nil
	}
	if strings.HasPrefix(ref, externalRefPrefix) {
		return e.loadExternal(ctx, strings.TrimPrefix(ref, externalRefPrefix))
	}
	return resolveLocal(root, ref)
}

// loadExternal loads, decodes, and optionally re-encodes a file: reference.
// Every occurrence loads independently; nothing is cached between refs.
func (e *Extractor) loadExternal(ctx context.Context, rel string) (map[string]any, error) {
	src, err := e.externalSource(rel)
	if err != nil {
		return nil, err
	}

	doc, err := e.loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}

	payload, err := decodeDocument(doc)
	if err != nil {
		return nil, err
	}

	if e.opts.Encoding != "" {
		payload, err = e.reenc.Apply(payload, e.opts.Encoding)
		if err != nil {
			return nil, err
		}
	}

	node, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("defaults: external ref %q is not an object", doc.Location())
	}
	return node, nil
}

func (e *Extractor) externalSource(rel string) (schema.Source, error) {
	if e.opts.SourceKind == schema.SourceKindFS {
		name := path.Clean(strings.TrimPrefix(rel, "/"))
		if base := e.opts.RefBase; base != "" {
			name = path.Join(base, name)
		}
		return schema.SourceFromFS(name), nil
	}

	base := e.opts.RefBase
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("defaults: resolve working directory: %w", err)
		}
		base = cwd
	}
	return schema.SourceFromFile(filepath.Join(base, filepath.FromSlash(rel))), nil
}

func propertiesOf(node map[string]any) (map[string]any, error) {
	raw, ok := node["properties"]
	if !ok {
		return nil, errors.New("defaults: schema is missing properties")
	}
	props, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New("defaults: properties must be an object")
	}
	return props, nil
}

func readString(payload map[string]any, key string) string {
	value, ok := payload[key]
	if !ok {
		return ""
	}
	str, _ := value.(string)
	return str
}

func sortedKeys(payload map[string]any) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
