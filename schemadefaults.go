package schemadefaults

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-schema-defaults/internal/refloader"
	"github.com/goliatone/go-schema-defaults/pkg/defaults"
	"github.com/goliatone/go-schema-defaults/pkg/schema"
)

// NewLoader constructs a reference loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...defaults.LoaderOption) defaults.Loader {
	cfg := defaults.NewLoaderOptions(options...)
	return refloader.New(cfg)
}

// NewExtractor wires an extractor to the internal reference loader. When a
// file system is supplied and no source kind was chosen, external refs
// resolve against the fs.FS instead of the local disk.
func NewExtractor(opts defaults.Options, options ...defaults.LoaderOption) *defaults.Extractor {
	cfg := defaults.NewLoaderOptions(options...)
	if cfg.FileSystem != nil && opts.SourceKind == "" {
		opts.SourceKind = schema.SourceKindFS
	}
	return defaults.New(refloader.New(cfg), opts)
}

// ExtractBytes parses a raw JSON schema document and returns its implied
// defaults document plus the found flag.
func ExtractBytes(ctx context.Context, raw []byte, opts defaults.Options, options ...defaults.LoaderOption) (map[string]any, bool, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, false, fmt.Errorf("schemadefaults: parse schema: %w", err)
	}
	return NewExtractor(opts, options...).Extract(ctx, payload)
}
