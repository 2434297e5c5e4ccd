// Package reencode converts the string leaves of decoded JSON or YAML values
// to a named character encoding. Encodings are looked up by their IANA/WHATWG
// names (utf-8, latin1, windows-1252, shift_jis, ...).
package reencode

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultMaxDepth bounds traversal so pathological nesting fails instead of
// exhausting the stack.
const DefaultMaxDepth = 1000

// Options configures a Transformer.
type Options struct {
	// MaxDepth caps value nesting during traversal.
	MaxDepth int
}

// Transformer applies charset conversion across a decoded document tree.
type Transformer struct {
	maxDepth int
}

// New constructs a Transformer with the supplied options.
func New(opts Options) *Transformer {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Transformer{maxDepth: opts.MaxDepth}
}

// Apply returns a copy of value with every string leaf converted to the named
// encoding. Map keys are converted along with their values, sequence elements
// are converted in place order, and non-string terminals (numbers, booleans,
// nil) pass through untouched. An empty encoding name is a no-op.
func (t *Transformer) Apply(value any, encodingName string) (any, error) {
	if t == nil {
		return nil, errors.New("reencode: transformer is nil")
	}
	name := strings.TrimSpace(encodingName)
	if name == "" {
		return value, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("reencode: unknown encoding %q: %w", encodingName, err)
	}
	return t.walk(value, enc.NewEncoder(), 0)
}

func (t *Transformer) walk(value any, encoder *encoding.Encoder, depth int) (any, error) {
	if depth >= t.maxDepth {
		return nil, fmt.Errorf("reencode: value nesting exceeds %d levels", t.maxDepth)
	}

	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			encodedKey, err := encodeString(encoder, key)
			if err != nil {
				return nil, err
			}
			converted, err := t.walk(val, encoder, depth+1)
			if err != nil {
				return nil, err
			}
			out[encodedKey] = converted
		}
		return out, nil
	case []any:
		out := make([]any, len(typed))
		for idx, val := range typed {
			converted, err := t.walk(val, encoder, depth+1)
			if err != nil {
				return nil, err
			}
			out[idx] = converted
		}
		return out, nil
	case string:
		return encodeString(encoder, typed)
	default:
		return value, nil
	}
}

func encodeString(encoder *encoding.Encoder, value string) (string, error) {
	converted, _, err := transform.String(encoder, value)
	if err != nil {
		return "", fmt.Errorf("reencode: encode %q: %w", value, err)
	}
	return converted, nil
}
