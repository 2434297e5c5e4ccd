package openapi

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schema-defaults/pkg/defaults"
	"github.com/goliatone/go-schema-defaults/pkg/schema"
)

type stubLoader struct{}

func (stubLoader) Load(_ context.Context, src schema.Source) (schema.Document, error) {
	return schema.Document{}, errors.New("no external refs expected")
}

func newTestAdapter() *Adapter {
	return NewAdapter(defaults.New(stubLoader{}, defaults.Options{}))
}

func TestAdapter_ComponentDefaults(t *testing.T) {
	doc := []byte(`{
  "openapi": "3.0.3",
  "info": {"title": "Test", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "Widget": {
        "type": "object",
        "properties": {
          "name": {"type": "string", "default": "unnamed"},
          "count": {"type": "integer"},
          "meta": {
            "type": "object",
            "properties": {"tag": {"type": "string", "default": "x"}}
          }
        }
      },
      "Bare": {
        "type": "object",
        "properties": {"id": {"type": "string"}}
      },
      "Scalar": {"type": "string", "default": "ignored"}
    }
  }
}`)

	got, err := newTestAdapter().ComponentDefaults(context.Background(), doc)
	if err != nil {
		t.Fatalf("component defaults: %v", err)
	}

	want := map[string]map[string]any{
		"Widget": {
			"name": "unnamed",
			"meta": map[string]any{"tag": "x"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestAdapter_FreeFormObjectSkipped(t *testing.T) {
	doc := []byte(`{
  "openapi": "3.0.3",
  "info": {"title": "Test", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "Anything": {"type": "object"}
    }
  }
}`)

	got, err := newTestAdapter().ComponentDefaults(context.Background(), doc)
	if err != nil {
		t.Fatalf("component defaults: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no defaults, got %#v", got)
	}
}

func TestAdapter_NoComponents(t *testing.T) {
	doc := []byte(`{
  "openapi": "3.0.3",
  "info": {"title": "Test", "version": "1.0.0"},
  "paths": {}
}`)

	if _, err := newTestAdapter().ComponentDefaults(context.Background(), doc); err == nil {
		t.Fatalf("expected no component schemas error")
	}
}

func TestAdapter_EmptyPayload(t *testing.T) {
	if _, err := newTestAdapter().ComponentDefaults(context.Background(), nil); err == nil {
		t.Fatalf("expected empty payload error")
	}
}

func TestAdapter_NilExtractor(t *testing.T) {
	adapter := NewAdapter(nil)
	if _, err := adapter.ComponentDefaults(context.Background(), []byte(`{}`)); err == nil {
		t.Fatalf("expected nil extractor error")
	}
}
