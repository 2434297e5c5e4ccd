package refloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-schema-defaults/pkg/defaults"
	"github.com/goliatone/go-schema-defaults/pkg/schema"
)

func TestLoader_File(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "ext.json")
	if err := os.WriteFile(target, []byte(`{"type":"integer"}`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loader := New(defaults.NewLoaderOptions())
	doc, err := loader.Load(context.Background(), schema.SourceFromFile(target))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != `{"type":"integer"}` {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
}

func TestLoader_FileMissing(t *testing.T) {
	loader := New(defaults.NewLoaderOptions())
	src := schema.SourceFromFile(filepath.Join(t.TempDir(), "missing.json"))

	if _, err := loader.Load(context.Background(), src); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestLoader_FS(t *testing.T) {
	fsys := fstest.MapFS{
		"schemas/ext.json": &fstest.MapFile{Data: []byte(`{"type":"string"}`)},
	}

	loader := New(defaults.NewLoaderOptions(defaults.WithFileSystem(fsys)))
	doc, err := loader.Load(context.Background(), schema.SourceFromFS("schemas/ext.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != `{"type":"string"}` {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
}

func TestLoader_FSWithoutFileSystem(t *testing.T) {
	loader := New(defaults.NewLoaderOptions())

	if _, err := loader.Load(context.Background(), schema.SourceFromFS("ext.json")); err == nil {
		t.Fatalf("expected fs is nil error")
	}
}

func TestLoader_NilSource(t *testing.T) {
	loader := New(defaults.NewLoaderOptions())

	if _, err := loader.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected nil source error")
	}
}

func TestLoader_ContextCancelled(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "ext.json")
	if err := os.WriteFile(target, []byte(`{}`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := New(defaults.NewLoaderOptions())
	if _, err := loader.Load(ctx, schema.SourceFromFile(target)); err == nil {
		t.Fatalf("expected context error")
	}
}
