package refloader

import (
	"context"
	"errors"
	"io/fs"

	"github.com/goliatone/go-schema-defaults/pkg/defaults"
	"github.com/goliatone/go-schema-defaults/pkg/schema"
)

// Loader implements defaults.Loader by delegating to file or fs.FS
// strategies.
type Loader struct {
	fs fs.FS
}

// Ensure the implementation satisfies the public interface.
var _ defaults.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options defaults.LoaderOptions) defaults.Loader {
	return &Loader{fs: options.FileSystem}
}

// Load fetches a reference document from the provided source and wraps it in
// a Document. Loads are eager and uncached; callers referencing the same
// source twice trigger two reads.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errors.New("refloader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case schema.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case schema.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	default:
		err = errors.New("refloader: unsupported source kind")
	}
	if err != nil {
		return schema.Document{}, err
	}

	return schema.NewDocument(src, data)
}
