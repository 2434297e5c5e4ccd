package defaults

import "io/fs"

// LoaderOptions carries pre-resolved configuration for a reference loader.
type LoaderOptions struct {
	// FileSystem backs fs sources. When nil, only file sources load.
	FileSystem fs.FS
}

// LoaderOption mutates LoaderOptions during construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem supplies the fs.FS used for fs sources.
func WithFileSystem(fsys fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = fsys
	}
}

// NewLoaderOptions folds the supplied options into a LoaderOptions value.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	var opts LoaderOptions
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}
	return opts
}
