package infrastructure

import (
	"embed"
	"io/fs"
	"path"
	"sort"
)

//go:embed boilerplate/*.dart
var boilerplateFS embed.FS

// Boilerplate serves the Dart source dropped into generated folders, keyed by
// file name. Content is read once and never modified.
type Boilerplate struct {
	files map[string]string
}

// NewBoilerplate loads every file in fsys's root into memory.
// In production fsys is the embedded boilerplate directory; tests may pass a
// testing/fstest.MapFS.
func NewBoilerplate(fsys fs.FS) (*Boilerplate, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	files := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, err
		}
		files[entry.Name()] = string(data)
	}
	return &Boilerplate{files: files}, nil
}

// DefaultBoilerplate returns the embedded Flutter boilerplate set.
func DefaultBoilerplate() *Boilerplate {
	sub, err := fs.Sub(boilerplateFS, "boilerplate")
	if err != nil {
		panic(err)
	}
	b, err := NewBoilerplate(sub)
	if err != nil {
		panic(err)
	}
	return b
}

// Content returns the registered text for filename.
func (b *Boilerplate) Content(filename string) (string, bool) {
	content, ok := b.files[path.Base(filename)]
	return content, ok
}

// Names lists the registered file names in sorted order.
func (b *Boilerplate) Names() []string {
	names := make([]string, 0, len(b.files))
	for name := range b.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
