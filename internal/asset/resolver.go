// Package asset locates optional image files and turns them into embeddable
// references. A missing asset is never an error.
package asset

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/methane-report-service/internal/domain"
)

const inlinePrefix = "data:image/"

// Outcome describes how a resolution ended.
type Outcome string

const (
	OutcomeFile   Outcome = "file"
	OutcomeInline Outcome = "inline"
	OutcomeAbsent Outcome = "absent"
)

// Resolver reads candidate files relative to a base directory.
type Resolver struct {
	baseDir string
	observe func(Outcome)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithObserver registers a callback invoked once per resolution.
func WithObserver(fn func(Outcome)) Option {
	return func(r *Resolver) { r.observe = fn }
}

// NewResolver returns a Resolver rooted at baseDir. An empty baseDir means
// the working directory.
func NewResolver(baseDir string, opts ...Option) *Resolver {
	r := &Resolver{baseDir: baseDir}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the first candidate that exists as a non-empty regular
// file. It returns the absent ref when none do.
func (r *Resolver) Resolve(candidates []string) domain.AssetRef {
	ref := r.firstFile(candidates)
	if ref.Present() {
		r.record(OutcomeFile)
	} else {
		r.record(OutcomeAbsent)
	}
	return ref
}

// ResolveOverride resolves an asset override value. A string that is already
// an image data URI is used verbatim. Any other string is tried as a file
// path inside the base directory ahead of the fallback candidates; absolute
// paths and paths leaving the base directory, symlinks included, are never
// read. Non-string values are ignored.
func (r *Resolver) ResolveOverride(value any, fallback []string) domain.AssetRef {
	s, ok := value.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return r.Resolve(fallback)
	}
	if strings.HasPrefix(s, inlinePrefix) {
		r.record(OutcomeInline)
		return domain.AssetRef{Inline: s}
	}
	if ref := r.confinedFile(s); ref.Present() {
		r.record(OutcomeFile)
		return ref
	}
	return r.Resolve(fallback)
}

// confinedFile reads name through an os.Root opened on the base directory.
func (r *Resolver) confinedFile(name string) domain.AssetRef {
	dir := r.baseDir
	if dir == "" {
		dir = "."
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return domain.AssetRef{}
	}
	defer func() { _ = root.Close() }()

	f, err := root.Open(name)
	if err != nil {
		return domain.AssetRef{}
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() || info.Size() == 0 {
		return domain.AssetRef{}
	}
	data, err := io.ReadAll(f)
	if err != nil || len(data) == 0 {
		return domain.AssetRef{}
	}
	return domain.AssetRef{Data: data, MediaType: MediaType(name), Source: filepath.Join(dir, name)}
}

func (r *Resolver) firstFile(candidates []string) domain.AssetRef {
	for _, name := range candidates {
		if name == "" {
			continue
		}
		path := r.path(name)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() || info.Size() == 0 {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil || len(data) == 0 {
			continue
		}
		return domain.AssetRef{Data: data, MediaType: MediaType(name), Source: path}
	}
	return domain.AssetRef{}
}

func (r *Resolver) path(name string) string {
	if filepath.IsAbs(name) || r.baseDir == "" {
		return name
	}
	return filepath.Join(r.baseDir, name)
}

func (r *Resolver) record(o Outcome) {
	if r.observe != nil {
		r.observe(o)
	}
}

// MediaType infers the image media type from a file extension, defaulting to
// PNG.
func MediaType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "image/png"
	}
}
