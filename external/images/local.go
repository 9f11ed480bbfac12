package images

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rodneymbrown1/videodraft/internal/images"
)

var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
	".gif":  {},
}

// LibrarySource serves images from a flat local directory. Matching is a
// case-insensitive substring test against the filename; refs are filenames.
type LibrarySource struct {
	dir string
}

func NewLibrarySource(dir string) *LibrarySource {
	return &LibrarySource{dir: dir}
}

func (s *LibrarySource) Search(_ context.Context, query string, limit int) ([]images.Candidate, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read image library: %w", err)
	}
	query = strings.ToLower(query)

	var out []images.Candidate
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if _, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(name), query) {
			continue
		}
		out = append(out, images.Candidate{Ref: name, Filename: name, Source: "library"})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ref < out[j].Ref })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *LibrarySource) Fetch(_ context.Context, ref string) (string, []byte, error) {
	if ref == "" || ref != filepath.Base(ref) {
		return "", nil, fmt.Errorf("invalid image ref %q", ref)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, ref))
	if err != nil {
		return "", nil, fmt.Errorf("fetch image %s: %w", ref, err)
	}
	return ref, data, nil
}
