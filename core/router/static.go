package router

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/searchktools/saaba/core/http"
)

// IndexFile is served for directory URLs ending in '/'
const IndexFile = "index.html"

// Mount maps a URL prefix onto a filesystem directory
type Mount struct {
	Prefix   string
	Dir      string
	segments []string
}

// Static resolves request URLs against registered mounts
type Static struct {
	mounts []Mount
}

// NewStatic creates an empty resolver
func NewStatic() *Static {
	return &Static{}
}

// Mount registers dir under prefix. Registration order breaks specificity ties.
func (s *Static) Mount(prefix, dir string) {
	if prefix == "" || prefix[0] != '/' {
		panic("mount prefix must begin with '/'")
	}
	s.mounts = append(s.mounts, Mount{
		Prefix:   prefix,
		Dir:      dir,
		segments: splitSegments(prefix),
	})
}

// Mounts returns the registered mounts in registration order
func (s *Static) Mounts() []Mount {
	return s.mounts
}

// Resolve finds a file for req. The boolean is false when nothing on disk
// matches, letting the caller fall through.
func (s *Static) Resolve(req *http.Request) (*http.Response, bool) {
	m, rest := s.match(req.URL)
	if m == nil {
		return nil, false
	}

	// Cleaning a rooted path drops any ".." that would climb out of the mount
	rel := path.Clean("/" + strings.Join(rest, "/"))
	fsPath := filepath.Join(m.Dir, filepath.FromSlash(rel))

	info, err := os.Stat(fsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false
		}
		return http.InternalServerError(), true
	}

	if info.IsDir() {
		if !strings.HasSuffix(req.URL, "/") {
			return http.RedirectWith(req.URL+"/", http.StatusPermanentRedirect), true
		}

		fsPath = filepath.Join(fsPath, IndexFile)
		info, err = os.Stat(fsPath)
		if err != nil {
			return nil, false
		}
	}

	if !info.Mode().IsRegular() {
		return nil, false
	}

	return http.File(fsPath), true
}

// match selects the mount sharing the most leading segments with url and
// returns the remaining url segments
func (s *Static) match(url string) (*Mount, []string) {
	segments := splitSegments(url)

	var best *Mount
	for i := range s.mounts {
		m := &s.mounts[i]
		if !hasSegmentPrefix(segments, m.segments) {
			continue
		}
		if best == nil || len(m.segments) > len(best.segments) {
			best = m
		}
	}

	if best == nil {
		return nil, nil
	}
	return best, segments[len(best.segments):]
}

func hasSegmentPrefix(segments, prefix []string) bool {
	if len(prefix) > len(segments) {
		return false
	}
	for i, p := range prefix {
		if segments[i] != p {
			return false
		}
	}
	return true
}

func splitSegments(p string) []string {
	parts := strings.Split(p, "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
