package web

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// StaticHandler serves the storefront pages from a directory. Extension-less
// paths resolve the same way the hosting setup did: first <path>/index.html,
// then <path>.html.
type StaticHandler struct {
	Dir string
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clean := path.Clean("/" + r.URL.Path)
	if strings.Contains(clean, "..") {
		http.NotFound(w, r)
		return
	}

	if clean == "/" {
		clean = "/index.html"
	}

	target := filepath.Join(h.Dir, filepath.FromSlash(clean))
	if path.Ext(clean) == "" {
		if candidate := filepath.Join(target, "index.html"); fileExists(candidate) {
			target = candidate
		} else if candidate := target + ".html"; fileExists(candidate) {
			target = candidate
		}
	}

	if !fileExists(target) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, target)
}

func fileExists(name string) bool {
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}
