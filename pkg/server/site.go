package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// siteHandler resolves GET requests the way the site is deployed: real files
// first, then the portal pages, then the single-page fallbacks.
type siteHandler struct {
	root string
}

func newSiteHandler(root string) *siteHandler {
	return &siteHandler{root: root}
}

func (h *siteHandler) serve(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
		return
	}

	urlPath := path.Clean("/" + c.Request.URL.Path)
	file, isDir := h.static(urlPath, strings.HasSuffix(c.Request.URL.Path, "/"))
	if isDir {
		target := urlPath + "/"
		if c.Request.URL.RawQuery != "" {
			target += "?" + c.Request.URL.RawQuery
		}
		c.Redirect(http.StatusMovedPermanently, target)
		return
	}
	if file != "" {
		c.File(file)
		return
	}

	c.File(h.fallback(c.Request.URL.Path))
}

// static maps urlPath to an existing file below the root. Directories
// requested with a trailing slash resolve to their index.html; without one
// isDir is reported so the caller can redirect. Dotfiles are never served.
func (h *siteHandler) static(urlPath string, dirRequest bool) (file string, isDir bool) {
	if hasDotSegment(urlPath) {
		return "", false
	}

	name := filepath.Join(h.root, filepath.FromSlash(urlPath))
	info, err := os.Stat(name)
	if err != nil {
		return "", false
	}
	if !info.IsDir() {
		return name, false
	}
	if !dirRequest {
		return "", urlPath != "/"
	}

	index := filepath.Join(name, "index.html")
	if info, err := os.Stat(index); err == nil && !info.IsDir() {
		return index, false
	}
	return "", false
}

func hasDotSegment(urlPath string) bool {
	for _, seg := range strings.Split(urlPath, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// fallback picks the HTML entry point for a path without a matching file.
func (h *siteHandler) fallback(rawPath string) string {
	switch {
	case rawPath == "/portal" || rawPath == "/portal/":
		return filepath.Join(h.root, "portal.html")
	case strings.HasPrefix(rawPath, "/portal/app/"):
		return filepath.Join(h.root, "portal", "app", "index.html")
	default:
		return filepath.Join(h.root, "index.html")
	}
}
