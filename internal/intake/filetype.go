// Package intake validates candidate documents and moves them from a drop
// zone into a file input, the same way a manual pick would.
package intake

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/soyeahso/sasagent/internal/config"
)

var imageExtensions = []string{"jpg", "jpeg", "png", "gif", "bmp", "webp"}

// IsValidFileType reports whether name ends in one of
// config.DefaultExtensions, ignoring case.
func IsValidFileType(name string) bool {
	return HasExtension(name, config.DefaultExtensions)
}

// HasExtension reports whether name ends in one of exts, ignoring case.
func HasExtension(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// FileExtension returns the lowercased text after the last dot, or the
// whole lowercased name when there is no dot.
func FileExtension(name string) string {
	name = filepath.Base(name)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return strings.ToLower(name[i+1:])
	}
	return strings.ToLower(name)
}

// IsImageFile reports whether name has a common image extension.
func IsImageFile(name string) bool {
	return slices.Contains(imageExtensions, FileExtension(name))
}
