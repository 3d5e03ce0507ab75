package utils

import (
	"os"
	"path/filepath"
	"strings"

	"go.viam.com/utils"
)

// DefaultOutputDir is where outputs go when no destination is given.
const DefaultOutputDir = "images"

// DefaultDestination returns images/<base>_compressed.jpg for a still image, or
// images/<base>_compressing.gif when animating, where base is the input file name
// without its extension.
func DefaultDestination(imagePath string, animated bool) string {
	base := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	if animated {
		return filepath.Join(DefaultOutputDir, base+"_compressing.gif")
	}
	return filepath.Join(DefaultOutputDir, base+"_compressed.jpg")
}

// RemoveFileNoError will remove the file at the given path if it exists. Any
// errors will be suppressed.
func RemoveFileNoError(path string) {
	utils.UncheckedErrorFunc(func() error {
		if _, err := os.Stat(path); err == nil {
			return os.Remove(path)
		}
		return nil
	})
}
