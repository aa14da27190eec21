// internal/importer/sanitize.go
package importer

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	illegalChars = regexp.MustCompile(`[<>:"|?*\x00]`)
	multiDot     = regexp.MustCompile(`\.{2,}`)
)

// SanitizeFilename makes name safe to use as a single path element.
// Separators become spaces so a name can never climb out of its directory.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\x00", "")
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = illegalChars.ReplaceAllString(name, " ")
	name = multiDot.ReplaceAllString(name, ".")
	name = spaceRun.ReplaceAllString(name, " ")
	return strings.Trim(name, " .")
}

// ValidatePath returns ErrPathTraversal unless path resolves inside root.
func ValidatePath(path, root string) error {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return ErrPathTraversal
	}
	return nil
}
