package organizer

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// duplicatePattern matches filenames with _duplicate or _duplicate_N suffix before extension
var duplicatePattern = regexp.MustCompile(`^(.+)_duplicate(?:_(\d+))?(\.[^.]+)?$`)

// GenerateDuplicateName returns a name in destDir that exists reports as free.
// A free filename is returned unchanged. Otherwise "_duplicate" is added before
// the extension, then "_duplicate_2", "_duplicate_3" and so on.
//
// Examples:
//   - "1.jpg" -> "1_duplicate.jpg" (if 1.jpg exists)
//   - "1_duplicate.jpg" -> "1_duplicate_2.jpg" (if 1_duplicate.jpg exists)
func GenerateDuplicateName(exists func(string) bool, destDir, filename string) string {
	free := func(name string) bool {
		return !exists(filepath.Join(destDir, name))
	}

	if free(filename) {
		return filename
	}

	if matches := duplicatePattern.FindStringSubmatch(filename); matches != nil {
		base, numStr, ext := matches[1], matches[2], matches[3]
		next := 2
		if numStr != "" {
			n, _ := strconv.Atoi(numStr)
			next = n + 1
		}
		for ; ; next++ {
			candidate := base + "_duplicate_" + strconv.Itoa(next) + ext
			if free(candidate) {
				return candidate
			}
		}
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	if candidate := base + "_duplicate" + ext; free(candidate) {
		return candidate
	}
	for n := 2; ; n++ {
		candidate := base + "_duplicate_" + strconv.Itoa(n) + ext
		if free(candidate) {
			return candidate
		}
	}
}
