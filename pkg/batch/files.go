package batch

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Discover lists the regular files directly inside dir whose extension,
// lower-cased, is in extensions. Subdirectories are not entered. The
// result is sorted by filename so batch runs are reproducible.
func Discover(dir string, extensions []string) ([]string, error) {
	info, err := os.Stat(dir)

	if err != nil {
		return nil, errors.New("directory does not exist: " + dir)
	}

	if !info.IsDir() {
		return nil, errors.New("path is not a directory: " + dir)
	}

	normalized := make([]string, 0, len(extensions))

	for _, ext := range extensions {
		normalized = append(normalized, strings.ToLower(ext))
	}

	entries, err := os.ReadDir(dir)

	if err != nil {
		return nil, err
	}

	var images []string

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		if slices.Contains(normalized, strings.ToLower(filepath.Ext(entry.Name()))) {
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}

	slices.Sort(images)

	return images, nil
}

// OutputFilename derives the output name for an image by swapping its
// extension. The stem is preserved verbatim, including embedded dots.
// An empty extension defaults to ".txt"; a missing leading dot is added.
func OutputFilename(imagePath, extension string) string {
	if extension == "" {
		extension = ".txt"
	}

	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}

	name := filepath.Base(imagePath)
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	return stem + extension
}

// EnsureDirectory creates dir (and parents) if missing. A non-directory
// occupying the path is an error.
func EnsureDirectory(dir string) error {
	info, err := os.Stat(dir)

	if err == nil {
		if !info.IsDir() {
			return errors.New("path exists but is not a directory: " + dir)
		}

		return nil
	}

	return os.MkdirAll(dir, 0o755)
}
