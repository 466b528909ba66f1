package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
)

// Entry is one file of a folder submission. Path is the relative path
// inside the selected folder and becomes the zip entry name as-is.
type Entry struct {
	Path   string
	Reader io.Reader
}

// DefaultArchiveName is used when the project has no usable title.
const DefaultArchiveName = "projet"

// Assemble packs the entries into a single in-memory zip, preserving each
// entry's relative path. Any failure aborts the whole archive.
func Assemble(entries []Entry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("no files to archive")
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, entry := range entries {
		name := CleanEntryPath(entry.Path)
		if name == "" {
			w.Close()
			return nil, fmt.Errorf("invalid entry path %q", entry.Path)
		}
		f, err := w.Create(name)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("create entry %s: %w", name, err)
		}
		if _, err := io.Copy(f, entry.Reader); err != nil {
			w.Close()
			return nil, fmt.Errorf("write entry %s: %w", name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CleanEntryPath normalizes a client-provided relative path: forward
// slashes, no leading slash, no traversal outside the root.
func CleanEntryPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(strings.TrimPrefix(p, "/"))
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return ""
	}
	return p
}

// ArchiveName derives the download filename from the project title,
// always ending in .zip.
func ArchiveName(title string) string {
	slug := Slugify(title)
	if slug == "" {
		slug = DefaultArchiveName
	}
	return slug + ".zip"
}

// Slugify lowercases the title and collapses anything that is not a
// letter or digit into single hyphens.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
