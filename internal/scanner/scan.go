package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Options configures a Scanner.
type Options struct {
	// MarkerFile is the name of the package documentation file,
	// e.g. "package-info.java".
	MarkerFile string

	// Extensions lists the recognized source extensions, dot included.
	Extensions []string
}

// Scanner walks a source tree breadth-first.
type Scanner struct {
	markerFile string
	extensions []string
}

// New returns a Scanner for the given options.
func New(opts Options) *Scanner {
	return &Scanner{
		markerFile: opts.MarkerFile,
		extensions: append([]string(nil), opts.Extensions...),
	}
}

// Scan lists every directory below root, one Item each, in breadth-first
// discovery order. The root itself is not part of the result. Symlinks to
// directories are followed without cycle detection. The first filesystem
// error aborts the scan.
func (s *Scanner) Scan(root string) ([]Item, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("reading sources root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("sources root %s is not a directory", abs)
	}

	var items []Item
	queue := []Item{{Path: abs}}

	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(parent.Path)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", parent.Path, err)
		}

		for _, entry := range entries {
			childPath := filepath.Join(parent.Path, entry.Name())
			isDir, err := isDirectory(childPath, entry)
			if err != nil {
				return nil, err
			}
			if !isDir {
				continue
			}

			child := Item{
				Path:    childPath,
				Package: packageName(parent.Package, entry.Name()),
			}
			if err := s.probe(&child); err != nil {
				return nil, err
			}
			items = append(items, child)
			queue = append(queue, child)
		}
	}

	return items, nil
}

// probe fills the marker and source flags from the directory's direct
// entries. Only regular files count, symlinks followed; a marker named with
// a source extension sets both flags.
func (s *Scanner) probe(item *Item) error {
	entries, err := os.ReadDir(item.Path)
	if err != nil {
		return fmt.Errorf("listing %s: %w", item.Path, err)
	}

	for _, entry := range entries {
		if item.HasMarker && item.HasSource {
			return nil
		}
		name := entry.Name()
		isMarker := name == s.markerFile
		isSource := s.IsSource(name)
		if !isMarker && !isSource {
			continue
		}

		isFile, err := isRegularFile(filepath.Join(item.Path, name), entry)
		if err != nil {
			return err
		}
		if !isFile {
			continue
		}
		if isMarker {
			item.HasMarker = true
		}
		if isSource {
			item.HasSource = true
		}
	}
	return nil
}

// IsSource reports whether name ends with one of the recognized extensions.
func (s *Scanner) IsSource(name string) bool {
	for _, ext := range s.extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// isDirectory follows symlinks; a dangling link is not a directory.
func isDirectory(path string, entry os.DirEntry) (bool, error) {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.IsDir(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("resolving %s: %w", path, err)
	}
	return info.IsDir(), nil
}

// isRegularFile follows symlinks; a dangling link is not a file.
func isRegularFile(path string, entry os.DirEntry) (bool, error) {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.Type().IsRegular(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("resolving %s: %w", path, err)
	}
	return info.Mode().IsRegular(), nil
}

func packageName(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
