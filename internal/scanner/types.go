// Package scanner discovers the package directories of a JVM source tree
// and records, per directory, whether it holds sources and a marker file.
package scanner

import "os"

// Item represents one directory found under the scan root.
type Item struct {
	// Path is the absolute filesystem path to the directory.
	Path string `json:"path"`

	// Package is the dotted package name relative to the scan root.
	// The root itself has the empty name.
	Package string `json:"package"`

	// HasMarker indicates whether the directory directly contains the
	// package documentation file.
	HasMarker bool `json:"has_marker"`

	// HasSource indicates whether the directory directly contains at least
	// one file with a recognized JVM source extension.
	HasSource bool `json:"has_source"`
}

// Equal reports whether i and other denote the same directory with the same
// package name and source flag. Paths are compared by filesystem identity,
// so "a/b", "a/b/" and "a/c/../b" are equal. Items whose paths cannot be
// stat'ed are never equal.
func (i Item) Equal(other Item) bool {
	if i.Package != other.Package || i.HasSource != other.HasSource {
		return false
	}
	a, err := os.Stat(i.Path)
	if err != nil {
		return false
	}
	b, err := os.Stat(other.Path)
	if err != nil {
		return false
	}
	return os.SameFile(a, b)
}

// Missing reports whether the directory holds sources but no marker file.
func (i Item) Missing() bool {
	return i.HasSource && !i.HasMarker
}

// Sources returns the items that hold at least one JVM source file.
func Sources(items []Item) []Item {
	var out []Item
	for _, it := range items {
		if it.HasSource {
			out = append(out, it)
		}
	}
	return out
}

// Missing returns the items that hold sources but lack a marker file.
func Missing(items []Item) []Item {
	var out []Item
	for _, it := range items {
		if it.Missing() {
			out = append(out, it)
		}
	}
	return out
}
