// Package config provides configuration loading and defaults for pkginfo.
package config

// DefaultMarkerFile is the package documentation file managed by pkginfo.
const DefaultMarkerFile = "package-info.java"

// DefaultExtensions are the file extensions recognized as JVM sources.
// A directory holding at least one such file is a package that needs a
// marker file.
var DefaultExtensions = []string{".java", ".kt", ".scala", ".clj"}

// DefaultConfigDir is the default location for the user-level config.
const DefaultConfigDir = "~/.config/pkginfo"

// DefaultConfigName is the base name looked up in the working directory
// and in DefaultConfigDir.
const DefaultConfigName = ".pkginfo"

// EnvPrefix prefixes environment overrides, e.g. PKGINFO_MARKER_FILE.
const EnvPrefix = "PKGINFO"

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
}
