// Package save configures how bundles are written: to a path or a writer,
// as JSON or YAML.
package save

import (
	"io"
	"path/filepath"
	"strings"
)

// Format is a bundle serialization format.
type Format int

// Format constants.
const (
	FormatJSON Format = iota
	FormatYAML
)

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// ParseFormat maps a name such as "json", "yaml" or "yml" to a Format.
// Anything else is JSON, the wire format of exported bundles.
func ParseFormat(name string) Format {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "yaml", "yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) Format {
	return ParseFormat(filepath.Ext(path))
}

// Options is the configuration for save.
type Options struct {
	path   string
	writer io.Writer
	format Format
	secure bool
}

// Path returns the path for the save options.
func (s *Options) Path() string {
	return s.path
}

// Writer returns the writer for the save options.
func (s *Options) Writer() io.Writer {
	return s.writer
}

// Format returns the format for the save options.
func (s *Options) Format() Format {
	return s.format
}

// Secure reports whether files should be written owner-readable only.
func (s *Options) Secure() bool {
	return s.secure
}

// Defaults returns the default save options.
func Defaults() *Options {
	return &Options{
		format: FormatJSON,
	}
}

// Apply applies the given options to the save options.
func (s *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(s)
	}
	return *s
}

// Option is a function that configures save options.
type Option func(*Options)

// WithFormat for custom output format.
func WithFormat(f Format) Option {
	return func(s *Options) {
		s.format = f
	}
}

// WithPath for filesystem saves. The format follows the extension unless
// WithFormat is applied afterwards.
func WithPath(path string) Option {
	return func(s *Options) {
		s.path = path
		s.format = FormatFromPath(path)
	}
}

// WithWriter for custom outputs.
func WithWriter(w io.Writer) Option {
	return func(s *Options) {
		s.writer = w
	}
}

// WithSecure writes files with owner-only permissions. Backups carry agent
// credentials, so full backups use it.
func WithSecure(secure bool) Option {
	return func(s *Options) {
		s.secure = secure
	}
}
