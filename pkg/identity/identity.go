// Package identity supplies the collaborators the sanitizer and the audit log
// rely on: an identifier generator, a wall-clock source and national ID
// helpers.
//
// Identifiers are random (version 4) UUIDs. Stations generate them offline
// and independently, so they carry no ordering or station information; only
// national ID values are deduplicated on merge.
package identity

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Generator produces opaque, URL-safe identifiers.
type Generator interface {
	// NewID returns a fresh identifier.
	NewID() string

	// Suffix returns a short random token of n characters, used for
	// generated usernames.
	Suffix(n int) string
}

// UUIDGenerator generates 128-bit random identifiers.
type UUIDGenerator struct{}

// NewID returns a new random UUID in its canonical string form.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Suffix returns the first n hex characters of a new random UUID.
func (UUIDGenerator) Suffix(n int) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n <= 0 {
		return ""
	}
	if n > len(hex) {
		n = len(hex)
	}
	return hex[:n]
}

// Default returns the generator used when none is configured.
func Default() Generator {
	return UUIDGenerator{}
}

// Sequence is a deterministic Generator for tests and reproducible fixtures.
// IDs are prefix-1, prefix-2, ... and suffixes are zero padded counters.
type Sequence struct {
	Prefix string
	n      int
}

// NewID returns the next identifier in the sequence.
func (s *Sequence) NewID() string {
	s.n++
	return s.Prefix + "-" + strconv.Itoa(s.n)
}

// Suffix returns the next counter value padded to n characters.
func (s *Sequence) Suffix(n int) string {
	s.n++
	v := strconv.Itoa(s.n)
	for len(v) < n {
		v = "0" + v
	}
	return v[len(v)-n:]
}
