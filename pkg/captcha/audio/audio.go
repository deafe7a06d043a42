// Package audio resolves per-character audio clips for a captcha phrase and
// stitches them into a single stream. Clips come from pluggable repositories
// (an uploaded-files area, a configured directory) merged into one index.
package audio

import (
	"os"
	"strings"
)

// fallbackLocale is consulted when neither the requested locale nor the
// locale-less entry covers a character.
const fallbackLocale = "en"

// ClipKey addresses a candidate clip set: a lower-cased single character,
// optionally scoped to a locale. An empty locale means "any".
type ClipKey struct {
	Locale string
	Char   string
}

// ClipSource is one playable clip, either inline bytes or a file path.
type ClipSource struct {
	Name string
	Path string
	Data []byte
}

// Bytes returns the raw clip content, reading from disk for path-backed clips.
func (s ClipSource) Bytes() ([]byte, error) {
	if s.Data != nil {
		return s.Data, nil
	}
	return os.ReadFile(s.Path)
}

// Index maps clip keys to their non-empty candidate sets.
type Index map[ClipKey][]ClipSource

// Add registers a clip source under a case-normalized key.
func (idx Index) Add(key ClipKey, src ClipSource) {
	key.Locale = strings.ToLower(key.Locale)
	key.Char = strings.ToLower(key.Char)
	idx[key] = append(idx[key], src)
}

// Merge copies all entries of other into idx.
func (idx Index) Merge(other Index) {
	for key, sources := range other {
		idx[key] = append(idx[key], sources...)
	}
}

// Resolve returns the candidate clips for char under locale, walking the
// fallback chain locale → no locale → "en". Nil means no coverage.
func (idx Index) Resolve(locale, char string) []ClipSource {
	locale = strings.ToLower(locale)
	char = strings.ToLower(char)

	if locale != "" {
		if sources := idx[ClipKey{Locale: locale, Char: char}]; len(sources) > 0 {
			return sources
		}
	}
	if sources := idx[ClipKey{Char: char}]; len(sources) > 0 {
		return sources
	}
	if locale != fallbackLocale {
		if sources := idx[ClipKey{Locale: fallbackLocale, Char: char}]; len(sources) > 0 {
			return sources
		}
	}
	return nil
}

// Repository enumerates clips from one backing source.
type Repository interface {
	ListClips() (Index, error)
}

// BuildIndex merges the clips of all repositories into one index.
func BuildIndex(repos ...Repository) (Index, error) {
	merged := Index{}
	for _, repo := range repos {
		idx, err := repo.ListClips()
		if err != nil {
			return nil, err
		}
		merged.Merge(idx)
	}
	return merged, nil
}
