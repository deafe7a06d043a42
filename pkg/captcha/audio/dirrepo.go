package audio

import (
	"os"
	"path/filepath"
	"strings"
)

// DirRepository scans a configured filesystem directory for clips. Two
// layouts are recognized, matching the admin documentation for the audio
// assets:
//
//	<dir>/<locale>/<char>/<any>.mp3
//	<dir>/<locale>_<char>.mp3 or <dir>/<char>.mp3
type DirRepository struct {
	Dir string
}

func NewDirRepository(dir string) *DirRepository {
	return &DirRepository{Dir: dir}
}

// ListClips enumerates the directory. An unset or missing directory yields an
// empty index; the admin may simply not have configured one.
func (r *DirRepository) ListClips() (Index, error) {
	idx := Index{}
	if r.Dir == "" {
		return idx, nil
	}
	if _, err := os.Stat(r.Dir); os.IsNotExist(err) {
		return idx, nil
	}

	// locale/char/*.mp3 layout
	nested, err := filepath.Glob(filepath.Join(r.Dir, "*", "?", "*.mp3"))
	if err != nil {
		return nil, err
	}
	for _, path := range nested {
		charDir := filepath.Dir(path)
		localeDir := filepath.Dir(charDir)
		idx.Add(ClipKey{
			Locale: filepath.Base(localeDir),
			Char:   filepath.Base(charDir),
		}, ClipSource{Name: filepath.Base(path), Path: path})
	}

	// flat locale_char.mp3 / char.mp3 layout
	flat, err := filepath.Glob(filepath.Join(r.Dir, "*.mp3"))
	if err != nil {
		return nil, err
	}
	for _, path := range flat {
		key, ok := ParseClipName(filepath.Base(path))
		if !ok {
			continue
		}
		idx.Add(key, ClipSource{Name: filepath.Base(path), Path: path})
	}

	return idx, nil
}

// ParseClipName derives a clip key from a flat filename following the
// "<locale>_<char>.mp3" or "<char>.mp3" convention. Anything else is ignored.
func ParseClipName(filename string) (ClipKey, bool) {
	base := strings.ToLower(strings.TrimSuffix(filename, filepath.Ext(filename)))
	if base == "" {
		return ClipKey{}, false
	}

	if locale, char, found := strings.Cut(base, "_"); found {
		if locale != "" && len([]rune(char)) == 1 {
			return ClipKey{Locale: locale, Char: char}, true
		}
		return ClipKey{}, false
	}

	if len([]rune(base)) == 1 {
		return ClipKey{Char: base}, true
	}
	return ClipKey{}, false
}
