package audio

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
)

// Assemble concatenates one randomly chosen clip per phrase character, in
// phrase order. Characters with no coverage under the fallback chain are
// skipped silently; the resulting stream is simply missing their sound. Clips
// are appended raw, with no re-encoding; they are assumed concatenable in the
// target container (mp3 frames are). An empty result is valid and denotes a
// misconfigured clip set rather than an error. A read failure of a chosen
// clip aborts the whole assembly.
func Assemble(phrase, locale string, idx Index) ([]byte, error) {
	var out bytes.Buffer
	for _, ch := range strings.ToLower(phrase) {
		candidates := idx.Resolve(locale, string(ch))
		if len(candidates) == 0 {
			continue
		}
		pick := candidates[rand.Intn(len(candidates))]
		data, err := pick.Bytes()
		if err != nil {
			return nil, fmt.Errorf("audio: reading clip %q: %w", pick.Name, err)
		}
		out.Write(data)
	}
	return out.Bytes(), nil
}
