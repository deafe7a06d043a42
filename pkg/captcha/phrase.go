package captcha

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// DefaultAlphabet leaves out "0" and "o"; the visually confusable pairs that
// remain ("1"/"l") are absorbed by the fuzzy comparison.
const DefaultAlphabet = "abcdefghijklmnpqrstuvwxyz123456789"

// DefaultPhraseLength is the number of characters a fresh challenge carries.
const DefaultPhraseLength = 6

var (
	ErrInvalidLength = errors.New("captcha: phrase length must be at least 1")
	ErrEmptyAlphabet = errors.New("captcha: alphabet must not be empty")
)

// GeneratePhrase draws length independent uniform characters from alphabet
// using crypto/rand. It has no side effects and is safe for concurrent use.
func GeneratePhrase(length int, alphabet string) (string, error) {
	if length < 1 {
		return "", ErrInvalidLength
	}
	if alphabet == "" {
		return "", ErrEmptyAlphabet
	}

	chars := []rune(alphabet)
	max := big.NewInt(int64(len(chars)))
	phrase := make([]rune, length)
	for i := range phrase {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		phrase[i] = chars[idx.Int64()]
	}
	return string(phrase), nil
}
