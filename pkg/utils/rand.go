package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	randTextChars   = "abcdefghijklmnopqrstuvwxyz"
	randStringChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// RandText generates n random lowercase letters
func RandText(n int) string {
	return randFrom(n, randTextChars)
}

// RandString generates n random alphanumeric characters
func RandString(n int) string {
	return randFrom(n, randStringChars)
}

func randFrom(n int, chars string) string {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(chars)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic(err)
		}
		buf[i] = chars[idx.Int64()]
	}
	return string(buf)
}
