package utils

import (
	"math/rand"
)

const keyCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// KeySuffix generates a random base36 string. It disambiguates log keys
// written within the same millisecond; uniqueness is probabilistic only.
func KeySuffix(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = keyCharset[rand.Intn(len(keyCharset))]
	}
	return string(b)
}
