package keystore

import (
	"crypto/rand"
	"fmt"
	"io"
)

const (
	passwordLength   = 10
	passwordAlphabet = "abcdefghijklmnopqrstuvwxyz"
)

// generatePassword returns passwordLength lowercase letters read from r.
// Bytes that would bias the distribution are rejected.
func generatePassword(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}

	const limit = 256 - 256%len(passwordAlphabet)
	out := make([]byte, 0, passwordLength)
	buf := make([]byte, passwordLength)
	for len(out) < passwordLength {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, passwordAlphabet[int(b)%len(passwordAlphabet)])
			if len(out) == passwordLength {
				break
			}
		}
	}
	return string(out), nil
}
