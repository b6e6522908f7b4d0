// Package utils provides utility functions for the application.
package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateAccessCode returns a random access code for public interviews.
// The code is built from two concatenated base36 fragments totalling
// AccessCodeLength characters. Uniqueness is probabilistic only: with
// 36^24 possible codes no collision check is performed against existing
// interviews.
func GenerateAccessCode() (string, error) {
	first, err := randomBase36(AccessCodeLength / 2)
	if err != nil {
		return "", err
	}
	second, err := randomBase36(AccessCodeLength - AccessCodeLength/2)
	if err != nil {
		return "", err
	}
	return first + second, nil
}

// randomBase36 returns n characters drawn uniformly from the base36 alphabet
func randomBase36(n int) (string, error) {
	alphabetLen := big.NewInt(int64(len(AccessCodeAlphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random access code: %w", err)
		}
		buf[i] = AccessCodeAlphabet[idx.Int64()]
	}
	return string(buf), nil
}
