package common

import (
	"crypto/rand"
	"math/big"
)

// CardIDLength is the number of characters in a generated card id.
const CardIDLength = 8

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// MakeRandToken returns a random lowercase base36 token of the given length.
// It returns an error if the random number generator fails.
func MakeRandToken(size int) (string, error) {
	if size <= 0 {
		return "", nil
	}

	max := big.NewInt(int64(len(idAlphabet)))
	b := make([]byte, size)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = idAlphabet[n.Int64()]
	}

	return string(b), nil
}

// NewCardID generates a short opaque card id.
func NewCardID() (string, error) {
	return MakeRandToken(CardIDLength)
}
