package cli

import (
	"crypto/rand"
	"math/big"
)

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*-_=+"

// GeneratePassword returns a random password of length characters
// drawn uniformly from passwordAlphabet using a CSPRNG. This backs
// `pass generate`; it has no relationship to the deterministic
// domain-key derivation used elsewhere in keyforge — a generated
// password is, by design, not recoverable from the master seed.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		length = 20
	}
	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}
