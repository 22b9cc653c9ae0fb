package otp

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// CodeLength is the number of digits in a one-time code.
const CodeLength = 6

// bcrypt cost; codes live for minutes, so a lower cost than passwords is enough.
const cost = 10

// Generate returns a uniformly random numeric code of CodeLength digits.
func Generate() (string, error) {
	b := make([]byte, CodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b[i] = byte('0' + n.Int64())
	}
	return string(b), nil
}

// Hash hashes a code for storage.
func Hash(code string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(code), cost)
	return string(h), err
}

// Verify compares a submitted code with its stored hash.
func Verify(code, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
