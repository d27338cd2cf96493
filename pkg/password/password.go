// Package password implements one-way hashing for stored credentials.
package password

import "golang.org/x/crypto/bcrypt"

// Hash returns a bcrypt hash of plaintext. bcrypt salts per call, so the
// same input hashes differently every time.
func Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches the stored hash. Malformed
// hashes verify as false; callers never see an error.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
