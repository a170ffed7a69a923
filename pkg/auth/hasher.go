package auth

import "golang.org/x/crypto/bcrypt"

// hashCost matches the work factor the platform has always used for
// account passwords. Raising it invalidates nothing: bcrypt embeds the
// cost in each hash, so old hashes keep verifying.
const hashCost = 10

// PasswordHasher produces and verifies salted one-way password hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hashed. A malformed hashed
	// value is a mismatch, not an error.
	Verify(plaintext, hashed string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt. Each Hash call
// draws a fresh salt, so hashing the same password twice yields two
// different strings that both verify.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: hashCost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
