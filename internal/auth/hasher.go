package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher abstracts the one-way password transform so the services
// stay independent of the hashing algorithm.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(plaintext string) (string, error)
	// Check reports whether plaintext is the input that produced hashed.
	Check(plaintext, hashed string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a PasswordHasher backed by bcrypt at the default
// cost.
func NewBcryptHasher() PasswordHasher {
	return &bcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Check treats a malformed hash as a mismatch rather than an error, so
// callers can fold it into their generic invalid-credentials path.
func (h *bcryptHasher) Check(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
