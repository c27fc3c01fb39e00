package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher abstracts password hashing and verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type bcryptPasswordHasher struct {
	cost int
}

// NewBcryptPasswordHasher creates a hasher with the default bcrypt cost.
func NewBcryptPasswordHasher() PasswordHasher {
	return &bcryptPasswordHasher{cost: bcrypt.DefaultCost}
}

// NewBcryptPasswordHasherWithCost creates a hasher with a custom cost.
// Lower costs are useful in tests.
func NewBcryptPasswordHasherWithCost(cost int) PasswordHasher {
	return &bcryptPasswordHasher{cost: cost}
}

func (h *bcryptPasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *bcryptPasswordHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
