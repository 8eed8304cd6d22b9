package auth

import "golang.org/x/crypto/bcrypt"

// Hasher turns passwords into stored credentials and checks them back.
type Hasher interface {
	Hash(password string) (string, error)
	// Matches reports whether password produces the stored credential.
	Matches(stored, password string) bool
}

// BcryptHasher stores salted one-way bcrypt hashes.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{Cost: cost}
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h BcryptHasher) Matches(stored, password string) bool {
	// plaintext rows left by older databases are not bcrypt hashes and fail here too
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// PlaintextHasher keeps passwords verbatim and compares them literally.
// Only for databases that must stay readable by the original program.
type PlaintextHasher struct{}

func (PlaintextHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlaintextHasher) Matches(stored, password string) bool {
	return stored == password
}
