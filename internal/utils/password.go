package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives the bcrypt digest stored in users.password_hash.
// The cost comes from configuration so tests can run at the cheapest
// setting; values outside bcrypt's supported range fall back to the
// library default rather than erroring at signup time.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored digest. It
// deliberately collapses every failure into false so login answers
// identically for a wrong password and a malformed hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
