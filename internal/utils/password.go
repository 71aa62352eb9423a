package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes an admin password. Only admin accounts
// carry passwords; customers authenticate by phone number. The cost
// comes from BCRYPT_COST, so out-of-range values are clamped to the
// library default instead of failing the admin bootstrap.
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

// VerifyPassword compares a stored hash against a login attempt.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
