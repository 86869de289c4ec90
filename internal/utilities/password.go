package utilities

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns bcrypt hash of password using default cost
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash
func VerifyPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// DummyHash is a default cost hash of a random secret nobody knows.
// Comparing against it costs as much as checking a real account.
var DummyHash = sync.OnceValue(func() string {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic(err)
	}
	hashed, err := HashPassword(hex.EncodeToString(secret))
	if err != nil {
		panic(err)
	}
	return hashed
})
