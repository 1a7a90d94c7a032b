package pkg

import "golang.org/x/crypto/bcrypt"

const (
	bcryptCost = 14

	// bcrypt only looks at the first 72 bytes of its input; anything longer
	// makes GenerateFromPassword return an error outright. Truncating up
	// front keeps long passwords working and stays compatible with hashes
	// issued before this limit was hit.
	maxPasswordBytes = 72
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(truncatePassword(password), bcryptCost)
	return BytesToString(bytes), err
}

// CheckPasswordHash returns false on mismatch or a malformed stored hash,
// it never surfaces an error to the caller
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword(password)) == nil
}

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
