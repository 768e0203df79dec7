// Package password implements salted PBKDF2 credential hashing for local
// email/password accounts. OAuth accounts never carry a password hash.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	algorithm  = "pbkdf2_sha256"
	iterations = 200000
	saltSize   = 16
	keySize    = 32
)

// Hash derives a salted PBKDF2-SHA256 hash from the given password.
// Output format: pbkdf2_sha256:<iterations>:<salt_hex>:<hash_hex>.
// A fresh random salt is generated per call, so hashing the same password
// twice yields different strings.
func Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password required")
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	dk := pbkdf2.Key([]byte(password), salt, iterations, keySize, sha256.New)

	return fmt.Sprintf("%s:%d:%s:%s", algorithm, iterations, hex.EncodeToString(salt), hex.EncodeToString(dk)), nil
}

// Verify reports whether password matches the stored hash. It returns false,
// never an error, for empty, malformed, or unsupported stored values. The
// comparison is constant time.
func Verify(password, stored string) bool {
	if stored == "" {
		return false
	}

	parts := strings.SplitN(stored, ":", 4)
	if len(parts) != 4 || parts[0] != algorithm {
		return false
	}

	iter, err := strconv.Atoi(parts[1])
	if err != nil || iter <= 0 {
		return false
	}

	salt, err := hex.DecodeString(parts[2])
	if err != nil {
		return false
	}

	expected, err := hex.DecodeString(parts[3])
	if err != nil || len(expected) == 0 {
		return false
	}

	candidate := pbkdf2.Key([]byte(password), salt, iter, len(expected), sha256.New)

	return subtle.ConstantTimeCompare(candidate, expected) == 1
}
