package credentials

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Verifier parameters. The iteration count is deliberately high so deriving
// a key costs tens of milliseconds; existing records encode these parameters
// implicitly, so changing them invalidates stored verifiers.
const (
	kdfIterations = 100_000
	saltLength    = 16
	keyLength     = 32
)

const verifierDelimiter = ":"

// Hash derives a salted verifier from a plaintext password. The verifier is
// encoded as hex(salt) + ":" + hex(derivedKey) and cannot be reversed to the
// plaintext.
func Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("[credentials.Hash] failed to generate salt: %w", err)
	}
	return hashWithSalt(password, salt), nil
}

func hashWithSalt(password string, salt []byte) string {
	key := pbkdf2.Key([]byte(password), salt, kdfIterations, keyLength, sha256.New)
	return hex.EncodeToString(salt) + verifierDelimiter + hex.EncodeToString(key)
}

// Verify re-derives the key using the salt embedded in the stored verifier
// and compares in constant time. A verifier that does not split into exactly
// salt and key material is corrupt data and yields ErrCorruptVerifier rather
// than a guess.
func Verify(password, verifier string) (bool, error) {
	parts := strings.Split(verifier, verifierDelimiter)
	if len(parts) != 2 {
		return false, ErrCorruptVerifier
	}

	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false, ErrCorruptVerifier
	}
	storedKey, err := hex.DecodeString(parts[1])
	if err != nil {
		return false, ErrCorruptVerifier
	}

	key := pbkdf2.Key([]byte(password), salt, kdfIterations, keyLength, sha256.New)
	return subtle.ConstantTimeCompare(key, storedKey) == 1, nil
}
