package credential

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/nacl/secretbox"
)

// SealedPrefix marks a DSL value encrypted with Seal
const SealedPrefix = "$SEALED."

// SecretEnv the environment variable holding the sealing secret
const SecretEnv = "NEO4J_NODE_SECRET"

const nonceSize = 24

// ErrNoSecret the sealing secret is not set
var ErrNoSecret = errors.New(SecretEnv + " is not set")

// Seal encrypts a value with the secret from NEO4J_NODE_SECRET, the result
// can be pasted into a DSL file as is
func Seal(plain string) (string, error) {
	key, err := secretKey()
	if err != nil {
		return "", err
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}

	box := secretbox.Seal(nonce[:], []byte(plain), &nonce, key)
	return SealedPrefix + base64.StdEncoding.EncodeToString(box), nil
}

// Open decrypts a $SEALED. value
func Open(sealed string) (string, error) {
	key, err := secretKey()
	if err != nil {
		return "", err
	}

	box, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(sealed, SealedPrefix))
	if err != nil {
		return "", fmt.Errorf("sealed value: %w", err)
	}
	if len(box) < nonceSize+secretbox.Overhead {
		return "", fmt.Errorf("sealed value is too short")
	}

	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, key)
	if !ok {
		return "", fmt.Errorf("sealed value can not be opened with the %s secret", SecretEnv)
	}
	return string(plain), nil
}

func secretKey() (*[32]byte, error) {
	secret := os.Getenv(SecretEnv)
	if secret == "" {
		return nil, ErrNoSecret
	}
	key := blake2b.Sum256([]byte(secret))
	return &key, nil
}
