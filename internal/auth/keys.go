package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
)

// MinKeyBits is the smallest signing key size the service will accept.
const MinKeyBits = 2048

// KeyMaterial holds the asymmetric key pair used to sign and verify tokens.
// It is generated once at startup and injected into the token service; the
// private key never leaves this package. There is no rotation: a restart
// invalidates all previously issued tokens.
type KeyMaterial struct {
	private *rsa.PrivateKey
}

// NewKeyMaterial generates a fresh RSA key pair. A generation failure is
// fatal to the caller: the service must not start without signing capability.
func NewKeyMaterial(bits int) (*KeyMaterial, error) {
	if bits < MinKeyBits {
		return nil, fmt.Errorf("signing key must be at least %d bits, got %d", MinKeyBits, bits)
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing key pair: %w", err)
	}

	return &KeyMaterial{private: key}, nil
}

// Public returns the verification key.
func (k *KeyMaterial) Public() *rsa.PublicKey {
	return &k.private.PublicKey
}

// signer is only reachable from the token service in this package.
func (k *KeyMaterial) signer() *rsa.PrivateKey {
	return k.private
}
