package auth

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sharedKeys     *KeyMaterial
	sharedKeysOnce sync.Once
)

// testKeyMaterial generates one key pair for the whole package; RSA
// generation is too slow to repeat per test.
func testKeyMaterial(t *testing.T) *KeyMaterial {
	t.Helper()
	sharedKeysOnce.Do(func() {
		keys, err := NewKeyMaterial(MinKeyBits)
		if err != nil {
			t.Fatalf("failed to generate key material: %v", err)
		}
		sharedKeys = keys
	})
	return sharedKeys
}

func TestNewKeyMaterial_RejectsWeakKeys(t *testing.T) {
	tests := []struct {
		name string
		bits int
	}{
		{"zero bits", 0},
		{"1024 bits", 1024},
		{"just under minimum", MinKeyBits - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys, err := NewKeyMaterial(tt.bits)
			assert.Error(t, err)
			assert.Nil(t, keys)
		})
	}
}

func TestNewKeyMaterial_GeneratesUsableKeyPair(t *testing.T) {
	keys := testKeyMaterial(t)

	require.NotNil(t, keys.Public())
	assert.GreaterOrEqual(t, keys.Public().N.BitLen(), MinKeyBits)
	assert.Equal(t, &keys.signer().PublicKey, keys.Public())
}
