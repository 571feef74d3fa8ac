package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct-horse-battery")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, Verify("correct-horse-battery", hash))
	assert.False(t, Verify("wrong-password", hash))
	assert.False(t, Verify("", hash))
}

func TestHash_RejectsEmptyPassword(t *testing.T) {
	hash, err := Hash("")
	assert.Error(t, err)
	assert.Empty(t, hash)
}

func TestVerify_GarbageHash(t *testing.T) {
	assert.False(t, Verify("anything", "not-a-bcrypt-hash"))
	assert.False(t, Verify("anything", ""))
}

func TestNeedsRehash(t *testing.T) {
	hash, err := Hash("some-password")
	require.NoError(t, err)

	needs, err := NeedsRehash(hash, DefaultCost)
	require.NoError(t, err)
	assert.False(t, needs)

	needs, err = NeedsRehash(hash, DefaultCost+1)
	require.NoError(t, err)
	assert.True(t, needs)

	_, err = NeedsRehash("garbage", DefaultCost)
	assert.Error(t, err)
}
