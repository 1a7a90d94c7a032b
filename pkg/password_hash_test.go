package pkg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	passwordHash, err := HashPassword("sr")
	require.NoError(t, err)
	assert.NotEmpty(t, passwordHash)
	assert.True(t, CheckPasswordHash("sr", passwordHash))
	assert.False(t, CheckPasswordHash("sr2", passwordHash))

	// hash generated with a previous version of this code
	assert.True(t, CheckPasswordHash("sr", "$2a$14$z8cd4yJpzP40Qh2F2BhiMO.sOm4YAIaf30pmUKLOaISojD9HnXgaG"))
}

func TestHashPassword_longPasswordsTruncated(t *testing.T) {
	first72 := strings.Repeat("a", 72)
	longPassword := first72 + "everything-here-is-ignored"

	passwordHash, err := HashPassword(longPassword)
	require.NoError(t, err)
	require.NotEmpty(t, passwordHash)

	// only the first 72 bytes are significant, in both directions
	assert.True(t, CheckPasswordHash(longPassword, passwordHash))
	assert.True(t, CheckPasswordHash(first72, passwordHash))
	assert.True(t, CheckPasswordHash(first72+"something-else-entirely", passwordHash))
	assert.False(t, CheckPasswordHash(strings.Repeat("b", 72), passwordHash))
}

func TestCheckPasswordHash_malformedHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("whatever", ""))
	assert.False(t, CheckPasswordHash("whatever", "not-a-bcrypt-hash"))
	assert.False(t, CheckPasswordHash("whatever", "$2a$14$tooshort"))
}
