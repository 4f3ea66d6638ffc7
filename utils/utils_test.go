package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var inviteCodePattern = regexp.MustCompile(`^[A-Za-z0-9]{10}$`)

func TestGenerateInviteCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, err := GenerateInviteCode()
		require.NoError(t, err)
		assert.Regexp(t, inviteCodePattern, code)
		seen[code] = struct{}{}
	}
	// 62^10 вариантов, совпадения на 200 попытках не ожидаем
	assert.Len(t, seen, 200)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
