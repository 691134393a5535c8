package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResetToken(t *testing.T) {
	token, err := NewResetToken()
	require.NoError(t, err)
	assert.Len(t, token, 64, "hex of 32 bytes = 64 chars")

	hexRegex := regexp.MustCompile(`^[0-9a-f]{64}$`)
	assert.True(t, hexRegex.MatchString(token))

	// two tokens never collide in practice
	other, err := NewResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestPasswordReset_Valid(t *testing.T) {
	now := time.Now()

	p := &PasswordReset{Used: false, ExpiresAt: now.Add(time.Hour)}
	assert.True(t, p.Valid(now))

	used := &PasswordReset{Used: true, ExpiresAt: now.Add(time.Hour)}
	assert.False(t, used.Valid(now))

	expired := &PasswordReset{Used: false, ExpiresAt: now.Add(-time.Hour)}
	assert.False(t, expired.Valid(now))
}
