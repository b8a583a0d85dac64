package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaims(t *testing.T) {
	claims := Claims{
		"sub": "user-1",
		"scp": "read write",
		"exp": float64(1700000000),
	}

	t.Run("String returns string claims", func(t *testing.T) {
		scp, ok := claims.String("scp")
		assert.True(t, ok)
		assert.Equal(t, "read write", scp)
	})

	t.Run("String reports non-string claims", func(t *testing.T) {
		_, ok := claims.String("exp")
		assert.False(t, ok)
	})

	t.Run("String reports missing claims", func(t *testing.T) {
		_, ok := claims.String("tid")
		assert.False(t, ok)
	})

	t.Run("Subject returns sub", func(t *testing.T) {
		assert.Equal(t, "user-1", claims.Subject())
		assert.Empty(t, Claims{}.Subject())
	})
}
