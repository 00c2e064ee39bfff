package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, hasher.Compare(hash, "correct horse battery"))
	assert.Error(t, hasher.Compare(hash, "wrong password"))
}

func TestBcryptHasherRejectsOverlongPassword(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	// bcrypt itself refuses input over 72 bytes.
	_, err := hasher.Hash(strings.Repeat("p", 73))
	assert.Error(t, err)
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cost     int
		wantCost int
	}{
		{name: "below minimum", cost: bcrypt.MinCost - 1, wantCost: bcrypt.DefaultCost},
		{name: "above maximum", cost: bcrypt.MaxCost + 1, wantCost: bcrypt.DefaultCost},
		{name: "in range", cost: bcrypt.MinCost, wantCost: bcrypt.MinCost},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hasher := NewBcryptHasher(tt.cost)
			assert.Equal(t, tt.wantCost, hasher.cost)
		})
	}
}

func TestBcryptHashesAreSalted(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	second, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
