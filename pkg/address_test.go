package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSolanaAddress(t *testing.T) {
	assert.NoError(t, ValidateSolanaAddress("11111111111111111111111111111111"))
	assert.NoError(t, ValidateSolanaAddress("Stake11111111111111111111111111111111111111"))

	assert.Error(t, ValidateSolanaAddress(""))
	assert.Error(t, ValidateSolanaAddress("0OIl"))
	assert.Error(t, ValidateSolanaAddress("1111"))
}

func TestPtr(t *testing.T) {
	p := Ptr(uint64(42))
	assert.Equal(t, uint64(42), *p)
}
