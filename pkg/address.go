package pkg

import (
	"fmt"

	"github.com/mr-tron/base58"
)

const solanaAddressLength = 32

// ValidateSolanaAddress checks that address is a base58 encoded 32 byte public key.
func ValidateSolanaAddress(address string) error {
	bz, err := base58.Decode(address)
	if err != nil {
		return fmt.Errorf("invalid base58 address %q: %w", address, err)
	}
	if len(bz) != solanaAddressLength {
		return fmt.Errorf("invalid address %q: decoded to %d bytes, expected %d", address, len(bz), solanaAddressLength)
	}
	return nil
}
