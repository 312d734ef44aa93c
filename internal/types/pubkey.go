package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

const PublicKeyLength = 32

// PublicKey is an ed25519 public key or program derived address, base58 encoded on the wire.
type PublicKey [PublicKeyLength]byte

// ZeroPublicKey is the default key, used on-chain as the "unset" sentinel.
var ZeroPublicKey PublicKey

func PublicKeyFromBase58(s string) (PublicKey, error) {
	var pk PublicKey
	bz, err := base58.Decode(s)
	if err != nil {
		return pk, fmt.Errorf("invalid base58 public key %q: %w", s, err)
	}
	if len(bz) != PublicKeyLength {
		return pk, fmt.Errorf("invalid public key %q: expected %d bytes, got %d", s, PublicKeyLength, len(bz))
	}
	copy(pk[:], bz)
	return pk, nil
}

// MustPublicKeyFromBase58 panics on invalid input; use it only for constants.
func MustPublicKeyFromBase58(s string) PublicKey {
	pk, err := PublicKeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return pk
}

func PublicKeyFromBytes(bz []byte) (PublicKey, error) {
	var pk PublicKey
	if len(bz) != PublicKeyLength {
		return pk, fmt.Errorf("invalid public key length %d", len(bz))
	}
	copy(pk[:], bz)
	return pk, nil
}

func (pk PublicKey) String() string {
	return base58.Encode(pk[:])
}

func (pk PublicKey) Bytes() []byte {
	return pk[:]
}

func (pk PublicKey) IsZero() bool {
	return pk == ZeroPublicKey
}
