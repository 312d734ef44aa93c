package transactions

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32
	pdaMarker     = "ProgramDerivedAddress"
)

var errOnCurve = errors.New("derived address is on the ed25519 curve")

// CreateProgramAddress derives the address of seeds under programID. Addresses on the curve
// have a private key and are rejected.
func CreateProgramAddress(seeds [][]byte, programID types.PublicKey) (types.PublicKey, error) {
	if len(seeds) > maxSeeds {
		return types.ZeroPublicKey, fmt.Errorf("too many seeds: %d", len(seeds))
	}

	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > maxSeedLength {
			return types.ZeroPublicKey, fmt.Errorf("seed of %d bytes exceeds %d", len(seed), maxSeedLength)
		}
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write([]byte(pdaMarker))

	var address types.PublicKey
	copy(address[:], h.Sum(nil))
	if isOnCurve(address) {
		return types.ZeroPublicKey, errOnCurve
	}
	return address, nil
}

// FindProgramAddress searches bumps from 255 down for the first off-curve address.
func FindProgramAddress(seeds [][]byte, programID types.PublicKey) (types.PublicKey, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		withBump := append(append([][]byte{}, seeds...), []byte{byte(bump)})
		address, err := CreateProgramAddress(withBump, programID)
		if errors.Is(err, errOnCurve) {
			continue
		}
		if err != nil {
			return types.ZeroPublicKey, 0, err
		}
		return address, uint8(bump), nil
	}
	return types.ZeroPublicKey, 0, fmt.Errorf("no viable bump for program %s", programID)
}

func isOnCurve(key types.PublicKey) bool {
	_, err := new(edwards25519.Point).SetBytes(key[:])
	return err == nil
}
