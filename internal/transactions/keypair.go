package transactions

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pyefi/excess-rewards-keeper/internal/types"
)

// Keypair is an ed25519 signer as stored by the Solana CLI: a JSON array of the 64 secret key bytes.
type Keypair struct {
	private ed25519.PrivateKey
}

func NewKeypair() (*Keypair, error) {
	_, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate keypair: %w", err)
	}
	return &Keypair{private: private}, nil
}

func KeypairFromBytes(bz []byte) (*Keypair, error) {
	if len(bz) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid keypair length %d, expected %d", len(bz), ed25519.PrivateKeySize)
	}
	private := ed25519.NewKeyFromSeed(bz[:ed25519.SeedSize])
	if !private.Public().(ed25519.PublicKey).Equal(ed25519.PublicKey(bz[ed25519.SeedSize:])) {
		return nil, fmt.Errorf("keypair public key does not match its secret key")
	}
	return &Keypair{private: private}, nil
}

func LoadKeypair(path string) (*Keypair, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keypair from %s: %w", path, err)
	}

	var bz []byte
	var ints []int
	if err := json.Unmarshal(content, &ints); err != nil {
		return nil, fmt.Errorf("failed to parse keypair %s: %w", path, err)
	}
	for _, v := range ints {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("failed to parse keypair %s: byte out of range %d", path, v)
		}
		bz = append(bz, byte(v))
	}

	keypair, err := KeypairFromBytes(bz)
	if err != nil {
		return nil, fmt.Errorf("failed to parse keypair %s: %w", path, err)
	}
	return keypair, nil
}

func (k *Keypair) PublicKey() types.PublicKey {
	return types.PublicKey(k.private.Public().(ed25519.PublicKey))
}

func (k *Keypair) Sign(message []byte) []byte {
	return ed25519.Sign(k.private, message)
}

// MarshalJSON renders the keypair in the Solana CLI file format.
func (k *Keypair) MarshalJSON() ([]byte, error) {
	ints := make([]int, len(k.private))
	for i, b := range k.private {
		ints[i] = int(b)
	}
	return json.Marshal(ints)
}
