package utils

import "crypto/sha256"

// AnchorDiscriminatorLength is the size of the prefix Anchor puts in front of accounts and instructions.
const AnchorDiscriminatorLength = 8

// AnchorAccountDiscriminator returns the discriminator Anchor writes at offset 0 of an account of type name.
func AnchorAccountDiscriminator(name string) [AnchorDiscriminatorLength]byte {
	return anchorDiscriminator("account", name)
}

// AnchorInstructionDiscriminator returns the discriminator that selects instruction name of a program.
func AnchorInstructionDiscriminator(name string) [AnchorDiscriminatorLength]byte {
	return anchorDiscriminator("global", name)
}

func anchorDiscriminator(namespace, name string) [AnchorDiscriminatorLength]byte {
	var discriminator [AnchorDiscriminatorLength]byte
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	copy(discriminator[:], sum[:AnchorDiscriminatorLength])
	return discriminator
}

// Contains checks if a slice contains a specific element
func Contains[T comparable](slice []T, item T) bool {
	for _, elem := range slice {
		if elem == item {
			return true
		}
	}
	return false
}
