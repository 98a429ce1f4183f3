// Package treehash provides the hash capability that sector tree shapes are
// parameterised by. It only constructs hashers; building trees and hashing
// sector data are left to the proof code that consumes a shape.
package treehash

import (
	"hash"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
	"github.com/consensys/gnark/frontend"
	gnarkhash "github.com/consensys/gnark/std/hash"
	poseidon2circuit "github.com/consensys/gnark/std/permutation/poseidon2"
)

// Poseidon2 permutation parameters used in-circuit. They must match the
// defaults of the native gnark-crypto BN254 hasher.
const (
	poseidonWidth         = 2
	poseidonFullRounds    = 6
	poseidonPartialRounds = 50
)

// Hasher is implemented by every tree hash a shape can carry. NewHasher and
// NewCircuitHasher must produce identical digests for the same sequence of
// field elements.
type Hasher interface {
	HasherName() string
	// NewHasher returns a native Merkle-Damgard hasher consuming 32-byte
	// big-endian field elements.
	NewHasher() hash.Hash
	// NewCircuitHasher returns the in-circuit counterpart of NewHasher.
	NewCircuitHasher(api frontend.API) (gnarkhash.FieldHasher, error)
}

// Poseidon2 is the Poseidon2 hash over the BN254 scalar field.
type Poseidon2 struct{}

func (Poseidon2) HasherName() string {
	return "poseidon2-bn254"
}

func (Poseidon2) NewHasher() hash.Hash {
	return poseidon2.NewMerkleDamgardHasher()
}

func (Poseidon2) NewCircuitHasher(api frontend.API) (gnarkhash.FieldHasher, error) {
	p, err := poseidon2circuit.NewPoseidon2FromParameters(api, poseidonWidth, poseidonFullRounds, poseidonPartialRounds)
	if err != nil {
		return nil, err
	}
	return gnarkhash.NewMerkleDamgardHasher(api, p, 0), nil
}

// Default is the tree hash used by every supported sector shape.
var Default Hasher = Poseidon2{}
