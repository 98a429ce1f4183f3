package treehash

import (
	"bytes"
	"fmt"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
)

// digestCircuit hashes Inputs with the circuit hasher and checks the result
// against the natively computed Digest.
type digestCircuit struct {
	Inputs []frontend.Variable
	Digest frontend.Variable `gnark:",public"`
}

func (c *digestCircuit) Define(api frontend.API) error {
	h, err := Default.NewCircuitHasher(api)
	if err != nil {
		return err
	}
	h.Write(c.Inputs...)
	api.AssertIsEqual(h.Sum(), c.Digest)
	return nil
}

// nativeDigest hashes the field elements 1..n with the native hasher and
// returns both the digest and the inputs as circuit values.
func nativeDigest(n int) (*big.Int, []frontend.Variable) {
	h := Default.NewHasher()
	inputs := make([]frontend.Variable, n)
	for i := 0; i < n; i++ {
		var e fr.Element
		e.SetUint64(uint64(i + 1))
		b := e.Bytes()
		h.Write(b[:])

		v := new(big.Int)
		e.BigInt(v)
		inputs[i] = v
	}
	return new(big.Int).SetBytes(h.Sum(nil)), inputs
}

// TestNativeMatchesCircuit checks that the native and in-circuit hashers
// agree for every arity a supported shape uses.
func TestNativeMatchesCircuit(t *testing.T) {
	for _, n := range []int{2, 8} {
		t.Run(fmt.Sprintf("arity=%d", n), func(t *testing.T) {
			digest, inputs := nativeDigest(n)

			circuit := &digestCircuit{Inputs: make([]frontend.Variable, n)}
			assignment := &digestCircuit{Inputs: inputs, Digest: digest}

			if err := test.IsSolved(circuit, assignment, ecc.BN254.ScalarField()); err != nil {
				t.Fatalf("circuit digest differs from native digest: %v", err)
			}
		})
	}
}

func TestCircuitRejectsWrongDigest(t *testing.T) {
	digest, inputs := nativeDigest(8)
	wrong := new(big.Int).Add(digest, big.NewInt(1))

	circuit := &digestCircuit{Inputs: make([]frontend.Variable, 8)}
	assignment := &digestCircuit{Inputs: inputs, Digest: wrong}

	if err := test.IsSolved(circuit, assignment, ecc.BN254.ScalarField()); err == nil {
		t.Fatal("expected wrong digest to be rejected")
	}
}

func TestNativeDeterministic(t *testing.T) {
	a, _ := nativeDigest(8)
	b, _ := nativeDigest(8)
	if a.Cmp(b) != 0 {
		t.Fatalf("digest not deterministic: %s != %s", a, b)
	}

	c, _ := nativeDigest(2)
	if a.Cmp(c) == 0 {
		t.Fatal("different inputs produced the same digest")
	}

	if size := Default.NewHasher().Size(); size != fr.Bytes {
		t.Fatalf("digest size %d, want %d", size, fr.Bytes)
	}

	h := Default.NewHasher()
	if !bytes.Equal(h.Sum(nil), Default.NewHasher().Sum(nil)) {
		t.Fatal("fresh hashers disagree on the empty digest")
	}
}

func TestHasherName(t *testing.T) {
	if got := Default.HasherName(); got != "poseidon2-bn254" {
		t.Fatalf("HasherName() = %q", got)
	}
}
