package zkattest

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

func modAdd(a, b, n *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, n)
}

func modSub(a, b, n *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, n)
}

func modMul(a, b, n *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, n)
}

func modNeg(a, n *big.Int) *big.Int {
	r := new(big.Int).Neg(a)
	return r.Mod(r, n)
}

func modReduce(a, n *big.Int) *big.Int {
	return new(big.Int).Mod(a, n)
}

// response computes k - c·x mod n, the answer of every Sigma protocol here.
func response(k, c, x, n *big.Int) *big.Int {
	return modSub(k, modMul(c, x, n), n)
}

func inRange(s, n *big.Int) bool {
	return s != nil && s.Sign() >= 0 && s.Cmp(n) < 0
}

// RandomScalar draws a uniform scalar from [0, n).
func RandomScalar(rnd io.Reader, n *big.Int) (*big.Int, error) {
	k, err := rand.Int(rnd, n)
	if err != nil {
		return nil, errors.Wrap(err, "random scalar")
	}
	return k, nil
}

func randomNonZeroScalar(rnd io.Reader, n *big.Int) (*big.Int, error) {
	for {
		k, err := RandomScalar(rnd, n)
		if err != nil {
			return nil, err
		}
		if k.Sign() != 0 {
			return k, nil
		}
	}
}

// NewSeededReader returns a deterministic byte stream expanded from seed with
// SHAKE-256. It is meant for reproducible tests, never for real proofs.
func NewSeededReader(seed []byte) io.Reader {
	h := sha3.NewShake256()
	h.Write([]byte("zkattest seeded reader"))
	h.Write(seed)
	return h
}

// paddedBits expands the low n bits of v, least significant first.
func paddedBits(v *big.Int, n int) []bool {
	bits := make([]bool, n)
	for i := range bits {
		bits[i] = v.Bit(i) == 1
	}
	return bits
}
