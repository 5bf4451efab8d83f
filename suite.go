package zkattest

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/MixinNetwork/zkattest-go/curve"
)

// Suite carries the capabilities every prove and verify call needs: the
// challenge digest and a source of randomness. Prover and verifier must agree
// on Hash. Rand is used by provers for nonces and openings, and by verifiers
// for the blinding factors of batched relations.
type Suite struct {
	Hash HashFunc
	Rand io.Reader
}

// DefaultSuite uses SHA-256 and crypto/rand.
func DefaultSuite() *Suite {
	return &Suite{Hash: SHA256, Rand: rand.Reader}
}

// NewSuite builds a suite from a registered hash name.
func NewSuite(hashName string, rnd io.Reader) (*Suite, error) {
	h, err := LookupHash(hashName)
	if err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = rand.Reader
	}
	return &Suite{Hash: h, Rand: rnd}, nil
}

func (s *Suite) hash() HashFunc {
	if s == nil || s.Hash == nil {
		return SHA256
	}
	return s.Hash
}

func (s *Suite) rand() io.Reader {
	if s == nil || s.Rand == nil {
		return rand.Reader
	}
	return s.Rand
}

func (s *Suite) challenge(points ...curve.Point) *big.Int {
	return HashPoints(s.hash(), points...)
}
