package zkattest

import (
	"math/big"

	"github.com/MixinNetwork/zkattest-go/curve"
	"github.com/pkg/errors"
)

// SignatureProof shows knowledge of an ECDSA signature on a known message
// hash under a public key that is only committed, coordinate by coordinate,
// in the proof curve.
//
// With R the signature point, s1 = s/r and Q = (z/r)·G the key satisfies
// pub = s1·R - Q, which the exponentiation proof establishes with R as base.
type SignatureProof struct {
	R     curve.Point
	ComS1 curve.Point
	KeyX  curve.Point
	KeyY  curve.Point
	Exp   *ExpProof
}

// KeyCommitment holds the openings of the public key coordinates committed by
// ProveSignature, for linking the key into further proofs.
type KeyCommitment struct {
	X *Commitment
	Y *Commitment
}

// ProveSignature proves that (r, s) is a valid signature of msgHash under pub.
func ProveSignature(suite *Suite, params *SystemParameters, msgHash []byte, r, s *big.Int, pub curve.Point) (*SignatureProof, *KeyCommitment, error) {
	ec, err := params.curveGroup()
	if err != nil {
		return nil, nil, err
	}
	n := ec.Order()
	if r == nil || s == nil || r.Sign() <= 0 || s.Sign() <= 0 || r.Cmp(n) >= 0 || s.Cmp(n) >= 0 {
		return nil, nil, errors.Wrap(ErrIncompatibleScalar, "signature out of range")
	}
	if !onCurve(ec, pub) || pub.IsIdentity() {
		return nil, nil, errors.Wrapf(ErrInvalidPoint, "public key on %s", ec.Name())
	}

	z := truncateToN(msgHash, n)
	sInv := new(big.Int).ModInverse(s, n)
	R := ec.Add(ec.ScalarBaseMult(modMul(z, sInv, n)), ec.ScalarMult(pub, modMul(r, sInv, n)))
	rx, _, ok := ec.Affine(R)
	if !ok || modReduce(rx, n).Cmp(r) != 0 {
		return nil, nil, errors.Wrap(ErrGeometricPrecondition, "signature does not verify")
	}

	rInv := new(big.Int).ModInverse(r, n)
	s1 := modMul(s, rInv, n)
	q := ec.ScalarBaseMult(modMul(z, rInv, n))

	sigParams, err := params.withGenerator(R)
	if err != nil {
		return nil, nil, err
	}
	rnd := suite.rand()
	cs1, err := sigParams.Curve.Commit(rnd, s1)
	if err != nil {
		return nil, nil, err
	}
	keyX, keyY, err := commitCoordinates(rnd, ec, params.ProofCurve, pub)
	if err != nil {
		return nil, nil, err
	}
	exp, err := ProveExp(suite, sigParams, s1, cs1, pub, keyX, keyY, q)
	if err != nil {
		return nil, nil, err
	}
	return &SignatureProof{
		R:     R,
		ComS1: cs1.P,
		KeyX:  keyX.P,
		KeyY:  keyY.P,
		Exp:   exp,
	}, &KeyCommitment{X: keyX, Y: keyY}, nil
}

// VerifySignature checks pi for msgHash. The public key stays hidden behind
// pi.KeyX and pi.KeyY.
func VerifySignature(suite *Suite, params *SystemParameters, msgHash []byte, pi *SignatureProof) bool {
	ec, err := params.curveGroup()
	if err != nil {
		log.Debugw("signature rejected", "error", err)
		return false
	}
	if pi == nil || !onCurve(ec, pi.R) {
		return false
	}
	rx, _, ok := ec.Affine(pi.R)
	if !ok {
		return false
	}
	n := ec.Order()
	r := modReduce(rx, n)
	if r.Sign() == 0 {
		return false
	}
	z := truncateToN(msgHash, n)
	q := ec.ScalarBaseMult(modMul(z, new(big.Int).ModInverse(r, n), n))

	sigParams, err := params.withGenerator(pi.R)
	if err != nil {
		return false
	}
	if !VerifyExp(suite, sigParams, pi.ComS1, pi.KeyX, pi.KeyY, q, pi.Exp) {
		log.Debugw("signature rejected", "proof", "exp")
		return false
	}
	return true
}

func (pi *SignatureProof) Equal(o *SignatureProof) bool {
	if pi == nil || o == nil {
		return pi == o
	}
	return pointsEqual(pi.R, o.R) &&
		pointsEqual(pi.ComS1, o.ComS1) &&
		pointsEqual(pi.KeyX, o.KeyX) &&
		pointsEqual(pi.KeyY, o.KeyY) &&
		pi.Exp.Equal(o.Exp)
}

// truncateToN reads hash as a big-endian integer and keeps its leftmost
// n.BitLen() bits, as ECDSA does.
func truncateToN(hash []byte, n *big.Int) *big.Int {
	orderBits := n.BitLen()
	orderBytes := (orderBits + 7) / 8
	if len(hash) > orderBytes {
		hash = hash[:orderBytes]
	}
	v := new(big.Int).SetBytes(hash)
	if excess := len(hash)*8 - orderBits; excess > 0 {
		v.Rsh(v, uint(excess))
	}
	return v
}
