package zkattest

import (
	"math/big"

	"github.com/MixinNetwork/zkattest-go/curve"
)

// EqualityProof shows that two commitments open to the same value:
// ZK(x, r1, r2 : C1 = xG + r1H and C2 = xG + r2H).
type EqualityProof struct {
	A1  curve.Point
	A2  curve.Point
	TX  *big.Int
	TR1 *big.Int
	TR2 *big.Int
}

// ProveEquality proves that c1 and c2 both commit to x.
func ProveEquality(suite *Suite, params *PedersenParams, x *big.Int, c1, c2 *Commitment) (*EqualityProof, error) {
	n := params.Order()
	k, err := RandomScalar(suite.rand(), n)
	if err != nil {
		return nil, err
	}
	a1, err := params.Commit(suite.rand(), k)
	if err != nil {
		return nil, err
	}
	a2, err := params.Commit(suite.rand(), k)
	if err != nil {
		return nil, err
	}

	c := modReduce(suite.challenge(c1.P, c2.P, a1.P, a2.P), n)
	return &EqualityProof{
		A1:  a1.P,
		A2:  a2.P,
		TX:  response(k, c, x, n),
		TR1: response(a1.R, c, c1.R, n),
		TR2: response(a2.R, c, c2.R, n),
	}, nil
}

// AggregateEquality adds the two relations of pi to multi. It returns false
// when the transcript is malformed; the relations themselves only hold once
// multi evaluates to the identity.
func AggregateEquality(suite *Suite, params *PedersenParams, c1, c2 curve.Point, pi *EqualityProof, multi *MultiMult) bool {
	if pi == nil {
		return false
	}
	g, n := params.Group, params.Order()
	if !onCurve(g, c1, c2, pi.A1, pi.A2) || !scalarsInRange(n, pi.TX, pi.TR1, pi.TR2) {
		return false
	}
	c := modReduce(suite.challenge(c1, c2, pi.A1, pi.A2), n)
	minusOne := modNeg(bigOne, n)

	rel := NewRelation(g)
	err := rel.InsertM(
		[]curve.Point{params.G, params.H, c1, pi.A1},
		[]*big.Int{pi.TX, pi.TR1, c, minusOne},
	)
	if err == nil {
		err = rel.Drain(suite.rand(), multi)
	}
	if err == nil {
		err = rel.InsertM(
			[]curve.Point{params.G, params.H, c2, pi.A2},
			[]*big.Int{pi.TX, pi.TR2, c, minusOne},
		)
	}
	if err == nil {
		err = rel.Drain(suite.rand(), multi)
	}
	if err != nil {
		log.Debugw("equality aggregation failed", "error", err)
		return false
	}
	return true
}

// VerifyEquality checks pi against the public commitments c1 and c2.
func VerifyEquality(suite *Suite, params *PedersenParams, c1, c2 curve.Point, pi *EqualityProof) bool {
	multi := NewMultiMult(params.Group)
	if !AggregateEquality(suite, params, c1, c2, pi, multi) {
		return false
	}
	return multi.Evaluate().IsIdentity()
}

func (pi *EqualityProof) Equal(o *EqualityProof) bool {
	if pi == nil || o == nil {
		return pi == o
	}
	return pointsEqual(pi.A1, o.A1) && pointsEqual(pi.A2, o.A2) &&
		scalarsEqual(pi.TX, o.TX) && scalarsEqual(pi.TR1, o.TR1) && scalarsEqual(pi.TR2, o.TR2)
}

func onCurve(g curve.Group, pts ...curve.Point) bool {
	for _, p := range pts {
		if p == nil || !g.IsOnCurve(p) {
			return false
		}
	}
	return true
}

func scalarsInRange(n *big.Int, ss ...*big.Int) bool {
	for _, s := range ss {
		if !inRange(s, n) {
			return false
		}
	}
	return true
}

func pointsEqual(a, b curve.Point) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

func scalarsEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Cmp(b) == 0
}
