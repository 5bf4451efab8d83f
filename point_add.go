package zkattest

import (
	"math/big"

	"github.com/MixinNetwork/zkattest-go/curve"
	"github.com/pkg/errors"
)

// PointAddProof shows R = P + Q for points whose affine coordinates are only
// committed, in a proof group whose order is the base-field prime of the
// curve the points live on.
//
// With P = (x1, y1), Q = (x2, y2) and R = (x3, y3) the chord rule gives
// the slope l = (y2 - y1)/(x2 - x1), x3 = l² - x1 - x2 and
// y3 = l(x1 - x3) - y1. The four multiplication proofs establish the inverse,
// the slope, its square and l(x1 - x3); the two equality proofs bind those to
// the committed x3 and y3.
type PointAddProof struct {
	C8   curve.Point
	C10  curve.Point
	C11  curve.Point
	C13  curve.Point
	Pi8  *MultProof
	Pi10 *MultProof
	Pi11 *MultProof
	Pi13 *MultProof
	PiX  *EqualityProof
	PiY  *EqualityProof
}

// ProvePointAdd proves p + q = r on ec, given commitments in params to the
// coordinates of all three points. The statement must be true and none of the
// points may be the identity. Doubling and p = -q are not expressible with the
// chord rule and are rejected as well.
func ProvePointAdd(suite *Suite, ec curve.AffineGroup, params *PedersenParams, p, q, r curve.Point, px, py, qx, qy, rx, ry *Commitment) (*PointAddProof, error) {
	n := params.Order()
	if ec.FieldPrime().Cmp(n) != 0 {
		return nil, errors.Wrapf(ErrIncompatibleScalar, "%s coordinates are not %s scalars", ec.Name(), params.Group.Name())
	}
	if !onCurve(ec, p, q, r) {
		return nil, errors.Wrapf(ErrInvalidPoint, "point addition operands on %s", ec.Name())
	}
	if !ec.Add(p, q).Equal(r) {
		return nil, errors.Wrap(ErrGeometricPrecondition, "points don't add up")
	}
	x1, y1, ok1 := ec.Affine(p)
	x2, y2, ok2 := ec.Affine(q)
	x3, _, ok3 := ec.Affine(r)
	if !ok1 || !ok2 || !ok3 {
		return nil, errors.Wrap(ErrGeometricPrecondition, "point at infinity")
	}
	if x1.Cmp(x2) == 0 {
		return nil, errors.Wrap(ErrGeometricPrecondition, "operands share an x coordinate")
	}

	i7 := modSub(x2, x1, n)
	i8 := new(big.Int).ModInverse(i7, n)
	i9 := modSub(y2, y1, n)
	i10 := modMul(i8, i9, n)
	i11 := modMul(i10, i10, n)
	i12 := modSub(x1, x3, n)
	i13 := modMul(i10, i12, n)

	rnd := suite.rand()
	c7 := qx.Sub(px)
	c9 := qy.Sub(py)
	c12 := px.Sub(rx)
	c14 := params.CommitWith(bigOne, bigZero)
	var cs [4]*Commitment
	for i, v := range []*big.Int{i8, i10, i11, i13} {
		c, err := params.Commit(rnd, v)
		if err != nil {
			return nil, err
		}
		cs[i] = c
	}
	c8, c10, c11, c13 := cs[0], cs[1], cs[2], cs[3]

	pi := &PointAddProof{C8: c8.P, C10: c10.P, C11: c11.P, C13: c13.P}
	var err error
	if pi.Pi8, err = ProveMult(suite, params, i7, i8, bigOne, c7, c8, c14); err != nil {
		return nil, err
	}
	if pi.Pi10, err = ProveMult(suite, params, i8, i9, i10, c8, c9, c10); err != nil {
		return nil, err
	}
	if pi.Pi11, err = ProveMult(suite, params, i10, i10, i11, c10, c10, c11); err != nil {
		return nil, err
	}
	if pi.PiX, err = ProveEquality(suite, params, i11, c11, px.Add(qx).Add(rx)); err != nil {
		return nil, err
	}
	if pi.Pi13, err = ProveMult(suite, params, i10, i12, i13, c10, c12, c13); err != nil {
		return nil, err
	}
	if pi.PiY, err = ProveEquality(suite, params, i13, c13, ry.Add(py)); err != nil {
		return nil, err
	}
	return pi, nil
}

// AggregatePointAdd adds every relation of pi to multi, checking the sub-proofs
// in order and stopping at the first malformed one.
func AggregatePointAdd(suite *Suite, params *PedersenParams, px, py, qx, qy, rx, ry curve.Point, pi *PointAddProof, multi *MultiMult) bool {
	if pi == nil {
		return false
	}
	g := params.Group
	if !onCurve(g, px, py, qx, qy, rx, ry, pi.C8, pi.C10, pi.C11, pi.C13) {
		log.Debugw("point addition rejected", "reason", "point not in proof group")
		return false
	}
	c7 := curve.Sub(g, qx, px)
	c9 := curve.Sub(g, qy, py)
	c12 := curve.Sub(g, px, rx)
	c14 := params.G

	steps := []struct {
		name string
		ok   func() bool
	}{
		{"pi_8", func() bool { return AggregateMult(suite, params, c7, pi.C8, c14, pi.Pi8, multi) }},
		{"pi_10", func() bool { return AggregateMult(suite, params, pi.C8, c9, pi.C10, pi.Pi10, multi) }},
		{"pi_11", func() bool { return AggregateMult(suite, params, pi.C10, pi.C10, pi.C11, pi.Pi11, multi) }},
		{"pi_x", func() bool {
			return AggregateEquality(suite, params, pi.C11, g.Add(g.Add(px, qx), rx), pi.PiX, multi)
		}},
		{"pi_13", func() bool { return AggregateMult(suite, params, pi.C10, c12, pi.C13, pi.Pi13, multi) }},
		{"pi_y", func() bool { return AggregateEquality(suite, params, pi.C13, g.Add(py, ry), pi.PiY, multi) }},
	}
	for _, s := range steps {
		if !s.ok() {
			log.Debugw("point addition rejected", "proof", s.name)
			return false
		}
	}
	return true
}

// VerifyPointAdd checks pi against the coordinate commitments of P, Q and R.
func VerifyPointAdd(suite *Suite, params *PedersenParams, px, py, qx, qy, rx, ry curve.Point, pi *PointAddProof) bool {
	multi := NewMultiMult(params.Group)
	if !AggregatePointAdd(suite, params, px, py, qx, qy, rx, ry, pi, multi) {
		return false
	}
	return multi.Evaluate().IsIdentity()
}

func (pi *PointAddProof) Equal(o *PointAddProof) bool {
	if pi == nil || o == nil {
		return pi == o
	}
	return pointsEqual(pi.C8, o.C8) &&
		pointsEqual(pi.C10, o.C10) &&
		pointsEqual(pi.C11, o.C11) &&
		pointsEqual(pi.C13, o.C13) &&
		pi.Pi8.Equal(o.Pi8) &&
		pi.Pi10.Equal(o.Pi10) &&
		pi.Pi11.Equal(o.Pi11) &&
		pi.Pi13.Equal(o.Pi13) &&
		pi.PiX.Equal(o.PiX) &&
		pi.PiY.Equal(o.PiY)
}
