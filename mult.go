package zkattest

import (
	"math/big"

	"github.com/MixinNetwork/zkattest-go/curve"
)

// MultProof shows that three commitments hold values with z = x·y:
// ZK(x, y, z, rx, ry, rz : Cx, Cy, Cz open to x, y, z and z = xy).
//
// C4 = x·Cy commits to z under randomness x·ry, which lets the last relation
// tie the product to Cy without revealing x.
type MultProof struct {
	C4  curve.Point
	AX  curve.Point
	AY  curve.Point
	AZ  curve.Point
	A41 curve.Point
	A42 curve.Point
	TX  *big.Int
	TY  *big.Int
	TZ  *big.Int
	TRX *big.Int
	TRY *big.Int
	TRZ *big.Int
	TR4 *big.Int
}

// ProveMult proves that cz commits to the product of the values in cx and cy.
func ProveMult(suite *Suite, params *PedersenParams, x, y, z *big.Int, cx, cy, cz *Commitment) (*MultProof, error) {
	n := params.Order()
	rnd := suite.rand()

	c4 := cy.Scale(x)

	var ks [3]*big.Int
	for i := range ks {
		k, err := RandomScalar(rnd, n)
		if err != nil {
			return nil, err
		}
		ks[i] = k
	}
	kx, ky, kz := ks[0], ks[1], ks[2]

	var as [4]*Commitment
	for i, k := range []*big.Int{kx, ky, kz, kz} {
		a, err := params.Commit(rnd, k)
		if err != nil {
			return nil, err
		}
		as[i] = a
	}
	ax, ay, az, a41 := as[0], as[1], as[2], as[3]
	a42 := params.Group.ScalarMult(cy.P, kx)

	c := modReduce(suite.challenge(cx.P, cy.P, cz.P, c4.P, ax.P, ay.P, az.P, a41.P, a42), n)
	return &MultProof{
		C4:  c4.P,
		AX:  ax.P,
		AY:  ay.P,
		AZ:  az.P,
		A41: a41.P,
		A42: a42,
		TX:  response(kx, c, x, n),
		TY:  response(ky, c, y, n),
		TZ:  response(kz, c, z, n),
		TRX: response(ax.R, c, cx.R, n),
		TRY: response(ay.R, c, cy.R, n),
		TRZ: response(az.R, c, cz.R, n),
		TR4: response(a41.R, c, c4.R, n),
	}, nil
}

// AggregateMult adds the five relations of pi to multi.
func AggregateMult(suite *Suite, params *PedersenParams, cx, cy, cz curve.Point, pi *MultProof, multi *MultiMult) bool {
	if pi == nil {
		return false
	}
	g, n := params.Group, params.Order()
	if !onCurve(g, cx, cy, cz, pi.C4, pi.AX, pi.AY, pi.AZ, pi.A41, pi.A42) {
		return false
	}
	if !scalarsInRange(n, pi.TX, pi.TY, pi.TZ, pi.TRX, pi.TRY, pi.TRZ, pi.TR4) {
		return false
	}
	c := modReduce(suite.challenge(cx, cy, cz, pi.C4, pi.AX, pi.AY, pi.AZ, pi.A41, pi.A42), n)
	minusOne := modNeg(bigOne, n)

	type row struct {
		pts []curve.Point
		ss  []*big.Int
	}
	rows := []row{
		{[]curve.Point{params.G, params.H, cx, pi.AX}, []*big.Int{pi.TX, pi.TRX, c, minusOne}},
		{[]curve.Point{params.G, params.H, cy, pi.AY}, []*big.Int{pi.TY, pi.TRY, c, minusOne}},
		{[]curve.Point{params.G, params.H, cz, pi.AZ}, []*big.Int{pi.TZ, pi.TRZ, c, minusOne}},
		{[]curve.Point{params.G, params.H, pi.C4, pi.A41}, []*big.Int{pi.TZ, pi.TR4, c, minusOne}},
		{[]curve.Point{cy, pi.C4, pi.A42}, []*big.Int{pi.TX, c, minusOne}},
	}
	rel := NewRelation(g)
	for _, r := range rows {
		if err := rel.InsertM(r.pts, r.ss); err != nil {
			log.Debugw("mult aggregation failed", "error", err)
			return false
		}
		if err := rel.Drain(suite.rand(), multi); err != nil {
			log.Debugw("mult aggregation failed", "error", err)
			return false
		}
	}
	return true
}

// VerifyMult checks pi against the public commitments cx, cy and cz.
func VerifyMult(suite *Suite, params *PedersenParams, cx, cy, cz curve.Point, pi *MultProof) bool {
	multi := NewMultiMult(params.Group)
	if !AggregateMult(suite, params, cx, cy, cz, pi, multi) {
		return false
	}
	return multi.Evaluate().IsIdentity()
}

func (pi *MultProof) Equal(o *MultProof) bool {
	if pi == nil || o == nil {
		return pi == o
	}
	return pointsEqual(pi.C4, o.C4) &&
		pointsEqual(pi.AX, o.AX) &&
		pointsEqual(pi.AY, o.AY) &&
		pointsEqual(pi.AZ, o.AZ) &&
		pointsEqual(pi.A41, o.A41) &&
		pointsEqual(pi.A42, o.A42) &&
		scalarsEqual(pi.TX, o.TX) &&
		scalarsEqual(pi.TY, o.TY) &&
		scalarsEqual(pi.TZ, o.TZ) &&
		scalarsEqual(pi.TRX, o.TRX) &&
		scalarsEqual(pi.TRY, o.TRY) &&
		scalarsEqual(pi.TRZ, o.TRZ) &&
		scalarsEqual(pi.TR4, o.TR4)
}
