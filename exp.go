package zkattest

import (
	"io"
	"math/big"

	"github.com/MixinNetwork/zkattest-go/curve"
	"github.com/pkg/errors"
)

// MaxSecurityLevel is the number of challenge bits, and so the largest number
// of cut-and-choose rounds one challenge can drive.
const MaxSecurityLevel = 8 * ChallengeBytes

// ExpProof shows knowledge of s with P = s·G - Q, where Cs commits to s in the
// curve group, the affine coordinates of P are committed in the proof group
// and Q is an optional public offset. Each round answers one challenge bit.
type ExpProof struct {
	Rounds []*ExpRound
}

// ExpRound is the first message of one round and its answer.
type ExpRound struct {
	A        curve.Point
	TX       curve.Point
	TY       curve.Point
	Response ExpResponse
}

// ExpResponse is either an *OpenedResponse (challenge bit 1) or a
// *BlindedResponse (challenge bit 0).
type ExpResponse interface {
	expResponse()
	equal(ExpResponse) bool
}

// OpenedResponse reveals the round nonce alpha and the openings of A, TX and
// TY, so the verifier recomputes T = alpha·G directly.
type OpenedResponse struct {
	Alpha *big.Int
	Beta1 *big.Int
	Beta2 *big.Int
	Beta3 *big.Int
}

// BlindedResponse reveals z = alpha - s and proves alpha·G = (z·G + Q) + P on
// committed coordinates. R1 and R2 open the coordinate commitments of z·G + Q.
type BlindedResponse struct {
	Z     *big.Int
	Z2    *big.Int
	Proof *PointAddProof
	R1    *big.Int
	R2    *big.Int
}

func (*OpenedResponse) expResponse()  {}
func (*BlindedResponse) expResponse() {}

func (r *OpenedResponse) equal(o ExpResponse) bool {
	s, ok := o.(*OpenedResponse)
	if !ok || r == nil || s == nil {
		return ok && r == s
	}
	return scalarsEqual(r.Alpha, s.Alpha) && scalarsEqual(r.Beta1, s.Beta1) &&
		scalarsEqual(r.Beta2, s.Beta2) && scalarsEqual(r.Beta3, s.Beta3)
}

func (r *BlindedResponse) equal(o ExpResponse) bool {
	s, ok := o.(*BlindedResponse)
	if !ok || r == nil || s == nil {
		return ok && r == s
	}
	return scalarsEqual(r.Z, s.Z) && scalarsEqual(r.Z2, s.Z2) && r.Proof.Equal(s.Proof) &&
		scalarsEqual(r.R1, s.R1) && scalarsEqual(r.R2, s.R2)
}

type expNonce struct {
	alpha  *big.Int
	a      *Commitment
	t      curve.Point
	tx, ty *Commitment
}

// ProveExp proves p = s·G - q, with G the first generator of params.Curve. q
// may be nil. cs commits to s in params.Curve; px and py commit to the
// coordinates of p in params.ProofCurve. The proof has params.SecurityLevel
// rounds.
func ProveExp(suite *Suite, params *SystemParameters, s *big.Int, cs *Commitment, p curve.Point, px, py *Commitment, q curve.Point) (*ExpProof, error) {
	ec, err := params.curveGroup()
	if err != nil {
		return nil, err
	}
	if err := checkSecurityLevel(params.SecurityLevel); err != nil {
		return nil, err
	}
	nist, wario := params.Curve, params.ProofCurve
	n := nist.Order()
	if q == nil {
		q = ec.Identity()
	}
	if !onCurve(ec, p, q) {
		return nil, errors.Wrapf(ErrInvalidPoint, "exponentiation statement on %s", ec.Name())
	}
	if !curve.Sub(ec, ec.ScalarMult(nist.G, s), q).Equal(p) {
		return nil, errors.Wrap(ErrGeometricPrecondition, "p is not s·G - q")
	}

	rnd := suite.rand()
	nonces := make([]*expNonce, params.SecurityLevel)
	transcript := []curve.Point{px.P, py.P}
	for i := range nonces {
		alpha, err := randomNonZeroScalar(rnd, n)
		if err != nil {
			return nil, err
		}
		a, err := nist.Commit(rnd, alpha)
		if err != nil {
			return nil, err
		}
		t := ec.ScalarMult(nist.G, alpha)
		tx, ty, err := commitCoordinates(rnd, ec, wario, t)
		if err != nil {
			return nil, err
		}
		nonces[i] = &expNonce{alpha: alpha, a: a, t: t, tx: tx, ty: ty}
		transcript = append(transcript, a.P, tx.P, ty.P)
	}

	c := suite.challenge(transcript...)
	bits := paddedBits(c, len(nonces))
	pi := &ExpProof{Rounds: make([]*ExpRound, len(nonces))}
	for i, k := range nonces {
		round := &ExpRound{A: k.a.P, TX: k.tx.P, TY: k.ty.P}
		if bits[i] {
			round.Response = &OpenedResponse{Alpha: k.alpha, Beta1: k.a.R, Beta2: k.tx.R, Beta3: k.ty.R}
		} else {
			z := modSub(k.alpha, s, n)
			t1 := ec.Add(ec.ScalarMult(nist.G, z), q)
			t1x, t1y, err := commitCoordinates(rnd, ec, wario, t1)
			if err != nil {
				return nil, err
			}
			add, err := ProvePointAdd(suite, ec, wario, t1, p, k.t, t1x, t1y, px, py, k.tx, k.ty)
			if err != nil {
				return nil, errors.Wrapf(err, "round %d", i)
			}
			round.Response = &BlindedResponse{
				Z:     z,
				Z2:    modSub(k.a.R, cs.R, n),
				Proof: add,
				R1:    t1x.R,
				R2:    t1y.R,
			}
		}
		pi.Rounds[i] = round
	}
	return pi, nil
}

func commitCoordinates(rnd io.Reader, ec curve.AffineGroup, params *PedersenParams, p curve.Point) (*Commitment, *Commitment, error) {
	x, y, ok := ec.Affine(p)
	if !ok {
		return nil, nil, errors.Wrap(ErrGeometricPrecondition, "point at infinity")
	}
	cx, err := params.Commit(rnd, x)
	if err != nil {
		return nil, nil, err
	}
	cy, err := params.Commit(rnd, y)
	if err != nil {
		return nil, nil, err
	}
	return cx, cy, nil
}

// VerifyExp checks pi against the commitment cs to the exponent and the
// coordinate commitments px and py. Every round is checked. Proofs with fewer
// rounds than params.SecurityLevel are rejected.
func VerifyExp(suite *Suite, params *SystemParameters, cs, px, py, q curve.Point, pi *ExpProof) bool {
	ec, err := params.curveGroup()
	if err != nil {
		log.Debugw("exponentiation rejected", "error", err)
		return false
	}
	if pi == nil || len(pi.Rounds) > MaxSecurityLevel {
		log.Debugw("exponentiation rejected", "error", ErrMalformedProof)
		return false
	}
	if len(pi.Rounds) < params.SecurityLevel || params.SecurityLevel < 1 {
		log.Debugw("exponentiation rejected", "error", ErrSecurityLevelUnmet, "rounds", len(pi.Rounds))
		return false
	}
	nist, wario := params.Curve, params.ProofCurve
	if q == nil {
		q = ec.Identity()
	}
	if !onCurve(ec, cs, q) || !onCurve(wario.Group, px, py) {
		return false
	}

	transcript := []curve.Point{px, py}
	for _, r := range pi.Rounds {
		if r == nil || !onCurve(ec, r.A) || !onCurve(wario.Group, r.TX, r.TY) {
			log.Debugw("exponentiation rejected", "error", ErrMalformedProof)
			return false
		}
		transcript = append(transcript, r.A, r.TX, r.TY)
	}
	bits := paddedBits(suite.challenge(transcript...), len(pi.Rounds))

	nistMulti := NewMultiMult(ec)
	warioMulti := NewMultiMult(wario.Group)
	for i, r := range pi.Rounds {
		var ok bool
		if bits[i] {
			ok = aggregateOpened(suite, ec, nist, wario, r, nistMulti, warioMulti)
		} else {
			ok = aggregateBlinded(suite, ec, nist, wario, cs, px, py, q, r, nistMulti, warioMulti)
		}
		if !ok {
			log.Debugw("exponentiation rejected", "round", i, "bit", bits[i])
			return false
		}
	}
	return nistMulti.Evaluate().IsIdentity() && warioMulti.Evaluate().IsIdentity()
}

func aggregateOpened(suite *Suite, ec curve.AffineGroup, nist, wario *PedersenParams, r *ExpRound, nistMulti, warioMulti *MultiMult) bool {
	resp, ok := r.Response.(*OpenedResponse)
	if !ok || resp == nil {
		return false
	}
	if !scalarsInRange(nist.Order(), resp.Alpha, resp.Beta1) || !scalarsInRange(wario.Order(), resp.Beta2, resp.Beta3) {
		return false
	}
	x, y, ok := ec.Affine(ec.ScalarMult(nist.G, resp.Alpha))
	if !ok || !scalarsInRange(wario.Order(), x, y) {
		return false
	}
	minusOne := modNeg(bigOne, nist.Order())
	wMinusOne := modNeg(bigOne, wario.Order())

	rel := NewRelation(ec)
	if rel.InsertM([]curve.Point{nist.G, nist.H, r.A}, []*big.Int{resp.Alpha, resp.Beta1, minusOne}) != nil ||
		rel.Drain(suite.rand(), nistMulti) != nil {
		return false
	}
	rel = NewRelation(wario.Group)
	if rel.InsertM([]curve.Point{wario.G, wario.H, r.TX}, []*big.Int{x, resp.Beta2, wMinusOne}) != nil ||
		rel.Drain(suite.rand(), warioMulti) != nil {
		return false
	}
	if rel.InsertM([]curve.Point{wario.G, wario.H, r.TY}, []*big.Int{y, resp.Beta3, wMinusOne}) != nil ||
		rel.Drain(suite.rand(), warioMulti) != nil {
		return false
	}
	return true
}

func aggregateBlinded(suite *Suite, ec curve.AffineGroup, nist, wario *PedersenParams, cs, px, py, q curve.Point, r *ExpRound, nistMulti, warioMulti *MultiMult) bool {
	resp, ok := r.Response.(*BlindedResponse)
	if !ok || resp == nil {
		return false
	}
	if !scalarsInRange(nist.Order(), resp.Z, resp.Z2) || !scalarsInRange(wario.Order(), resp.R1, resp.R2) {
		return false
	}
	x, y, ok := ec.Affine(ec.Add(ec.ScalarMult(nist.G, resp.Z), q))
	if !ok || !scalarsInRange(wario.Order(), x, y) {
		return false
	}
	t1x := wario.CommitWith(x, resp.R1).P
	t1y := wario.CommitWith(y, resp.R2).P

	rel := NewRelation(ec)
	err := rel.InsertM(
		[]curve.Point{nist.G, cs, nist.H, r.A},
		[]*big.Int{resp.Z, bigOne, resp.Z2, modNeg(bigOne, nist.Order())},
	)
	if err != nil || rel.Drain(suite.rand(), nistMulti) != nil {
		return false
	}
	return AggregatePointAdd(suite, wario, t1x, t1y, px, py, r.TX, r.TY, resp.Proof, warioMulti)
}

func (pi *ExpProof) Equal(o *ExpProof) bool {
	if pi == nil || o == nil {
		return pi == o
	}
	if len(pi.Rounds) != len(o.Rounds) {
		return false
	}
	for i, r := range pi.Rounds {
		s := o.Rounds[i]
		if r == nil || s == nil {
			if r != s {
				return false
			}
			continue
		}
		if !pointsEqual(r.A, s.A) || !pointsEqual(r.TX, s.TX) || !pointsEqual(r.TY, s.TY) {
			return false
		}
		if r.Response == nil || s.Response == nil {
			if r.Response != s.Response {
				return false
			}
			continue
		}
		if !r.Response.equal(s.Response) {
			return false
		}
	}
	return true
}
