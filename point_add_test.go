package zkattest

import (
	"math/big"
	"testing"

	"github.com/MixinNetwork/zkattest-go/curve"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type coordCommitments struct {
	x, y *Commitment
}

func commitPoint(t *testing.T, suite *Suite, ec curve.AffineGroup, params *PedersenParams, p curve.Point) coordCommitments {
	cx, cy, err := commitCoordinates(suite.Rand, ec, params, p)
	require.NoError(t, err)
	return coordCommitments{cx, cy}
}

func TestPointAddProof(t *testing.T) {
	assert := assert.New(t)

	ec := curve.P256()
	suite := seededSuite("point add")
	params := testParams(t, curve.Tom256())

	a, err := RandomScalar(suite.Rand, ec.Order())
	require.NoError(t, err)
	b, err := RandomScalar(suite.Rand, ec.Order())
	require.NoError(t, err)
	P, Q := ec.ScalarBaseMult(a), ec.ScalarBaseMult(b)
	R := ec.Add(P, Q)

	cp := commitPoint(t, suite, ec, params, P)
	cq := commitPoint(t, suite, ec, params, Q)
	cr := commitPoint(t, suite, ec, params, R)

	pi, err := ProvePointAdd(suite, ec, params, P, Q, R, cp.x, cp.y, cq.x, cq.y, cr.x, cr.y)
	require.NoError(t, err)
	assert.True(VerifyPointAdd(suite, params, cp.x.P, cp.y.P, cq.x.P, cq.y.P, cr.x.P, cr.y.P, pi))
	assert.True(pi.Equal(pi))

	// the proof is bound to the coordinate commitments it was made for
	wrong := commitPoint(t, suite, ec, params, ec.Add(R, ec.Generator()))
	assert.False(VerifyPointAdd(suite, params, cp.x.P, cp.y.P, cq.x.P, cq.y.P, wrong.x.P, wrong.y.P, pi))
	assert.False(VerifyPointAdd(suite, params, cq.x.P, cq.y.P, cp.x.P, cp.y.P, cr.x.P, cr.y.P, pi))

	tampered := *pi
	tampered.PiY = pi.PiX
	assert.False(VerifyPointAdd(suite, params, cp.x.P, cp.y.P, cq.x.P, cq.y.P, cr.x.P, cr.y.P, &tampered))
	tampered = *pi
	tampered.Pi10 = nil
	assert.False(VerifyPointAdd(suite, params, cp.x.P, cp.y.P, cq.x.P, cq.y.P, cr.x.P, cr.y.P, &tampered))
	tampered = *pi
	tampered.C11 = ec.Generator()
	assert.False(VerifyPointAdd(suite, params, cp.x.P, cp.y.P, cq.x.P, cq.y.P, cr.x.P, cr.y.P, &tampered))
}

func TestPointAddNonAdditive(t *testing.T) {
	assert := assert.New(t)

	ec := curve.P256()
	suite := seededSuite("point add false")
	params := testParams(t, curve.Tom256())

	P := ec.ScalarBaseMult(big.NewInt(11))
	Q := ec.ScalarBaseMult(big.NewInt(13))
	R := ec.ScalarBaseMult(big.NewInt(25))
	cp := commitPoint(t, suite, ec, params, P)
	cq := commitPoint(t, suite, ec, params, Q)
	cr := commitPoint(t, suite, ec, params, R)

	_, err := ProvePointAdd(suite, ec, params, P, Q, R, cp.x, cp.y, cq.x, cq.y, cr.x, cr.y)
	assert.True(errors.Is(err, ErrGeometricPrecondition))

	// a proof for the true sum does not verify against a non-additive R
	S := ec.Add(P, Q)
	cs := commitPoint(t, suite, ec, params, S)
	pi, err := ProvePointAdd(suite, ec, params, P, Q, S, cp.x, cp.y, cq.x, cq.y, cs.x, cs.y)
	require.NoError(t, err)
	assert.True(VerifyPointAdd(suite, params, cp.x.P, cp.y.P, cq.x.P, cq.y.P, cs.x.P, cs.y.P, pi))
	assert.False(VerifyPointAdd(suite, params, cp.x.P, cp.y.P, cq.x.P, cq.y.P, cr.x.P, cr.y.P, pi))
}

func TestPointAddPreconditions(t *testing.T) {
	assert := assert.New(t)

	ec := curve.P256()
	suite := seededSuite("point add preconditions")
	params := testParams(t, curve.Tom256())

	P := ec.ScalarBaseMult(big.NewInt(3))
	cp := commitPoint(t, suite, ec, params, P)
	id := ec.Identity()

	_, err := ProvePointAdd(suite, ec, params, P, id, P, cp.x, cp.y, cp.x, cp.y, cp.x, cp.y)
	assert.True(errors.Is(err, ErrGeometricPrecondition))

	_, err = ProvePointAdd(suite, ec, params, P, ec.Neg(P), id, cp.x, cp.y, cp.x, cp.y, cp.x, cp.y)
	assert.True(errors.Is(err, ErrGeometricPrecondition))

	_, err = ProvePointAdd(suite, ec, params, P, P, ec.Add(P, P), cp.x, cp.y, cp.x, cp.y, cp.x, cp.y)
	assert.True(errors.Is(err, ErrGeometricPrecondition))

	_, err = ProvePointAdd(suite, ec, params, curve.Tom256().Generator(), P, P, cp.x, cp.y, cp.x, cp.y, cp.x, cp.y)
	assert.True(errors.Is(err, ErrInvalidPoint))

	_, err = ProvePointAdd(suite, curve.Secp256k1(), params, P, P, P, cp.x, cp.y, cp.x, cp.y, cp.x, cp.y)
	assert.True(errors.Is(err, ErrIncompatibleScalar))

	assert.False(VerifyPointAdd(suite, params, cp.x.P, cp.y.P, cp.x.P, cp.y.P, cp.x.P, cp.y.P, nil))
	assert.False(VerifyPointAdd(suite, params, P, cp.y.P, cp.x.P, cp.y.P, cp.x.P, cp.y.P, &PointAddProof{}))
}
