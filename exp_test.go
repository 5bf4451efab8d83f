package zkattest

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/MixinNetwork/zkattest-go/curve"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expStatement struct {
	params *SystemParameters
	cs     *Commitment
	px, py *Commitment
	q      curve.Point
	pi     *ExpProof
}

func proveExpStatement(t *testing.T, suite *Suite, level int, withOffset bool) *expStatement {
	params, err := NewSystemParameters(suite.Rand, level)
	require.NoError(t, err)
	ec := params.Curve.Group.(curve.AffineGroup)

	s, err := randomNonZeroScalar(suite.Rand, ec.Order())
	require.NoError(t, err)
	var q curve.Point
	P := ec.ScalarMult(params.Curve.G, s)
	if withOffset {
		k, err := randomNonZeroScalar(suite.Rand, ec.Order())
		require.NoError(t, err)
		q = ec.ScalarBaseMult(k)
		P = curve.Sub(ec, P, q)
	}
	cs, err := params.Curve.Commit(suite.Rand, s)
	require.NoError(t, err)
	px, py, err := commitCoordinates(suite.Rand, ec, params.ProofCurve, P)
	require.NoError(t, err)

	pi, err := ProveExp(suite, params, s, cs, P, px, py, q)
	require.NoError(t, err)
	return &expStatement{params: params, cs: cs, px: px, py: py, q: q, pi: pi}
}

func (st *expStatement) verify(suite *Suite, pi *ExpProof) bool {
	return VerifyExp(suite, st.params, st.cs.P, st.px.P, st.py.P, st.q, pi)
}

func TestExpProof(t *testing.T) {
	assert := assert.New(t)

	suite := seededSuite("exp")
	st := proveExpStatement(t, suite, 8, false)
	assert.Len(st.pi.Rounds, 8)
	assert.True(st.verify(suite, st.pi))
	assert.True(st.pi.Equal(st.pi))

	for _, r := range st.pi.Rounds {
		switch resp := r.Response.(type) {
		case *OpenedResponse:
			assert.NotNil(resp.Alpha)
		case *BlindedResponse:
			assert.NotNil(resp.Proof)
		default:
			t.Fatalf("unexpected response %T", resp)
		}
	}

	other, err := st.params.Curve.Commit(suite.Rand, bigOne)
	require.NoError(t, err)
	assert.False(VerifyExp(suite, st.params, other.P, st.px.P, st.py.P, nil, st.pi))
	assert.False(VerifyExp(suite, st.params, st.cs.P, st.py.P, st.px.P, nil, st.pi))
}

func TestExpProofWithOffset(t *testing.T) {
	assert := assert.New(t)

	suite := seededSuite("exp offset")
	st := proveExpStatement(t, suite, 6, true)
	assert.True(st.verify(suite, st.pi))

	ec := st.params.Curve.Group
	assert.False(VerifyExp(suite, st.params, st.cs.P, st.px.P, st.py.P, nil, st.pi))
	assert.False(VerifyExp(suite, st.params, st.cs.P, st.px.P, st.py.P, ec.Add(st.q, ec.Generator()), st.pi))
}

// mixedExpStatement returns a proof that has rounds of both kinds.
func mixedExpStatement(t *testing.T) (*Suite, *expStatement, int, int) {
	for seed := 0; seed < 16; seed++ {
		suite := seededSuite(fmt.Sprintf("exp mixed %d", seed))
		st := proveExpStatement(t, suite, 4, false)
		opened, blinded := -1, -1
		for i, r := range st.pi.Rounds {
			if _, ok := r.Response.(*OpenedResponse); ok {
				opened = i
			} else {
				blinded = i
			}
		}
		if opened >= 0 && blinded >= 0 {
			return suite, st, opened, blinded
		}
	}
	t.Fatal("no proof with both round kinds")
	return nil, nil, 0, 0
}

func TestExpProofTampered(t *testing.T) {
	assert := assert.New(t)

	suite, st, opened, blinded := mixedExpStatement(t)
	require.True(t, st.verify(suite, st.pi))

	clone := func() *ExpProof {
		rounds := make([]*ExpRound, len(st.pi.Rounds))
		for i, r := range st.pi.Rounds {
			c := *r
			rounds[i] = &c
		}
		return &ExpProof{Rounds: rounds}
	}

	// answers swapped between rounds of opposite bits
	pi := clone()
	pi.Rounds[opened].Response, pi.Rounds[blinded].Response = pi.Rounds[blinded].Response, pi.Rounds[opened].Response
	assert.False(st.verify(suite, pi))
	assert.False(pi.Equal(st.pi))

	pi = clone()
	pi.Rounds[blinded].Response = nil
	assert.False(st.verify(suite, pi))

	pi = clone()
	pi.Rounds[opened].Response = (*OpenedResponse)(nil)
	assert.False(st.verify(suite, pi))

	pi = clone()
	resp := *pi.Rounds[opened].Response.(*OpenedResponse)
	resp.Beta2 = modAdd(resp.Beta2, bigOne, st.params.ProofCurve.Order())
	pi.Rounds[opened].Response = &resp
	assert.False(st.verify(suite, pi))

	pi = clone()
	blind := *pi.Rounds[blinded].Response.(*BlindedResponse)
	blind.Z2 = modAdd(blind.Z2, bigOne, st.params.Curve.Order())
	pi.Rounds[blinded].Response = &blind
	assert.False(st.verify(suite, pi))

	pi = clone()
	pi.Rounds[opened].A = st.params.Curve.Group.Generator()
	assert.False(st.verify(suite, pi))

	pi = clone()
	pi.Rounds[blinded] = nil
	assert.False(st.verify(suite, pi))
}

func TestExpProofSecurityLevel(t *testing.T) {
	assert := assert.New(t)

	suite := seededSuite("exp level")
	st := proveExpStatement(t, suite, 3, false)
	assert.True(st.verify(suite, st.pi))

	short := &ExpProof{Rounds: st.pi.Rounds[:2]}
	assert.False(st.verify(suite, short))
	assert.False(st.verify(suite, nil))

	long := &ExpProof{Rounds: make([]*ExpRound, MaxSecurityLevel+1)}
	for i := range long.Rounds {
		long.Rounds[i] = st.pi.Rounds[i%len(st.pi.Rounds)]
	}
	assert.False(st.verify(suite, long))

	strict := *st.params
	strict.SecurityLevel = 4
	assert.False(VerifyExp(suite, &strict, st.cs.P, st.px.P, st.py.P, nil, st.pi))

	strict.SecurityLevel = MaxSecurityLevel + 1
	ec := strict.Curve.Group
	_, err := ProveExp(suite, &strict, bigOne, st.cs, ec.Generator(), st.px, st.py, nil)
	assert.True(errors.Is(err, ErrSecurityLevelUnmet))

	_, err = NewSystemParameters(suite.Rand, 0)
	assert.True(errors.Is(err, ErrSecurityLevelUnmet))
}

func TestExpProofFalseStatement(t *testing.T) {
	suite := seededSuite("exp false")
	params, err := NewSystemParameters(suite.Rand, 2)
	require.NoError(t, err)
	ec := params.Curve.Group.(curve.AffineGroup)

	s := bigOne
	cs, err := params.Curve.Commit(suite.Rand, s)
	require.NoError(t, err)
	P := ec.ScalarBaseMult(big.NewInt(2))
	px, py, err := commitCoordinates(suite.Rand, ec, params.ProofCurve, P)
	require.NoError(t, err)
	_, err = ProveExp(suite, params, s, cs, P, px, py, nil)
	assert.True(t, errors.Is(err, ErrGeometricPrecondition))
}

func TestExpProofFullSecurity(t *testing.T) {
	if testing.Short() {
		t.Skip("full security level is slow")
	}
	suite := seededSuite("exp full")
	st := proveExpStatement(t, suite, MaxSecurityLevel, true)
	assert.True(t, st.verify(suite, st.pi))
}
