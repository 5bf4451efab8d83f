package zkattest

import (
	"math/big"
	"testing"

	"github.com/MixinNetwork/zkattest-go/curve"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededSuite(seed string) *Suite {
	return &Suite{Hash: SHA256, Rand: NewSeededReader([]byte(seed))}
}

func testParams(t *testing.T, g curve.Group) *PedersenParams {
	params, err := GeneratePedersenParams(NewSeededReader([]byte("params "+g.Name())), g)
	require.NoError(t, err)
	return params
}

func TestCommitmentHomomorphism(t *testing.T) {
	for _, g := range []curve.Group{curve.P256(), curve.Tom256(), curve.Secp256k1(), curve.Ristretto255()} {
		t.Run(g.Name(), func(t *testing.T) {
			assert := assert.New(t)
			rnd := NewSeededReader([]byte("homomorphism"))
			params := testParams(t, g)
			n := params.Order()

			x, err := RandomScalar(rnd, n)
			require.NoError(t, err)
			y, err := RandomScalar(rnd, n)
			require.NoError(t, err)
			cx, err := params.Commit(rnd, x)
			require.NoError(t, err)
			cy, err := params.Commit(rnd, y)
			require.NoError(t, err)

			assert.True(params.Opens(cx, x))
			assert.False(params.Opens(cx, y))

			sum := cx.Add(cy)
			assert.True(params.Opens(sum, modAdd(x, y, n)))
			assert.Equal(0, sum.R.Cmp(modAdd(cx.R, cy.R, n)))

			diff := cx.Sub(cy)
			assert.True(params.Opens(diff, modSub(x, y, n)))

			k := big.NewInt(7)
			assert.True(params.Opens(cx.Scale(k), modMul(x, k, n)))

			clone := cx.Clone()
			clone.R.Add(clone.R, bigOne)
			assert.True(params.Opens(cx, x))
		})
	}
}

func TestPedersenParams(t *testing.T) {
	assert := assert.New(t)

	g := curve.P256()
	params := testParams(t, g)
	assert.True(params.Equal(testParams(t, g)))
	assert.False(params.H.Equal(params.G))

	other, err := GeneratePedersenParams(NewSeededReader([]byte("other")), g)
	require.NoError(t, err)
	assert.False(params.Equal(other))
	assert.False(params.Equal(nil))

	_, err = NewPedersenParams(g, g.Generator(), g.Identity())
	assert.True(errors.Is(err, ErrInvalidPoint))
	_, err = NewPedersenParams(g, g.Generator(), curve.Tom256().Generator())
	assert.True(errors.Is(err, ErrInvalidPoint))

	pp, err := NewPedersenParams(g, params.H, params.G)
	require.NoError(t, err)
	c := pp.CommitWith(big.NewInt(5), big.NewInt(0))
	assert.True(c.P.Equal(g.ScalarMult(params.H, big.NewInt(5))))
}
