package zkattest

import (
	"math/big"
	"testing"

	"github.com/MixinNetwork/zkattest-go/curve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualityProof(t *testing.T) {
	for _, g := range []curve.Group{curve.P256(), curve.Tom256(), curve.Ristretto255()} {
		t.Run(g.Name(), func(t *testing.T) {
			assert := assert.New(t)
			suite := seededSuite("equality " + g.Name())
			params := testParams(t, g)

			x := big.NewInt(1234567)
			c1, err := params.Commit(suite.Rand, x)
			require.NoError(t, err)
			c2, err := params.Commit(suite.Rand, x)
			require.NoError(t, err)

			pi, err := ProveEquality(suite, params, x, c1, c2)
			require.NoError(t, err)
			assert.True(VerifyEquality(suite, params, c1.P, c2.P, pi))
			assert.True(pi.Equal(pi))
			assert.False(VerifyEquality(suite, params, c2.P, c1.P, pi))

			other, err := params.Commit(suite.Rand, big.NewInt(7654321))
			require.NoError(t, err)
			bad, err := ProveEquality(suite, params, x, c1, other)
			require.NoError(t, err)
			assert.False(VerifyEquality(suite, params, c1.P, other.P, bad))
			assert.False(pi.Equal(bad))
		})
	}
}

func TestEqualityProofMalformed(t *testing.T) {
	assert := assert.New(t)

	g := curve.P256()
	suite := seededSuite("equality malformed")
	params := testParams(t, g)
	x := big.NewInt(42)
	c1, err := params.Commit(suite.Rand, x)
	require.NoError(t, err)
	c2, err := params.Commit(suite.Rand, x)
	require.NoError(t, err)
	pi, err := ProveEquality(suite, params, x, c1, c2)
	require.NoError(t, err)

	assert.False(VerifyEquality(suite, params, c1.P, c2.P, nil))

	tampered := *pi
	tampered.TX = modAdd(pi.TX, bigOne, g.Order())
	assert.False(VerifyEquality(suite, params, c1.P, c2.P, &tampered))

	tampered = *pi
	tampered.TR1 = g.Order()
	assert.False(VerifyEquality(suite, params, c1.P, c2.P, &tampered))

	tampered = *pi
	tampered.A1 = curve.Tom256().Generator()
	assert.False(VerifyEquality(suite, params, c1.P, c2.P, &tampered))

	tampered = *pi
	tampered.A2 = nil
	assert.False(VerifyEquality(suite, params, c1.P, c2.P, &tampered))
	assert.False(VerifyEquality(suite, params, nil, c2.P, pi))
}
