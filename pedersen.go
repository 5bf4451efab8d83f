package zkattest

import (
	"io"
	"math/big"

	"github.com/MixinNetwork/zkattest-go/curve"
	"github.com/pkg/errors"
)

// PedersenParams holds the two generators of a Pedersen commitment scheme.
// The discrete log of H to the base G must be unknown to the committer.
type PedersenParams struct {
	Group curve.Group
	G     curve.Point
	H     curve.Point
}

func NewPedersenParams(group curve.Group, g, h curve.Point) (*PedersenParams, error) {
	if !group.IsOnCurve(g) || !group.IsOnCurve(h) || g.IsIdentity() || h.IsIdentity() {
		return nil, errors.Wrapf(ErrInvalidPoint, "pedersen generators on %s", group.Name())
	}
	return &PedersenParams{Group: group, G: g, H: h}, nil
}

// GeneratePedersenParams uses the group generator as G and a fresh random
// multiple of it as H.
func GeneratePedersenParams(rnd io.Reader, group curve.Group) (*PedersenParams, error) {
	r, err := randomNonZeroScalar(rnd, group.Order())
	if err != nil {
		return nil, err
	}
	return &PedersenParams{
		Group: group,
		G:     group.Generator(),
		H:     group.ScalarBaseMult(r),
	}, nil
}

func (pp *PedersenParams) Order() *big.Int {
	return pp.Group.Order()
}

func (pp *PedersenParams) Equal(o *PedersenParams) bool {
	return o != nil && pp.Group.Name() == o.Group.Name() && pp.G.Equal(o.G) && pp.H.Equal(o.H)
}

// point returns value·G + r·H.
func (pp *PedersenParams) point(value, r *big.Int) curve.Point {
	return pp.Group.Add(pp.Group.ScalarMult(pp.G, value), pp.Group.ScalarMult(pp.H, r))
}

// CommitWith commits to value with the given opening r.
func (pp *PedersenParams) CommitWith(value, r *big.Int) *Commitment {
	return &Commitment{
		Group: pp.Group,
		P:     pp.point(value, r),
		R:     modReduce(r, pp.Order()),
	}
}

// Commit commits to value with a fresh uniform opening.
func (pp *PedersenParams) Commit(rnd io.Reader, value *big.Int) (*Commitment, error) {
	r, err := RandomScalar(rnd, pp.Order())
	if err != nil {
		return nil, err
	}
	return pp.CommitWith(value, r), nil
}

// Opens reports whether c opens to value under its stored randomness.
func (pp *PedersenParams) Opens(c *Commitment, value *big.Int) bool {
	return c.P.Equal(pp.point(value, c.R))
}

// Commitment is a committed point together with its opening randomness. The
// committed value is never stored.
type Commitment struct {
	Group curve.Group
	P     curve.Point
	R     *big.Int
}

func (c *Commitment) Clone() *Commitment {
	return &Commitment{Group: c.Group, P: c.P, R: new(big.Int).Set(c.R)}
}

// Add returns a commitment to the sum of both values.
func (c *Commitment) Add(o *Commitment) *Commitment {
	return &Commitment{
		Group: c.Group,
		P:     c.Group.Add(c.P, o.P),
		R:     modAdd(c.R, o.R, c.Group.Order()),
	}
}

// Sub returns a commitment to the difference of both values.
func (c *Commitment) Sub(o *Commitment) *Commitment {
	return &Commitment{
		Group: c.Group,
		P:     curve.Sub(c.Group, c.P, o.P),
		R:     modSub(c.R, o.R, c.Group.Order()),
	}
}

// Scale returns a commitment to k times the value.
func (c *Commitment) Scale(k *big.Int) *Commitment {
	return &Commitment{
		Group: c.Group,
		P:     c.Group.ScalarMult(c.P, k),
		R:     modMul(c.R, k, c.Group.Order()),
	}
}
