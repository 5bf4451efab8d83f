package curve

import (
	"math/big"

	"github.com/bwesterb/go-ristretto"
	"github.com/pkg/errors"
)

// l = 2^252 + 27742317777372353535851937790883648493
var ristrettoOrder = mustHex("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed")

type ristrettoGroup struct{}

type ristrettoPoint struct {
	p ristretto.Point
}

func (*ristrettoGroup) Name() string { return NameRistretto255 }

func (*ristrettoGroup) Order() *big.Int { return new(big.Int).Set(ristrettoOrder) }

func (*ristrettoGroup) Generator() Point {
	var r ristrettoPoint
	r.p.SetBase()
	return &r
}

func (*ristrettoGroup) Identity() Point {
	var r ristrettoPoint
	r.p.SetZero()
	return &r
}

func (g *ristrettoGroup) point(p Point) *ristrettoPoint {
	rp, ok := p.(*ristrettoPoint)
	if !ok || rp == nil {
		panic(errors.Wrap(ErrNotOnCurve, "ristretto255: foreign point"))
	}
	return rp
}

func (g *ristrettoGroup) Add(p, q Point) Point {
	var r ristrettoPoint
	r.p.Add(&g.point(p).p, &g.point(q).p)
	return &r
}

func (g *ristrettoGroup) Neg(p Point) Point {
	var r ristrettoPoint
	r.p.Neg(&g.point(p).p)
	return &r
}

// scalar converts k to a ristretto scalar. The reduced value is below 2^253,
// so SetBytes never drops bits.
func (*ristrettoGroup) scalar(k *big.Int) *ristretto.Scalar {
	kk := new(big.Int).Mod(k, ristrettoOrder)
	var be, le [32]byte
	kk.FillBytes(be[:])
	for i := range be {
		le[i] = be[31-i]
	}
	var s ristretto.Scalar
	return s.SetBytes(&le)
}

func (g *ristrettoGroup) ScalarMult(p Point, k *big.Int) Point {
	var r ristrettoPoint
	r.p.ScalarMult(&g.point(p).p, g.scalar(k))
	return &r
}

func (g *ristrettoGroup) ScalarBaseMult(k *big.Int) Point {
	var r ristrettoPoint
	r.p.ScalarMultBase(g.scalar(k))
	return &r
}

func (*ristrettoGroup) IsOnCurve(p Point) bool {
	rp, ok := p.(*ristrettoPoint)
	return ok && rp != nil
}

func (*ristrettoGroup) Decode(b []byte) (Point, error) {
	if len(b) != 32 {
		return nil, errors.Wrapf(ErrInvalidEncoding, "ristretto255: %d bytes", len(b))
	}
	var buf [32]byte
	copy(buf[:], b)
	var r ristrettoPoint
	if !r.p.SetBytes(&buf) {
		return nil, errors.Wrap(ErrInvalidEncoding, "ristretto255")
	}
	return &r, nil
}

func (p *ristrettoPoint) Bytes() []byte { return p.p.Bytes() }

func (p *ristrettoPoint) Equal(other Point) bool {
	q, ok := other.(*ristrettoPoint)
	return ok && q != nil && p.p.Equals(&q.p)
}

func (p *ristrettoPoint) IsIdentity() bool {
	var zero ristretto.Point
	zero.SetZero()
	return p.p.Equals(&zero)
}
