package curve

import (
	"crypto/elliptic"
	"math/big"

	"github.com/pkg/errors"
)

type decompressFunc func(c elliptic.Curve, b []byte) (x, y *big.Int, err error)

// weierstrass adapts an elliptic.Curve to AffineGroup. The arithmetic is
// variable time.
type weierstrass struct {
	name       string
	curve      elliptic.Curve
	params     *elliptic.CurveParams
	byteLen    int
	decompress decompressFunc
	gen        *ecPoint
}

// ecPoint is an affine point. x and y are nil for the identity.
type ecPoint struct {
	g    *weierstrass
	x, y *big.Int
}

func newWeierstrass(name string, c elliptic.Curve, d decompressFunc) *weierstrass {
	params := c.Params()
	w := &weierstrass{
		name:       name,
		curve:      c,
		params:     params,
		byteLen:    (params.P.BitLen() + 7) / 8,
		decompress: d,
	}
	w.gen = &ecPoint{g: w, x: new(big.Int).Set(params.Gx), y: new(big.Int).Set(params.Gy)}
	return w
}

func (w *weierstrass) Name() string { return w.name }

func (w *weierstrass) Order() *big.Int { return new(big.Int).Set(w.params.N) }

func (w *weierstrass) FieldPrime() *big.Int { return new(big.Int).Set(w.params.P) }

func (w *weierstrass) Generator() Point { return w.gen }

func (w *weierstrass) Identity() Point { return &ecPoint{g: w} }

func (w *weierstrass) point(p Point) *ecPoint {
	ep, ok := p.(*ecPoint)
	if !ok || ep.g != w {
		panic(errors.Wrapf(ErrNotOnCurve, "%s: foreign point", w.name))
	}
	return ep
}

func (w *weierstrass) fromAffine(x, y *big.Int) *ecPoint {
	if x.Sign() == 0 && y.Sign() == 0 {
		return &ecPoint{g: w}
	}
	return &ecPoint{g: w, x: x, y: y}
}

func (w *weierstrass) Add(p, q Point) Point {
	a, b := w.point(p), w.point(q)
	if a.IsIdentity() {
		return b
	}
	if b.IsIdentity() {
		return a
	}
	return w.fromAffine(w.curve.Add(a.x, a.y, b.x, b.y))
}

func (w *weierstrass) Neg(p Point) Point {
	a := w.point(p)
	if a.IsIdentity() {
		return a
	}
	y := new(big.Int).Sub(w.params.P, a.y)
	return &ecPoint{g: w, x: new(big.Int).Set(a.x), y: y.Mod(y, w.params.P)}
}

func (w *weierstrass) scalarBytes(k *big.Int) ([]byte, bool) {
	kk := new(big.Int).Mod(k, w.params.N)
	if kk.Sign() == 0 {
		return nil, false
	}
	return kk.FillBytes(make([]byte, (w.params.N.BitLen()+7)/8)), true
}

func (w *weierstrass) ScalarMult(p Point, k *big.Int) Point {
	a := w.point(p)
	kb, ok := w.scalarBytes(k)
	if !ok || a.IsIdentity() {
		return w.Identity()
	}
	return w.fromAffine(w.curve.ScalarMult(a.x, a.y, kb))
}

func (w *weierstrass) ScalarBaseMult(k *big.Int) Point {
	kb, ok := w.scalarBytes(k)
	if !ok {
		return w.Identity()
	}
	return w.fromAffine(w.curve.ScalarBaseMult(kb))
}

func (w *weierstrass) IsOnCurve(p Point) bool {
	ep, ok := p.(*ecPoint)
	if !ok || ep == nil || ep.g != w {
		return false
	}
	if ep.IsIdentity() {
		return true
	}
	return w.curve.IsOnCurve(ep.x, ep.y)
}

func (w *weierstrass) Affine(p Point) (*big.Int, *big.Int, bool) {
	a := w.point(p)
	if a.IsIdentity() {
		return nil, nil, false
	}
	return new(big.Int).Set(a.x), new(big.Int).Set(a.y), true
}

func (w *weierstrass) NewPoint(x, y *big.Int) (Point, error) {
	if x == nil || y == nil || !w.curve.IsOnCurve(x, y) {
		return nil, errors.Wrapf(ErrNotOnCurve, "%s", w.name)
	}
	return &ecPoint{g: w, x: new(big.Int).Set(x), y: new(big.Int).Set(y)}, nil
}

func (w *weierstrass) Decode(b []byte) (Point, error) {
	if len(b) == 1 && b[0] == 0 {
		return w.Identity(), nil
	}
	if len(b) != 1+w.byteLen || (b[0] != 2 && b[0] != 3) {
		return nil, errors.Wrapf(ErrInvalidEncoding, "%s: %d bytes", w.name, len(b))
	}
	x, y, err := w.decompress(w.curve, b)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidEncoding, "%s: %v", w.name, err)
	}
	return w.NewPoint(x, y)
}

func (p *ecPoint) IsIdentity() bool { return p.x == nil }

// Bytes returns the SEC1 compressed form, or 0x00 for the identity.
func (p *ecPoint) Bytes() []byte {
	if p.IsIdentity() {
		return []byte{0}
	}
	buf := make([]byte, 1+p.g.byteLen)
	buf[0] = 2 | byte(p.y.Bit(0))
	p.x.FillBytes(buf[1:])
	return buf
}

func (p *ecPoint) Equal(other Point) bool {
	q, ok := other.(*ecPoint)
	if !ok || q == nil || q.g != p.g {
		return false
	}
	if p.IsIdentity() || q.IsIdentity() {
		return p.IsIdentity() && q.IsIdentity()
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

func (p *ecPoint) String() string {
	if p.IsIdentity() {
		return p.g.name + "(inf)"
	}
	return p.g.name + "(" + p.x.Text(16) + ", " + p.y.Text(16) + ")"
}

// decompressA3 recovers y for curves with a = -3.
func decompressA3(c elliptic.Curve, b []byte) (*big.Int, *big.Int, error) {
	x, y := elliptic.UnmarshalCompressed(c, b)
	if x == nil {
		return nil, nil, errors.New("not a point")
	}
	return x, y, nil
}
