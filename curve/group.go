// Package curve provides the prime-order groups the proof engine works over.
//
// Every group hands out Point values that remember the group they belong to,
// so a point from one curve is never accepted as a point of another.
package curve

import (
	"math/big"

	"github.com/pkg/errors"
)

var (
	ErrUnknownCurve    = errors.New("unknown curve")
	ErrInvalidEncoding = errors.New("invalid point encoding")
	ErrNotOnCurve      = errors.New("point is not on curve")
)

// Point is an element of a Group.
type Point interface {
	// Bytes returns the canonical compressed encoding of the point.
	Bytes() []byte
	Equal(other Point) bool
	IsIdentity() bool
}

// Group is a cyclic group of prime order.
type Group interface {
	Name() string
	Order() *big.Int
	Generator() Point
	Identity() Point
	Add(p, q Point) Point
	Neg(p Point) Point
	// ScalarMult returns k·p. k is reduced modulo the group order first.
	ScalarMult(p Point, k *big.Int) Point
	ScalarBaseMult(k *big.Int) Point
	// IsOnCurve reports whether p is a valid element of this group.
	IsOnCurve(p Point) bool
	Decode(b []byte) (Point, error)
}

// AffineGroup is a short-Weierstrass group that exposes affine coordinates.
type AffineGroup interface {
	Group
	FieldPrime() *big.Int
	// Affine returns the coordinates of p. ok is false for the identity.
	Affine(p Point) (x, y *big.Int, ok bool)
	NewPoint(x, y *big.Int) (Point, error)
}

// Sub returns p - q.
func Sub(g Group, p, q Point) Point {
	return g.Add(p, g.Neg(q))
}
