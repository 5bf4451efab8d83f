package zkattest

import (
	"container/heap"
	"io"
	"math/big"

	"github.com/MixinNetwork/zkattest-go/curve"
	"github.com/pkg/errors"
)

// Pair is one addend scalar·point of a pending multi-scalar multiplication.
type Pair struct {
	Point  curve.Point
	Scalar *big.Int
}

// MultiMult accumulates pairs from any number of relations and evaluates
// their sum with a single heap-driven multi-scalar multiplication. Repeated
// points are merged by value, so generators shared by many relations cost one
// addend. A MultiMult is used for one verification and is not safe for
// concurrent use.
type MultiMult struct {
	group curve.Group
	pairs []*Pair
	known map[string]int
}

func NewMultiMult(group curve.Group) *MultiMult {
	return &MultiMult{group: group, known: make(map[string]int)}
}

func (m *MultiMult) Group() curve.Group { return m.group }

func (m *MultiMult) Len() int { return len(m.pairs) }

func (m *MultiMult) checkPoint(pt curve.Point) error {
	if !m.group.IsOnCurve(pt) {
		return errors.Wrapf(ErrInvalidPoint, "not on %s", m.group.Name())
	}
	return nil
}

// AddKnown registers pt with a zero coefficient so later inserts of the same
// point are folded into one addend.
func (m *MultiMult) AddKnown(pt curve.Point) error {
	if err := m.checkPoint(pt); err != nil {
		return err
	}
	key := string(pt.Bytes())
	if _, ok := m.known[key]; ok {
		return nil
	}
	m.known[key] = len(m.pairs)
	m.pairs = append(m.pairs, &Pair{Point: pt, Scalar: new(big.Int)})
	return nil
}

// Insert adds s·pt to the pending sum.
func (m *MultiMult) Insert(pt curve.Point, s *big.Int) error {
	if err := m.checkPoint(pt); err != nil {
		return err
	}
	n := m.group.Order()
	if !inRange(s, n) {
		return errors.Wrapf(ErrIncompatibleScalar, "not below the %s order", m.group.Name())
	}
	key := string(pt.Bytes())
	if i, ok := m.known[key]; ok {
		m.pairs[i].Scalar = modAdd(m.pairs[i].Scalar, s, n)
		return nil
	}
	m.known[key] = len(m.pairs)
	m.pairs = append(m.pairs, &Pair{Point: pt, Scalar: new(big.Int).Set(s)})
	return nil
}

// Evaluate returns the sum of all scalar·point pairs.
//
// The pairs sit in a max-heap keyed by scalar. The largest pair a and the
// runner-up b are combined through
//
//	a·A + b·B = (a - q·b)·A + b·(B + q·A),  q = a div b
//
// which for q = 1 is the classic step: B becomes A + B and A goes back with
// a - b. Scalars shrink until one nonzero pair is left and is multiplied out
// directly. Larger quotients are folded in one scalar multiplication so widely
// spread scalars do not degrade into long chains of subtractions.
func (m *MultiMult) Evaluate() curve.Point {
	g := m.group
	switch len(m.pairs) {
	case 0:
		return g.Identity()
	case 1:
		return g.ScalarMult(m.pairs[0].Point, m.pairs[0].Scalar)
	}

	h := make(pairHeap, len(m.pairs))
	for i, p := range m.pairs {
		h[i] = &Pair{Point: p.Point, Scalar: new(big.Int).Set(p.Scalar)}
	}
	heap.Init(&h)

	for {
		if h.Len() == 1 {
			return g.ScalarMult(h[0].Point, h[0].Scalar)
		}
		a := heap.Pop(&h).(*Pair)
		b := h[0]
		if b.Scalar.Sign() == 0 {
			return g.ScalarMult(a.Point, a.Scalar)
		}
		q, r := new(big.Int).QuoRem(a.Scalar, b.Scalar, new(big.Int))
		step := a.Point
		if q.Cmp(bigOne) != 0 {
			step = g.ScalarMult(a.Point, q)
		}
		// b keeps its scalar, so the root stays the maximum.
		h[0] = &Pair{Point: g.Add(b.Point, step), Scalar: b.Scalar}
		if r.Sign() != 0 {
			heap.Push(&h, &Pair{Point: a.Point, Scalar: r})
		}
	}
}

// pairHeap is a max-heap of pairs ordered by scalar.
type pairHeap []*Pair

func (h pairHeap) Len() int           { return len(h) }
func (h pairHeap) Less(i, j int) bool { return h[i].Scalar.Cmp(h[j].Scalar) > 0 }
func (h pairHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *pairHeap) Push(x interface{}) {
	*h = append(*h, x.(*Pair))
}

func (h *pairHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Relation is one linear equation sum(s_i·P_i) = identity, collected before it
// is blinded into a MultiMult.
type Relation struct {
	group curve.Group
	pairs []*Pair
}

func NewRelation(group curve.Group) *Relation {
	return &Relation{group: group}
}

func (r *Relation) Len() int { return len(r.pairs) }

// Insert appends s·pt to the relation.
func (r *Relation) Insert(pt curve.Point, s *big.Int) error {
	if !r.group.IsOnCurve(pt) {
		return errors.Wrapf(ErrInvalidPoint, "not on %s", r.group.Name())
	}
	if !inRange(s, r.group.Order()) {
		return errors.Wrapf(ErrIncompatibleScalar, "not below the %s order", r.group.Name())
	}
	r.pairs = append(r.pairs, &Pair{Point: pt, Scalar: new(big.Int).Set(s)})
	return nil
}

// InsertM appends pts[i]·ss[i] for every i.
func (r *Relation) InsertM(pts []curve.Point, ss []*big.Int) error {
	if len(pts) != len(ss) {
		return errors.Wrapf(ErrMalformedProof, "relation with %d points and %d scalars", len(pts), len(ss))
	}
	for i := range pts {
		if err := r.Insert(pts[i], ss[i]); err != nil {
			return err
		}
	}
	return nil
}

// Drain multiplies every scalar by one fresh random nonzero factor and moves
// the pairs into target. Independent factors per relation keep two false
// relations from cancelling each other in the shared sum.
func (r *Relation) Drain(rnd io.Reader, target *MultiMult) error {
	n := r.group.Order()
	f, err := randomNonZeroScalar(rnd, n)
	if err != nil {
		return err
	}
	for _, p := range r.pairs {
		if err := target.Insert(p.Point, modMul(p.Scalar, f, n)); err != nil {
			return err
		}
	}
	r.pairs = nil
	return nil
}
