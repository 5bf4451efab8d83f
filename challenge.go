package zkattest

import (
	"math/big"

	"github.com/MixinNetwork/zkattest-go/curve"
)

// ChallengeBytes is the digest prefix length turned into a challenge.
const ChallengeBytes = 10

// HashPoints derives a Fiat-Shamir challenge from an ordered list of points.
// The compressed encodings are concatenated in order, hashed, and the first
// ChallengeBytes of the digest are read as a big-endian integer. Callers reduce
// the result modulo the order of the group they answer in.
//
// Points carry their group, so lists may mix groups.
func HashPoints(h HashFunc, points ...curve.Point) *big.Int {
	var buf []byte
	for _, p := range points {
		buf = append(buf, p.Bytes()...)
	}
	digest := h(buf)
	return new(big.Int).SetBytes(digest[:ChallengeBytes])
}
