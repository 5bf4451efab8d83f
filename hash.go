package zkattest

import (
	"crypto/sha256"
	"strings"

	"github.com/dchest/blake2b"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// HashFunc is the digest used to derive Fiat-Shamir challenges. It must return
// at least ChallengeBytes bytes.
type HashFunc func(data []byte) []byte

const (
	HashSHA256  = "sha256"
	HashSHA3    = "sha3-256"
	HashBlake2b = "blake2b-256"
	HashMerlin  = "merlin"
)

func SHA256(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

func SHA3(data []byte) []byte {
	sum := sha3.Sum256(data)
	return sum[:]
}

func Blake2b(data []byte) []byte {
	h := blake2b.New256()
	h.Write(data)
	return h.Sum(nil)
}

// LookupHash returns the digest registered under name.
func LookupHash(name string) (HashFunc, error) {
	switch strings.ToLower(name) {
	case HashSHA256, "sha-256":
		return SHA256, nil
	case HashSHA3, "sha3":
		return SHA3, nil
	case HashBlake2b, "blake2b":
		return Blake2b, nil
	case HashMerlin:
		return MerlinHash, nil
	}
	return nil, errors.Wrapf(ErrUnknownHash, "%q", name)
}
