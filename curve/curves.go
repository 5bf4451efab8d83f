package curve

import (
	"crypto/elliptic"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/pkg/errors"
)

const (
	NameP256         = "P-256"
	NameTom256       = "tom256"
	NameSecp256k1    = "secp256k1"
	NameRistretto255 = "ristretto255"
)

// Tom-256 is a short-Weierstrass curve with a = -3 whose group order is the
// base-field prime of P-256, so P-256 coordinates are Tom-256 scalars.
var tom256Params = &elliptic.CurveParams{
	P:       mustHex("ffffffff0000000100000000000000017e72b42b30e7317793135661b1c4b117"),
	N:       mustHex("ffffffff00000001000000000000000000000000ffffffffffffffffffffffff"),
	B:       mustHex("b441071b12f4a0366fb552f8e21ed4ac36b06aceeb354224863e60f20219fc56"),
	Gx:      big.NewInt(3),
	Gy:      mustHex("5a6dd32df58708e64e97345cbe66600decd9d538a351bb3c30b4954925b1f02d"),
	BitSize: 256,
	Name:    NameTom256,
}

var (
	p256      = newWeierstrass(NameP256, elliptic.P256(), decompressA3)
	tom256    = newWeierstrass(NameTom256, tom256Params, decompressA3)
	secp256k1 = newWeierstrass(NameSecp256k1, btcec.S256(), decompressSecp256k1)
	ristr     = &ristrettoGroup{}
)

func P256() AffineGroup { return p256 }

func Tom256() AffineGroup { return tom256 }

func Secp256k1() AffineGroup { return secp256k1 }

func Ristretto255() Group { return ristr }

// ByName looks up a group by its name. Matching ignores case and dashes.
func ByName(name string) (Group, error) {
	switch strings.ReplaceAll(strings.ToLower(name), "-", "") {
	case "p256", "prime256v1", "secp256r1":
		return p256, nil
	case "tom256":
		return tom256, nil
	case "secp256k1":
		return secp256k1, nil
	case "ristretto255", "ristretto":
		return ristr, nil
	}
	return nil, errors.Wrapf(ErrUnknownCurve, "%q", name)
}

func decompressSecp256k1(_ elliptic.Curve, b []byte) (*big.Int, *big.Int, error) {
	pub, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, nil, err
	}
	return pub.X(), pub.Y(), nil
}

func mustHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("curve: bad constant " + s)
	}
	return v
}
