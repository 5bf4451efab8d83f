package zkattest

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/MixinNetwork/zkattest-go/curve"
	"github.com/pkg/errors"
)

// Config is the in-memory form of a zkattest configuration file.
type Config struct {
	Curve         string `toml:"curve"`
	ProofCurve    string `toml:"proof_curve"`
	SecurityLevel int    `toml:"security_level"`
	Hash          string `toml:"hash"`
}

func DefaultConfig() *Config {
	return &Config{
		Curve:         curve.NameP256,
		ProofCurve:    curve.NameTom256,
		SecurityLevel: MaxSecurityLevel,
		Hash:          HashSHA256,
	}
}

// LoadConfig reads a TOML file on top of the defaults.
func LoadConfig(file string) (*Config, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeConfig(f)
}

func DecodeConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeReader(r, cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteFile writes the config to the given filepath.
func (cfg *Config) WriteFile(file string) error {
	f, err := os.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(*cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (cfg *Config) groups() (curve.AffineGroup, curve.Group, error) {
	g, err := curve.ByName(cfg.Curve)
	if err != nil {
		return nil, nil, err
	}
	ec, ok := g.(curve.AffineGroup)
	if !ok {
		return nil, nil, errors.Wrapf(curve.ErrUnknownCurve, "%s has no affine coordinates", g.Name())
	}
	proof, err := curve.ByName(cfg.ProofCurve)
	if err != nil {
		return nil, nil, err
	}
	if ec.FieldPrime().Cmp(proof.Order()) != 0 {
		return nil, nil, errors.Wrapf(ErrIncompatibleScalar, "%s order is not the %s field prime", proof.Name(), ec.Name())
	}
	return ec, proof, nil
}

// Validate checks that the named curves exist and pair up, that the hash is
// registered and that the security level is reachable.
func (cfg *Config) Validate() error {
	if _, _, err := cfg.groups(); err != nil {
		return err
	}
	if _, err := LookupHash(cfg.Hash); err != nil {
		return err
	}
	return checkSecurityLevel(cfg.SecurityLevel)
}

// Suite returns the suite named by the config.
func (cfg *Config) Suite(rnd io.Reader) (*Suite, error) {
	return NewSuite(cfg.Hash, rnd)
}

// SystemParameters draws fresh Pedersen generators for both groups.
func (cfg *Config) SystemParameters(rnd io.Reader) (*SystemParameters, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ec, proof, _ := cfg.groups()
	nist, err := GeneratePedersenParams(rnd, ec)
	if err != nil {
		return nil, err
	}
	wario, err := GeneratePedersenParams(rnd, proof)
	if err != nil {
		return nil, err
	}
	return &SystemParameters{Curve: nist, ProofCurve: wario, SecurityLevel: cfg.SecurityLevel}, nil
}

// SystemParameters ties a curve to the proof curve that commits to its
// coordinates.
type SystemParameters struct {
	Curve         *PedersenParams
	ProofCurve    *PedersenParams
	SecurityLevel int
}

// NewSystemParameters pairs the default curves with random generators.
func NewSystemParameters(rnd io.Reader, securityLevel int) (*SystemParameters, error) {
	cfg := DefaultConfig()
	cfg.SecurityLevel = securityLevel
	return cfg.SystemParameters(rnd)
}

func (sp *SystemParameters) curveGroup() (curve.AffineGroup, error) {
	if sp == nil || sp.Curve == nil || sp.ProofCurve == nil {
		return nil, errors.Wrap(ErrMalformedProof, "missing system parameters")
	}
	ec, ok := sp.Curve.Group.(curve.AffineGroup)
	if !ok {
		return nil, errors.Wrapf(curve.ErrUnknownCurve, "%s has no affine coordinates", sp.Curve.Group.Name())
	}
	if ec.FieldPrime().Cmp(sp.ProofCurve.Order()) != 0 {
		return nil, errors.Wrapf(ErrIncompatibleScalar, "%s order is not the %s field prime", sp.ProofCurve.Group.Name(), ec.Name())
	}
	return ec, nil
}

func checkSecurityLevel(level int) error {
	if level < 1 || level > MaxSecurityLevel {
		return errors.Wrapf(ErrSecurityLevelUnmet, "security level %d outside [1, %d]", level, MaxSecurityLevel)
	}
	return nil
}

// withGenerator returns a copy whose curve commitments use g in place of the
// curve generator.
func (sp *SystemParameters) withGenerator(g curve.Point) (*SystemParameters, error) {
	nist, err := NewPedersenParams(sp.Curve.Group, g, sp.Curve.H)
	if err != nil {
		return nil, err
	}
	return &SystemParameters{Curve: nist, ProofCurve: sp.ProofCurve, SecurityLevel: sp.SecurityLevel}, nil
}
