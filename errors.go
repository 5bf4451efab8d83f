package zkattest

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidPoint is returned for a point that is not an element of the
	// expected group.
	ErrInvalidPoint = errors.New("invalid point")
	// ErrIncompatibleScalar is returned for a scalar outside [0, order).
	ErrIncompatibleScalar = errors.New("incompatible scalar")
	// ErrMalformedProof is returned for structurally broken transcripts and
	// mismatched bulk inputs.
	ErrMalformedProof = errors.New("malformed proof")
	// ErrGeometricPrecondition is returned when a point-addition statement is
	// false or involves the point at infinity.
	ErrGeometricPrecondition = errors.New("point addition precondition violated")
	// ErrSecurityLevelUnmet is returned when a security level is out of range
	// or a proof carries fewer rounds than required.
	ErrSecurityLevelUnmet = errors.New("security level unmet")
	ErrUnknownHash        = errors.New("unknown hash")
)
