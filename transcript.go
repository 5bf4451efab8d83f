package zkattest

import (
	"github.com/gtank/merlin"
)

const FIAT_SHAMIR_DOMAIN_TAG = "zkattest fiat-shamir v1"

func InitialTranscript(label string) *merlin.Transcript {
	return merlin.NewTranscript(label)
}

// MerlinHash feeds data into a fresh domain-separated merlin transcript and
// extracts a 32-byte challenge.
func MerlinHash(data []byte) []byte {
	t := InitialTranscript(FIAT_SHAMIR_DOMAIN_TAG)
	t.AppendMessage([]byte("points"), data)
	return t.ExtractBytes([]byte("challenge"), 32)
}
