package usecase

import "math/rand"

const (
	claimCodeLength   = 8
	claimCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewClaimCode returns a short display code for a claim. Codes are not unique
// keys; the (user, deal) constraint is what guards the ledger.
func NewClaimCode() string {
	b := make([]byte, claimCodeLength)
	for i := range b {
		b[i] = claimCodeAlphabet[rand.Intn(len(claimCodeAlphabet))]
	}
	return string(b)
}
