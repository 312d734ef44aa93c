package types

import "github.com/shopspring/decimal"

const (
	LamportsPerSol = 1_000_000_000
	solDecimals    = 9
)

// LamportsToSol renders a lamport amount as SOL with full precision.
func LamportsToSol(lamports int64) string {
	return decimal.NewFromInt(lamports).Shift(-solDecimals).StringFixed(solDecimals)
}
