// Package money computes the fee split charged for a consultation.
// All arithmetic uses exact decimal representation; the amounts produced
// here are charged to real mobile-money accounts, so no float math is
// allowed anywhere in this package.
package money

import (
	"github.com/shopspring/decimal"
)

const currencyScale = 2

// Fees is the monetary breakdown of a single consultation booking.
type Fees struct {
	ConsultationFee decimal.Decimal
	AppFee          decimal.Decimal
	TotalAmount     decimal.Decimal
}

// FeePolicy derives the platform's cut from a provider's base fee.
// Rate is the platform share (0.10 means 10%) and comes from
// configuration, not a hardcoded literal.
type FeePolicy struct {
	Rate decimal.Decimal
}

func NewFeePolicy(rate decimal.Decimal) FeePolicy {
	return FeePolicy{Rate: rate}
}

// ComputeFees rounds the base fee to currency precision, takes the
// platform share with half-up rounding, and returns the exact total.
// Zero or negative base fees are accepted and propagated; validating a
// provider's fee configuration is not this package's job.
func (p FeePolicy) ComputeFees(baseFee decimal.Decimal) Fees {
	consultationFee := baseFee.Round(currencyScale)
	appFee := consultationFee.Mul(p.Rate).Round(currencyScale)
	return Fees{
		ConsultationFee: consultationFee,
		AppFee:          appFee,
		TotalAmount:     consultationFee.Add(appFee),
	}
}
