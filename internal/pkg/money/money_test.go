package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	assert.NoError(t, err)
	return d
}

func TestComputeFees(t *testing.T) {
	policy := NewFeePolicy(mustDecimal(t, "0.10"))

	testCases := []struct {
		name            string
		baseFee         string
		consultationFee string
		appFee          string
		totalAmount     string
	}{
		{"round amount", "50.00", "50.00", "5.00", "55.00"},
		{"half app fee", "75.00", "75.00", "7.50", "82.50"},
		{"zero base fee", "0", "0.00", "0.00", "0.00"},
		{"sub-cent base fee rounds half-up", "19.995", "20.00", "2.00", "22.00"},
		{"app fee rounds half-up", "100.45", "100.45", "10.05", "110.50"},
		{"large mobile money amount", "150000", "150000.00", "15000.00", "165000.00"},
		{"negative base fee propagates", "-10.00", "-10.00", "-1.00", "-11.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fees := policy.ComputeFees(mustDecimal(t, tc.baseFee))

			assert.True(t, fees.ConsultationFee.Equal(mustDecimal(t, tc.consultationFee)),
				"consultation fee: got %s want %s", fees.ConsultationFee, tc.consultationFee)
			assert.True(t, fees.AppFee.Equal(mustDecimal(t, tc.appFee)),
				"app fee: got %s want %s", fees.AppFee, tc.appFee)
			assert.True(t, fees.TotalAmount.Equal(mustDecimal(t, tc.totalAmount)),
				"total: got %s want %s", fees.TotalAmount, tc.totalAmount)
		})
	}
}

func TestComputeFeesTotalIsAlwaysSumOfParts(t *testing.T) {
	policy := NewFeePolicy(mustDecimal(t, "0.10"))

	for _, baseFee := range []string{"0.01", "33.33", "99.99", "12345.67", "0.005"} {
		fees := policy.ComputeFees(mustDecimal(t, baseFee))
		assert.True(t, fees.TotalAmount.Equal(fees.ConsultationFee.Add(fees.AppFee)),
			"base %s: total %s != fee %s + app fee %s", baseFee, fees.TotalAmount, fees.ConsultationFee, fees.AppFee)
	}
}

func TestComputeFeesConfigurableRate(t *testing.T) {
	policy := NewFeePolicy(mustDecimal(t, "0.15"))

	fees := policy.ComputeFees(mustDecimal(t, "200.00"))
	assert.True(t, fees.AppFee.Equal(mustDecimal(t, "30.00")))
	assert.True(t, fees.TotalAmount.Equal(mustDecimal(t, "230.00")))
}
