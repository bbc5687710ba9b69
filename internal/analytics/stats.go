package analytics

import (
	"math/big"

	"github.com/shieldpool/subgraph-go/internal/domain"
)

// GasUsageStats summarizes metered gas consumption across memberships.
// Totals are exact integers; UsageRate is a display-only percentage.
type GasUsageStats struct {
	Count          int
	TotalGasUsed   *big.Int
	AverageGasUsed *big.Int
	MinGasUsed     *big.Int
	MaxGasUsed     *big.Int
	MedianGasUsed  *big.Int
	// ActiveCount is the number of memberships with nonzero usage
	ActiveCount int
	// UsageRate is ActiveCount over Count as a two-decimal percentage
	UsageRate    float64
	UniqueOwners int
	// Peak is the membership with the highest gas usage, nil when empty
	Peak *domain.Membership
}

// MembershipGasUsage computes gas-usage statistics over a decoded result
// set. An empty input yields zero totals and a zero rate, never an error.
func MembershipGasUsage(members []domain.Membership) *GasUsageStats {
	gasOf := func(m domain.Membership) *big.Int { return m.GasUsed.Unwrap() }

	active := 0
	for _, m := range members {
		if gasOf(m).Sign() > 0 {
			active++
		}
	}

	total := Sum(members, gasOf)
	minGas, maxGas := MinMax(members, gasOf)

	return &GasUsageStats{
		Count:          len(members),
		TotalGasUsed:   total,
		AverageGasUsed: Mean(total, len(members)),
		MinGasUsed:     minGas,
		MaxGasUsed:     maxGas,
		MedianGasUsed:  Median(members, gasOf),
		ActiveCount:    active,
		UsageRate:      Rate(active, len(members)),
		UniqueOwners:   UniqueCount(members, func(m domain.Membership) string { return m.Owner }),
		Peak:           Peak(members, gasOf),
	}
}

// VolumeStats summarizes value movement across operations or withdrawals
type VolumeStats struct {
	Count         int
	TotalAmount   *big.Int
	AverageAmount *big.Int
	MedianAmount  *big.Int
	MinAmount     *big.Int
	MaxAmount     *big.Int
	TotalFees     *big.Int
	UniqueActors  int
}

// OperationVolume computes volume statistics over a decoded operation set
func OperationVolume(ops []domain.Operation) *VolumeStats {
	amountOf := func(o domain.Operation) *big.Int { return o.Amount.Unwrap() }

	total := Sum(ops, amountOf)
	minAmt, maxAmt := MinMax(ops, amountOf)

	return &VolumeStats{
		Count:         len(ops),
		TotalAmount:   total,
		AverageAmount: Mean(total, len(ops)),
		MedianAmount:  Median(ops, amountOf),
		MinAmount:     minAmt,
		MaxAmount:     maxAmt,
		TotalFees:     Sum(ops, func(o domain.Operation) *big.Int { return o.Fee.Unwrap() }),
		UniqueActors:  UniqueCount(ops, func(o domain.Operation) string { return o.Sender }),
	}
}

// WithdrawalVolume computes volume statistics over a decoded withdrawal set
func WithdrawalVolume(ws []domain.Withdrawal) *VolumeStats {
	amountOf := func(w domain.Withdrawal) *big.Int { return w.Amount.Unwrap() }

	total := Sum(ws, amountOf)
	minAmt, maxAmt := MinMax(ws, amountOf)

	return &VolumeStats{
		Count:         len(ws),
		TotalAmount:   total,
		AverageAmount: Mean(total, len(ws)),
		MedianAmount:  Median(ws, amountOf),
		MinAmount:     minAmt,
		MaxAmount:     maxAmt,
		TotalFees:     Sum(ws, func(w domain.Withdrawal) *big.Int { return w.Fee.Unwrap() }),
		UniqueActors:  UniqueCount(ws, func(w domain.Withdrawal) string { return w.Recipient }),
	}
}

// PoolActivity summarizes a pool's daily stat series: exact totals plus a
// display-only growth figure between the two most recent days
type PoolActivity struct {
	Days        int
	TotalVolume *big.Int
	TotalGas    *big.Int
	PeakDay     *domain.PoolDailyStat
	Growth      float64
}

// PoolDailyActivity folds a pool's daily stat series into one summary
func PoolDailyActivity(stats []domain.PoolDailyStat) *PoolActivity {
	volumeOf := func(s domain.PoolDailyStat) *big.Int { return s.Volume.Unwrap() }

	activity := &PoolActivity{
		Days:        len(stats),
		TotalVolume: Sum(stats, volumeOf),
		TotalGas:    Sum(stats, func(s domain.PoolDailyStat) *big.Int { return s.GasUsed.Unwrap() }),
		PeakDay:     Peak(stats, volumeOf),
	}
	if len(stats) >= 2 {
		// Series arrive most recent first; growth compares the last two days
		activity.Growth = PercentChange(volumeOf(stats[1]), volumeOf(stats[0]))
	}
	return activity
}
