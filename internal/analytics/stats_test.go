package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldpool/subgraph-go/internal/domain"
	"github.com/shieldpool/subgraph-go/internal/types"
)

func bigint(n int64) *types.BigInt {
	return types.NewBigInt(n)
}

func TestMembershipGasUsage(t *testing.T) {
	members := []domain.Membership{
		{ID: "m0", Owner: "0xaaa", GasUsed: bigint(100)},
		{ID: "m1", Owner: "0xbbb", GasUsed: bigint(250)},
		{ID: "m2", Owner: "0xaaa", GasUsed: bigint(0)},
	}

	stats := MembershipGasUsage(members)

	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, "350", stats.TotalGasUsed.String())
	assert.Equal(t, "116", stats.AverageGasUsed.String())
	assert.Equal(t, "100", stats.MedianGasUsed.String())
	assert.Equal(t, 2, stats.ActiveCount)
	assert.Equal(t, 66.67, stats.UsageRate)
	assert.Equal(t, 2, stats.UniqueOwners)
	require.NotNil(t, stats.Peak)
	assert.Equal(t, "m1", stats.Peak.ID)
}

func TestMembershipGasUsageHandlesMissingFields(t *testing.T) {
	// Optional numeric fields may be absent from the subgraph response
	members := []domain.Membership{
		{ID: "m0", Owner: "0xaaa"},
		{ID: "m1", Owner: "0xbbb", GasUsed: bigint(50)},
	}

	stats := MembershipGasUsage(members)
	assert.Equal(t, "50", stats.TotalGasUsed.String())
	assert.Equal(t, 1, stats.ActiveCount)
}

func TestOperationVolume(t *testing.T) {
	ops := []domain.Operation{
		{Sender: "0xaaa", Amount: bigint(1000), Fee: bigint(10)},
		{Sender: "0xbbb", Amount: bigint(3000), Fee: bigint(30)},
		{Sender: "0xaaa", Amount: bigint(2000), Fee: bigint(20)},
	}

	stats := OperationVolume(ops)

	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, "6000", stats.TotalAmount.String())
	assert.Equal(t, "2000", stats.AverageAmount.String())
	assert.Equal(t, "2000", stats.MedianAmount.String())
	assert.Equal(t, "1000", stats.MinAmount.String())
	assert.Equal(t, "3000", stats.MaxAmount.String())
	assert.Equal(t, "60", stats.TotalFees.String())
	assert.Equal(t, 2, stats.UniqueActors)
}

func TestWithdrawalVolume(t *testing.T) {
	ws := []domain.Withdrawal{
		{Recipient: "0xaaa", Amount: bigint(500), Fee: bigint(5)},
		{Recipient: "0xbbb", Amount: bigint(700), Fee: bigint(7)},
	}

	stats := WithdrawalVolume(ws)

	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, "1200", stats.TotalAmount.String())
	assert.Equal(t, "600", stats.AverageAmount.String())
	// Even length resolves to the lower middle
	assert.Equal(t, "500", stats.MedianAmount.String())
	assert.Equal(t, "12", stats.TotalFees.String())
	assert.Equal(t, 2, stats.UniqueActors)
}

func TestPoolDailyActivity(t *testing.T) {
	// Series arrive most recent first, matching the default ordering
	series := []domain.PoolDailyStat{
		{ID: "d2", Volume: bigint(150), GasUsed: bigint(9)},
		{ID: "d1", Volume: bigint(100), GasUsed: bigint(6)},
		{ID: "d0", Volume: bigint(400), GasUsed: bigint(3)},
	}

	activity := PoolDailyActivity(series)

	assert.Equal(t, 3, activity.Days)
	assert.Equal(t, "650", activity.TotalVolume.String())
	assert.Equal(t, "18", activity.TotalGas.String())
	require.NotNil(t, activity.PeakDay)
	assert.Equal(t, "d0", activity.PeakDay.ID)
	// Growth compares yesterday (100) to today (150)
	assert.Equal(t, 50.0, activity.Growth)
}

func TestPoolDailyActivityEmpty(t *testing.T) {
	activity := PoolDailyActivity(nil)

	assert.Zero(t, activity.Days)
	assert.Equal(t, "0", activity.TotalVolume.String())
	assert.Nil(t, activity.PeakDay)
	assert.Zero(t, activity.Growth)
}
