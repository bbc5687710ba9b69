package analytics

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	actor string
	ts    int64
	v     int64
}

func (e event) timestamp() *big.Int { return big.NewInt(e.ts) }
func (e event) value() *big.Int     { return big.NewInt(e.v) }

func daily(events []event) []DailyBucket {
	return Daily(events,
		func(e event) *big.Int { return e.timestamp() },
		func(e event) *big.Int { return e.value() },
		func(e event) string { return e.actor },
	)
}

func TestDayKey(t *testing.T) {
	// 2026-01-01T00:00:00Z
	assert.Equal(t, "2026-01-01", DayKey(big.NewInt(1767225600)))
	// One second before midnight stays on the previous day
	assert.Equal(t, "2025-12-31", DayKey(big.NewInt(1767225599)))
	assert.Equal(t, "", DayKey(nil))
}

func TestDaily(t *testing.T) {
	events := []event{
		{actor: "a", ts: 1767312000, v: 30}, // 2026-01-02
		{actor: "a", ts: 1767225600, v: 10}, // 2026-01-01
		{actor: "b", ts: 1767229200, v: 20}, // 2026-01-01, one hour later
		{actor: "a", ts: 1767229300, v: 5},  // 2026-01-01
	}

	buckets := daily(events)
	require.Len(t, buckets, 2)

	// Ascending day order regardless of input order
	first, second := buckets[0], buckets[1]
	assert.Equal(t, "2026-01-01", first.Day)
	assert.Equal(t, "2026-01-02", second.Day)

	assert.Equal(t, 3, first.Count)
	assert.Equal(t, "35", first.Total.String())
	// Truncating average: 35 / 3 = 11
	assert.Equal(t, "11", first.Average.String())
	assert.Equal(t, 2, first.Unique)

	assert.Equal(t, 1, second.Count)
	assert.Equal(t, "30", second.Total.String())
	assert.Equal(t, 1, second.Unique)
}

func TestDailyEmpty(t *testing.T) {
	buckets := daily(nil)
	assert.NotNil(t, buckets)
	assert.Empty(t, buckets)
}

func TestGrowth(t *testing.T) {
	buckets := []DailyBucket{
		{Day: "2026-01-01", Total: big.NewInt(300)},
		{Day: "2026-01-02", Total: big.NewInt(100)},
		{Day: "2026-01-03", Total: big.NewInt(150)},
	}

	// Only the two most recent buckets feed the figure
	assert.Equal(t, 50.0, Growth(buckets))

	assert.Zero(t, Growth(buckets[:1]))
	assert.Zero(t, Growth(nil))
}
