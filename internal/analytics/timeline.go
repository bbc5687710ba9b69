package analytics

import (
	"math/big"
	"sort"
	"time"
)

// DailyBucket is one calendar-day rollup. Each bucket derives its own
// totals independently; buckets from different invocations or filters are
// not comparable.
type DailyBucket struct {
	// Day is the UTC calendar date in "2006-01-02" form
	Day     string
	Count   int
	Total   *big.Int
	Average *big.Int
	// Unique counts distinct identity keys within the bucket
	Unique int
}

// DayKey derives the UTC calendar date from a unix timestamp
func DayKey(ts *big.Int) string {
	if ts == nil {
		return ""
	}
	return time.Unix(ts.Int64(), 0).UTC().Format("2006-01-02")
}

// Daily buckets items by the calendar date of their timestamp field and
// re-derives count, sum, truncating average, and unique-key count per
// bucket. Buckets are returned in ascending day order. An empty input
// yields an empty slice.
func Daily[T any](items []T, ts func(T) *big.Int, value func(T) *big.Int, key func(T) string) []DailyBucket {
	byDay := make(map[string][]T)
	for _, item := range items {
		day := DayKey(ts(item))
		byDay[day] = append(byDay[day], item)
	}

	buckets := make([]DailyBucket, 0, len(byDay))
	for day, members := range byDay {
		total := Sum(members, value)
		buckets = append(buckets, DailyBucket{
			Day:     day,
			Count:   len(members),
			Total:   total,
			Average: Mean(total, len(members)),
			Unique:  UniqueCount(members, key),
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Day < buckets[j].Day
	})
	return buckets
}

// Growth returns the display-only percentage change of Total between the
// two most recent buckets, two decimals. Fewer than two buckets yields 0.
func Growth(buckets []DailyBucket) float64 {
	if len(buckets) < 2 {
		return 0
	}
	prev := buckets[len(buckets)-2]
	curr := buckets[len(buckets)-1]
	return PercentChange(prev.Total, curr.Total)
}
