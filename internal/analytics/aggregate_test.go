package analytics

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type valued struct {
	owner string
	v     *big.Int
}

func values(ns ...int64) []valued {
	out := make([]valued, len(ns))
	for i, n := range ns {
		out[i] = valued{owner: "owner", v: big.NewInt(n)}
	}
	return out
}

func valueOf(x valued) *big.Int { return x.v }

func TestSum(t *testing.T) {
	assert.Equal(t, "350", Sum(values(100, 250, 0), valueOf).String())
	assert.Equal(t, "0", Sum([]valued{}, valueOf).String())

	t.Run("exact beyond float precision", func(t *testing.T) {
		huge, ok := new(big.Int).SetString("340282366920938463463374607431768211456", 10) // 2^128
		require.True(t, ok)
		items := []valued{{v: huge}, {v: big.NewInt(1)}}
		assert.Equal(t, "340282366920938463463374607431768211457", Sum(items, valueOf).String())
	})
}

func TestMean(t *testing.T) {
	// Integer division truncates toward zero
	assert.Equal(t, "116", Mean(big.NewInt(350), 3).String())
	assert.Equal(t, "0", Mean(big.NewInt(2), 3).String())
	assert.Equal(t, "0", Mean(big.NewInt(100), 0).String())
}

func TestMinMax(t *testing.T) {
	minVal, maxVal := MinMax(values(42, 7, 99, 7), valueOf)
	assert.Equal(t, "7", minVal.String())
	assert.Equal(t, "99", maxVal.String())

	minVal, maxVal = MinMax([]valued{}, valueOf)
	assert.Nil(t, minVal)
	assert.Nil(t, maxVal)
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name  string
		input []int64
		want  string
	}{
		{"odd length", []int64{3, 1, 2}, "2"},
		{"even length takes lower middle", []int64{1, 2, 3, 4}, "2"},
		{"single element", []int64{9}, "9"},
		{"unsorted input", []int64{250, 0, 100}, "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Median(values(tt.input...), valueOf)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
		})
	}

	t.Run("empty yields nil", func(t *testing.T) {
		assert.Nil(t, Median([]valued{}, valueOf))
	})

	t.Run("input order is preserved", func(t *testing.T) {
		items := values(3, 1, 2)
		Median(items, valueOf)
		assert.Equal(t, "3", items[0].v.String())
	})
}

func TestPeak(t *testing.T) {
	items := []valued{
		{owner: "a", v: big.NewInt(5)},
		{owner: "b", v: big.NewInt(9)},
		{owner: "c", v: big.NewInt(9)},
	}

	peak := Peak(items, valueOf)
	require.NotNil(t, peak)
	// Ties resolve to the earliest item
	assert.Equal(t, "b", peak.owner)

	assert.Nil(t, Peak([]valued{}, valueOf))
}

func TestUniqueCount(t *testing.T) {
	items := []valued{
		{owner: "a"}, {owner: "b"}, {owner: "a"}, {owner: "A"},
	}
	assert.Equal(t, 3, UniqueCount(items, func(x valued) string { return x.owner }))
	assert.Zero(t, UniqueCount([]valued{}, func(x valued) string { return x.owner }))
}

func TestPercentChange(t *testing.T) {
	assert.Equal(t, 50.0, PercentChange(big.NewInt(100), big.NewInt(150)))
	assert.Equal(t, -25.0, PercentChange(big.NewInt(100), big.NewInt(75)))
	// Rounded to two decimals at the final step
	assert.Equal(t, 33.33, PercentChange(big.NewInt(3), big.NewInt(4)))
	// Zero or missing baseline yields zero
	assert.Zero(t, PercentChange(big.NewInt(0), big.NewInt(100)))
	assert.Zero(t, PercentChange(nil, big.NewInt(100)))
}

func TestRate(t *testing.T) {
	assert.Equal(t, 66.67, Rate(2, 3))
	assert.Equal(t, 100.0, Rate(5, 5))
	assert.Zero(t, Rate(1, 0))
}
