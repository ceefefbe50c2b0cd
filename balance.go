package tst

import "github.com/tstdb/tst/internal/arena"

// state computes a [0,1] advisory balance metric derived from how evenly
// low/high children are populated across every live node, by count and
// by index-sum. An empty tree (no nodes besides the root) returns 1,
// which also falls out naturally of the zero-denominator rule below;
// it's kept as an explicit case for clarity.
func state(a *arena.Arena) float64 {
	n := a.Len() // includes the sentinel at index 0
	if n <= 2 {
		return 1
	}

	var lowCnt, highCnt, lowSum, highSum uint64
	for i := uint32(1); i < n; i++ {
		node := a.At(i)
		if node.Low != arena.Nil {
			lowCnt++
			lowSum += uint64(node.Low)
		}
		if node.High != arena.Nil {
			highCnt++
			highSum += uint64(node.High)
		}
	}

	balance := ratioTerm(lowCnt, highCnt)
	balanceOff := ratioTerm(lowSum, highSum)
	return (balance + balanceOff) / 2
}

func ratioTerm(a, b uint64) float64 {
	denom := a + b
	if denom == 0 {
		return 1
	}
	diff := a - b
	if a < b {
		diff = b - a
	}
	return 1 - float64(diff)/float64(denom)
}
