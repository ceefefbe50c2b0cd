package tst

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizePreservesMembershipInMemory(t *testing.T) {
	db := New()
	keys := []string{"bananas", "apples", "cherries", "b", "banana"}
	for _, k := range keys {
		db.Put([]byte(k))
	}

	require.NoError(t, db.Optimize(rand.New(rand.NewSource(1))))

	for _, k := range keys {
		assert.True(t, db.Contains([]byte(k)), k)
	}
	assert.Equal(t, uint32(len(keys)), db.KeyCount())

	var got []string
	db.Keys(func(key []byte) { got = append(got, string(key)) })
	sort.Strings(got)
	want := append([]string{}, keys...)
	sort.Strings(want)
	assert.Equal(t, want, got)
}

func TestOptimizePreservesMembershipWithInPlaceLogRewrite(t *testing.T) {
	store := newMemFileStore()
	db, err := Open(store)
	require.NoError(t, err)

	keys := []string{"bananas", "apples", "cherries", "b", "banana"}
	for _, k := range keys {
		db.Put([]byte(k))
	}

	// No filesystem path: exercises optimizeInPlace rather than rotation.
	require.NoError(t, db.Optimize(rand.New(rand.NewSource(2))))

	for _, k := range keys {
		assert.True(t, db.Contains([]byte(k)), k)
	}
	assert.Equal(t, uint32(len(keys)), db.KeyCount())

	reopened, err := Open(store)
	require.NoError(t, err)
	for _, k := range keys {
		assert.True(t, reopened.Contains([]byte(k)), k)
	}
}

func TestOptimizeOnEmptyTree(t *testing.T) {
	db := New()
	require.NoError(t, db.Optimize(rand.New(rand.NewSource(3))))
	assert.Equal(t, uint32(0), db.KeyCount())
}

// degenerateSortedTree builds the same 200-key tree every time, inserted
// in an order that produces a degenerate, low-State tree.
func degenerateSortedTree() *DB {
	db := New()
	n := 200
	for i := 0; i < n; i++ {
		k := make([]byte, 4)
		k[0] = byte('a' + i/100)
		k[1] = byte('a' + (i/10)%10)
		k[2] = byte('a' + i%10)
		k[3] = byte(i % 7)
		db.Put(k)
	}
	return db
}

// TestOptimizeImprovesBalanceOnSortedInsertion demonstrates invariant 10:
// State() after Optimize exceeds State() after sorted insertion with
// probability > 0.99. Run across several seeds and require improvement in
// (nearly) all of them, rather than a single tolerant comparison that
// would still pass if Optimize's shuffle silently did nothing.
func TestOptimizeImprovesBalanceOnSortedInsertion(t *testing.T) {
	before := degenerateSortedTree().State()

	const trials = 8
	improved := 0
	for seed := int64(0); seed < trials; seed++ {
		db := degenerateSortedTree()
		require.NoError(t, db.Optimize(rand.New(rand.NewSource(seed))))
		if db.State() > before {
			improved++
		}
	}

	assert.GreaterOrEqual(t, improved, trials-1,
		"expected Optimize to improve balance on a degenerate tree in nearly every trial")
}
