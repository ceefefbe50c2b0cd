package tst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreshInstanceScenario(t *testing.T) {
	db := New()
	require.True(t, db.Put([]byte("bananas")))
	require.True(t, db.Put([]byte("apples")))
	require.True(t, db.Put([]byte("cherries")))
	assert.False(t, db.Put([]byte("apples")))
	assert.True(t, db.Contains([]byte("apples")))
	assert.False(t, db.Contains([]byte("grapes")))
	assert.Equal(t, uint32(3), db.KeyCount())
}

func TestNodeCountScenario(t *testing.T) {
	db := New()
	db.Put([]byte("banana"))
	db.Put([]byte("apples"))
	db.Put([]byte("bananas"))
	assert.Equal(t, uint32(14), db.NodeCount())
}

func TestEmptyAndOversizeKeysRejected(t *testing.T) {
	db := New()
	assert.False(t, db.Put([]byte{}))
	assert.False(t, db.Contains([]byte{}))
	assert.False(t, db.Remove([]byte{}))

	oversize := make([]byte, 513)
	assert.False(t, db.Put(oversize))

	maxKey := make([]byte, 512)
	for i := range maxKey {
		maxKey[i] = byte(i % 256)
	}
	assert.True(t, db.Put(maxKey))
	assert.True(t, db.Contains(maxKey))
}

func TestInsertionIdempotence(t *testing.T) {
	db := New()
	assert.True(t, db.Put([]byte("x")))
	assert.False(t, db.Put([]byte("x")))
	assert.Equal(t, uint32(1), db.KeyCount())
}

func TestRemovalDuality(t *testing.T) {
	db := New()
	db.Put([]byte("x"))
	assert.True(t, db.Remove([]byte("x")))
	assert.False(t, db.Contains([]byte("x")))
	assert.False(t, db.Remove([]byte("x")))
}

func TestRemoveUnknownKeyIsNoop(t *testing.T) {
	db := New()
	assert.False(t, db.Remove([]byte("ghost")))
}

func TestPrefixAndSuffixKeysCoexist(t *testing.T) {
	db := New()
	db.Put([]byte("banana"))
	db.Put([]byte("bananas"))
	assert.True(t, db.Contains([]byte("banana")))
	assert.True(t, db.Contains([]byte("bananas")))
	assert.False(t, db.Contains([]byte("banan")))
	db.Remove([]byte("banana"))
	assert.False(t, db.Contains([]byte("banana")))
	assert.True(t, db.Contains([]byte("bananas")))
}

func TestLeadingZeroByteKey(t *testing.T) {
	db := New()
	key := []byte{0x00, 'a'}
	assert.True(t, db.Put(key))
	assert.True(t, db.Contains(key))
	assert.False(t, db.Contains([]byte{0x00}))
	assert.True(t, db.Put([]byte{0x00}))
	assert.True(t, db.Contains([]byte{0x00}))
}
