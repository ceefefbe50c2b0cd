package tst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsSnapshot(t *testing.T) {
	db := New()
	db.Put([]byte("banana"))
	db.Put([]byte("apples"))
	db.Put([]byte("bananas"))

	stats := db.Stats()
	assert.Equal(t, db.NodeCount(), stats.NodeCount)
	assert.Equal(t, db.KeyCount(), stats.KeyCount)
	assert.Equal(t, db.State(), stats.State)
	assert.GreaterOrEqual(t, stats.Capacity, stats.NodeCount)
}

func TestSeparatorGetSet(t *testing.T) {
	db := New()
	assert.Equal(t, byte('/'), db.Separator())
	assert.Equal(t, byte('.'), db.Separator('.'))
	assert.Equal(t, byte('.'), db.Separator())
}

func TestWithSeparatorOption(t *testing.T) {
	db := New(WithSeparator(':'))
	assert.Equal(t, byte(':'), db.Separator())
}

func TestClearEmptiesTreeInMemory(t *testing.T) {
	db := New()
	db.Put([]byte("a"))
	db.Put([]byte("b"))
	require.NoError(t, db.Clear())
	assert.Equal(t, uint32(0), db.KeyCount())
	assert.False(t, db.Contains([]byte("a")))
}

func TestClearOnPersistentStoreResetsLog(t *testing.T) {
	store := newMemFileStore()
	db, err := Open(store)
	require.NoError(t, err)
	db.Put([]byte("a"))

	require.NoError(t, db.Clear())
	assert.Equal(t, header, string(store.buf))

	require.True(t, db.Put([]byte("b")))
	assert.True(t, db.Contains([]byte("b")))
	assert.False(t, db.Contains([]byte("a")))
}

func TestOpenWithNilStoreIsInMemory(t *testing.T) {
	db, err := Open(nil)
	require.NoError(t, err)
	require.True(t, db.Put([]byte("x")))
	assert.True(t, db.Contains([]byte("x")))
}

func TestDumpEmitsHeaderAndNodes(t *testing.T) {
	db := New()
	db.Put([]byte("ab"))

	var lines []string
	db.Dump(func(line string) { lines = append(lines, line) })

	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "node_count=")
	assert.Len(t, lines, 1+int(db.NodeCount()))
}
