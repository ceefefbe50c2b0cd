package tst

import "fmt"

// Dump writes one diagnostic line per live node through sink, in index
// order. It's meant for interactive inspection; any paging or
// presentation on top of it is left to the caller.
func (db *DB) Dump(sink func(line string)) {
	n := db.arena.Len()
	sink(fmt.Sprintf("header: node_count=%d key_count=%d capacity=%d",
		db.NodeCount(), db.keyCount, db.arena.Cap()))
	for i := uint32(1); i < n; i++ {
		node := db.arena.At(i)
		sink(fmt.Sprintf("node %d: splitchar=%q flag=%d low=%d equal=%d high=%d",
			i, node.Splitchar, boolToInt(node.Flag), node.Low, node.Equal, node.High))
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
